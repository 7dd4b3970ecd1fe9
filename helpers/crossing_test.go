package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossingCombinations(t *testing.T) {
	tests := []struct {
		name     string
		digits   string
		jodaCut  bool
		expected []string
	}{
		{"three distinct digits", "123", false, []string{"12", "13", "21", "23", "31", "32"}},
		{"three distinct digits with joda cut", "123", true, []string{"12", "13", "21", "23", "31", "32"}},
		{"repeated digit keeps equal pair", "112", false, []string{"11", "12", "21"}},
		{"repeated digit with joda cut drops equal pair", "112", true, []string{"12", "21"}},
		{"two digits", "58", false, []string{"58", "85"}},
		{"non-digit characters ignored", "1x2", false, []string{"12", "21"}},
		{"single digit", "7", false, nil},
		{"empty input", "", false, nil},
		{"all same digits with joda cut", "111", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CrossingCombinations(tt.digits, tt.jodaCut)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCrossingCombinationsDeterministic(t *testing.T) {
	first := CrossingCombinations("4729", false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CrossingCombinations("4729", false))
	}
	assert.Len(t, first, 12)
}

func TestSplitStake(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		count    int
		expected float64
	}{
		{"even split", 120, 6, 20},
		{"uneven split rounds down", 100, 6, 16.66},
		{"uneven split rounds down small", 10, 3, 3.33},
		{"single combination", 50, 1, 50},
		{"zero count", 100, 0, 0},
		{"zero total", 0, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SplitStake(tt.total, tt.count), 1e-9)
		})
	}
}

// The charged total must never exceed what the user authorized, for
// any stake and combination count.
func TestSplitStakeNeverOvercharges(t *testing.T) {
	stakes := []float64{1, 7, 10, 33.33, 99.99, 100, 250, 999.01, 5000}
	for _, total := range stakes {
		for count := 1; count <= 90; count++ {
			per := SplitStake(total, count)
			require.GreaterOrEqual(t, per, 0.0)
			charged := ChargedTotal(per, count)
			require.LessOrEqual(t, charged, total+1e-9,
				"total=%v count=%d per=%v charged=%v", total, count, per, charged)
		}
	}
}
