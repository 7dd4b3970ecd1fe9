package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matka/models"
)

func TestResolveResult(t *testing.T) {
	t.Run("all fields supplied", func(t *testing.T) {
		res := ResolveResult("50", "47", "58")
		assert.Equal(t, "50", res.Canonical)
		assert.Equal(t, "50", res.Jodi)
		assert.Equal(t, "47", res.Haruf)
		assert.Equal(t, "58", res.Crossing)
		assert.True(t, res.CrossingDedicated)
	})

	t.Run("jodi only falls through to all types", func(t *testing.T) {
		res := ResolveResult("27", "", "")
		assert.Equal(t, "27", res.Canonical)
		assert.Equal(t, "27", res.Jodi)
		assert.Equal(t, "27", res.Haruf)
		assert.Equal(t, "27", res.Crossing)
		assert.False(t, res.CrossingDedicated)
	})

	t.Run("crossing only becomes canonical", func(t *testing.T) {
		res := ResolveResult("", "", "58")
		assert.Equal(t, "58", res.Canonical)
		assert.Equal(t, "58", res.Jodi)
		assert.True(t, res.CrossingDedicated)
	})

	t.Run("whitespace counts as unset", func(t *testing.T) {
		res := ResolveResult("  ", "47", " ")
		assert.Equal(t, "47", res.Canonical)
		assert.Equal(t, "47", res.Jodi)
		assert.False(t, res.CrossingDedicated)
	})

	t.Run("empty everything", func(t *testing.T) {
		res := ResolveResult("", "", "")
		assert.Equal(t, "", res.Canonical)
	})
}

func TestIsWinningBetJodi(t *testing.T) {
	res := ResolveResult("50", "", "")

	win := &models.Bet{BetType: models.BetTypeJodi, Number: "50"}
	lose := &models.Bet{BetType: models.BetTypeJodi, Number: "49"}

	assert.True(t, IsWinningBet(win, res, models.CrossingRuleReversible))
	assert.False(t, IsWinningBet(lose, res, models.CrossingRuleReversible))
}

func TestIsWinningBetHaruf(t *testing.T) {
	res := ResolveResult("47", "", "")

	tests := []struct {
		name     string
		number   string
		position string
		expected bool
	}{
		{"leading digit matches", "4", models.PositionLeading, true},
		{"leading digit at trailing position loses", "4", models.PositionTrailing, false},
		{"trailing digit matches", "7", models.PositionTrailing, true},
		{"trailing digit at leading position loses", "7", models.PositionLeading, false},
		{"raw token B7 without structured position", "B7", "", true},
		{"raw token A7 without structured position", "A7", "", false},
		{"raw token A4 without structured position", "A4", "", true},
		{"bare digit defaults to leading", "4", "", true},
		{"bare digit defaults to leading and loses", "7", "", false},
		{"structured position with raw token number", "B7", models.PositionTrailing, true},
		{"non-digit number", "x", models.PositionLeading, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bet := &models.Bet{
				BetType:  models.BetTypeHaruf,
				Number:   tt.number,
				Position: tt.position,
			}
			assert.Equal(t, tt.expected, IsWinningBet(bet, res, models.CrossingRuleReversible))
		})
	}
}

func TestIsWinningBetCrossing(t *testing.T) {
	t.Run("dedicated crossing value is reversal tolerant", func(t *testing.T) {
		res := ResolveResult("", "", "58")
		assert.True(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "58"}, res, models.CrossingRuleReversible))
		assert.True(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "85"}, res, models.CrossingRuleReversible))
		assert.False(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "12"}, res, models.CrossingRuleReversible))
	})

	t.Run("fallback from exact value matches without reversal", func(t *testing.T) {
		res := ResolveResult("58", "", "")
		assert.True(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "58"}, res, models.CrossingRuleReversible))
		assert.False(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "85"}, res, models.CrossingRuleReversible))
	})

	t.Run("legacy exact rule never reverses", func(t *testing.T) {
		res := ResolveResult("", "", "58")
		assert.True(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "58"}, res, models.CrossingRuleExact))
		assert.False(t, IsWinningBet(&models.Bet{BetType: models.BetTypeCrossing, Number: "85"}, res, models.CrossingRuleExact))
	})
}

func TestIsWinningBetUnknownType(t *testing.T) {
	res := ResolveResult("50", "", "")
	bet := &models.Bet{BetType: "mystery", Number: "50"}
	assert.False(t, IsWinningBet(bet, res, models.CrossingRuleReversible))
}
