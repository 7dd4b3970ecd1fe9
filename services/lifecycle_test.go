package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matka/helpers"
	"matka/models"
)

func dayMarket() *models.Market {
	return &models.Market{
		Name:          "Delhi Bazar",
		StartTime:     "08:00",
		EndTime:       "14:40",
		ResultTime:    "15:15",
		Status:        models.MarketOpen,
		IsActive:      true,
		AcceptingBets: true,
	}
}

func marketClock(hour, min int) time.Time {
	return time.Date(2026, 8, 28, hour, min, 0, 0, helpers.MarketLocation())
}

func TestPhaseAt(t *testing.T) {
	m := dayMarket()

	assert.Equal(t, models.MarketWaiting, PhaseAt(m, marketClock(7, 30)))
	assert.Equal(t, models.MarketOpen, PhaseAt(m, marketClock(12, 0)))
	assert.Equal(t, models.MarketClosed, PhaseAt(m, marketClock(14, 45)))
	assert.Equal(t, models.MarketResultDeclared, PhaseAt(m, marketClock(15, 15)))
}

func TestPhaseAtForcedStatus(t *testing.T) {
	m := dayMarket()
	m.ForcedStatus = models.MarketClosed

	// The override holds even mid-window.
	assert.Equal(t, models.MarketClosed, PhaseAt(m, marketClock(12, 0)))

	// An inactive market ignores the override.
	m.IsActive = false
	assert.Equal(t, models.MarketOpen, PhaseAt(m, marketClock(12, 0)))
}

func TestPhaseAtDeclaredIsTerminal(t *testing.T) {
	m := dayMarket()
	m.Status = models.MarketResultDeclared
	m.WinningNumber = "27"

	// Clock arithmetic would say open, but a declared result is final.
	assert.Equal(t, models.MarketResultDeclared, PhaseAt(m, marketClock(12, 0)))
}

func TestAcceptingBets(t *testing.T) {
	now := marketClock(12, 0)

	t.Run("open and accepting", func(t *testing.T) {
		assert.True(t, AcceptingBets(dayMarket(), now))
	})

	t.Run("outside the open window", func(t *testing.T) {
		assert.False(t, AcceptingBets(dayMarket(), marketClock(7, 0)))
		assert.False(t, AcceptingBets(dayMarket(), marketClock(14, 45)))
	})

	t.Run("intake flag off", func(t *testing.T) {
		m := dayMarket()
		m.AcceptingBets = false
		assert.False(t, AcceptingBets(m, now))
	})

	t.Run("absolute close instant passed", func(t *testing.T) {
		m := dayMarket()
		past := now.Add(-time.Minute)
		m.ClosesAt = &past
		assert.False(t, AcceptingBets(m, now))
	})

	t.Run("manually closed", func(t *testing.T) {
		m := dayMarket()
		closed := now.Add(-time.Hour)
		m.ManualClosedAt = &closed
		assert.False(t, AcceptingBets(m, now))
	})
}

func TestTimeRemaining(t *testing.T) {
	m := dayMarket()

	assert.Equal(t, "opens at 08:00", TimeRemaining(m, marketClock(7, 0)))
	assert.Equal(t, "closes in 2h40m", TimeRemaining(m, marketClock(12, 0)))
	assert.Equal(t, "closes in 0h01m", TimeRemaining(m, marketClock(14, 39)))
	assert.Equal(t, "result at 15:15", TimeRemaining(m, marketClock(14, 45)))

	m.Status = models.MarketResultDeclared
	assert.Equal(t, "result declared", TimeRemaining(m, marketClock(16, 0)))
}

func TestResolveMarketInstants(t *testing.T) {
	loc := helpers.MarketLocation()

	t.Run("same day when result is ahead", func(t *testing.T) {
		m := dayMarket()
		base := marketClock(10, 0)
		require.NoError(t, ResolveMarketInstants(m, base))

		require.NotNil(t, m.OpensAt)
		require.NotNil(t, m.ClosesAt)
		require.NotNil(t, m.ResultsAt)
		assert.True(t, m.OpensAt.Equal(time.Date(2026, 8, 28, 8, 0, 0, 0, loc)))
		assert.True(t, m.ClosesAt.Equal(time.Date(2026, 8, 28, 14, 40, 0, 0, loc)))
		assert.True(t, m.ResultsAt.Equal(time.Date(2026, 8, 28, 15, 15, 0, 0, loc)))
	})

	t.Run("rolls to next day once result has passed", func(t *testing.T) {
		m := dayMarket()
		base := marketClock(16, 0)
		require.NoError(t, ResolveMarketInstants(m, base))

		assert.True(t, m.OpensAt.Equal(time.Date(2026, 8, 29, 8, 0, 0, 0, loc)))
		assert.True(t, m.ResultsAt.Equal(time.Date(2026, 8, 29, 15, 15, 0, 0, loc)))
	})

	t.Run("invalid clock string", func(t *testing.T) {
		m := dayMarket()
		m.EndTime = "25:00"
		assert.Error(t, ResolveMarketInstants(m, marketClock(10, 0)))
	})
}
