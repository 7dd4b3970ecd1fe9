package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matka/models"
)

// Mirrors a typical settlement day: two winners and a loser against a
// declared result of 27.
func TestAccumulateSummary(t *testing.T) {
	summary := &models.ResultSummary{MarketID: 1, WinningNumber: "27"}

	bets := []struct {
		bet *models.Bet
		won bool
	}{
		{&models.Bet{BetType: models.BetTypeJodi, Number: "27", Amount: 100, PotentialWin: 9500}, true},
		{&models.Bet{BetType: models.BetTypeHaruf, Number: "7", Position: models.PositionTrailing, Amount: 50, PotentialWin: 450}, true},
		{&models.Bet{BetType: models.BetTypeJodi, Number: "13", Amount: 200, PotentialWin: 19000}, false},
	}
	for _, b := range bets {
		AccumulateSummary(summary, b.bet, b.won)
	}

	assert.Equal(t, 3, summary.TotalBets)
	assert.Equal(t, 2, summary.WinningBets)
	assert.Equal(t, 1, summary.LosingBets)
	assert.InDelta(t, 350, summary.TotalAmount, 1e-9)
	assert.InDelta(t, 9950, summary.TotalPaid, 1e-9)

	assert.Equal(t, 2, summary.JodiBets)
	assert.Equal(t, 1, summary.JodiWins)
	assert.InDelta(t, 300, summary.JodiAmount, 1e-9)
	assert.InDelta(t, 9500, summary.JodiPaid, 1e-9)

	assert.Equal(t, 1, summary.HarufBets)
	assert.Equal(t, 1, summary.HarufWins)
	assert.InDelta(t, 50, summary.HarufAmount, 1e-9)
	assert.InDelta(t, 450, summary.HarufPaid, 1e-9)

	assert.Equal(t, 0, summary.CrossingBets)
}

func TestAccumulateSummaryCrossing(t *testing.T) {
	summary := &models.ResultSummary{}

	// A six-way crossing group where one combination hits.
	for _, combo := range []string{"12", "13", "21", "23", "31", "32"} {
		bet := &models.Bet{BetType: models.BetTypeCrossing, Number: combo, Amount: 16.66, PotentialWin: 1582.7}
		AccumulateSummary(summary, bet, combo == "21")
	}

	assert.Equal(t, 6, summary.CrossingBets)
	assert.Equal(t, 1, summary.CrossingWins)
	assert.InDelta(t, 99.96, summary.CrossingAmount, 1e-6)
	assert.InDelta(t, 1582.7, summary.CrossingPaid, 1e-6)
	assert.InDelta(t, summary.TotalAmount, summary.CrossingAmount, 1e-9)
	assert.InDelta(t, summary.TotalPaid, summary.CrossingPaid, 1e-9)
}

func TestDeclareResultRejectsEmptyPayload(t *testing.T) {
	_, err := DeclareResult(nil, 1, ResultPayload{}, DeclareOptions{DeclaredBy: "admin", Method: models.DeclareManual})
	assert.ErrorIs(t, err, ErrEmptyResult)

	_, err = DeclareResult(nil, 1, ResultPayload{Jodi: "  "}, DeclareOptions{DeclaredBy: "admin", Method: models.DeclareManual})
	assert.ErrorIs(t, err, ErrEmptyResult)
}
