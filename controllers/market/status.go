package market

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"matka/database"
	"matka/helpers"
	"matka/models"
	"matka/services"
)

// List returns all active markets with their derived phase, for the
// frontend's market board.
func List(c *fiber.Ctx) error {
	var markets []models.Market
	if err := database.DB.Where("is_active = true").Order("name").Find(&markets).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_MARKETS")
	}

	now := time.Now()
	out := make([]fiber.Map, 0, len(markets))
	for i := range markets {
		m := &markets[i]
		out = append(out, fiber.Map{
			"market_id":      m.ID,
			"name":           m.Name,
			"game_type":      m.GameType,
			"start_time":     m.StartTime,
			"end_time":       m.EndTime,
			"result_time":    m.ResultTime,
			"phase":          services.PhaseAt(m, now),
			"accepting_bets": services.AcceptingBets(m, now),
			"winning_number": m.WinningNumber,
		})
	}
	return helpers.JSONSuccess(c, "Markets fetched", out)
}

// Status reports one market's phase, accepting flag and countdown.
func Status(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_MARKET_ID")
	}

	var m models.Market
	if err := database.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "MARKET_NOT_FOUND")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_MARKET")
	}

	now := time.Now()
	return helpers.JSONSuccess(c, "Market status", fiber.Map{
		"market_id":      m.ID,
		"name":           m.Name,
		"phase":          services.PhaseAt(&m, now),
		"accepting_bets": services.AcceptingBets(&m, now),
		"time_remaining": services.TimeRemaining(&m, now),
		"winning_number": m.WinningNumber,
	})
}
