package user

import (
	"github.com/gofiber/fiber/v2"

	"matka/database"
	"matka/helpers"
	"matka/models"
)

// MyBets lists the caller's bet history, newest first, optionally
// filtered by market and status.
func MyBets(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	q := database.DB.Where("user_id = ?", user.ID)
	if marketID := c.QueryInt("market_id"); marketID > 0 {
		q = q.Where("market_id = ?", marketID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var bets []models.Bet
	if err := q.Order("id DESC").Limit(100).Find(&bets).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_BETS")
	}

	return helpers.JSONSuccess(c, "Bets fetched", fiber.Map{
		"count": len(bets),
		"bets":  bets,
	})
}
