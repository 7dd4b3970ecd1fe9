package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"matka/database"
	"matka/helpers"
	"matka/services"
)

// CloseMarket force-closes a market ahead of its schedule, recording
// the triggering admin. Closing an already closed market is a no-op.
func CloseMarket(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_MARKET_ID")
	}

	closedBy, _ := c.Locals("admin_id").(string)
	if closedBy == "" {
		closedBy = "admin"
	}

	if err := services.ForceClose(database.DB, uint(id), closedBy); err != nil {
		if errors.Is(err, services.ErrMarketNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "MARKET_NOT_FOUND")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_CLOSE_MARKET")
	}
	return helpers.JSONSuccess(c, "Market closed", fiber.Map{
		"market_id": id,
		"closed_by": closedBy,
	})
}
