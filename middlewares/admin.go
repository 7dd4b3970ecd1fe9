package middlewares

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"matka/helpers"
)

// AdminAuth validates the shared admin key. The declaring admin's
// identity travels in X-Admin-Id and is recorded on results.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Admin-Key")
		if key == "" || key != os.Getenv("ADMIN_API_KEY") {
			return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_ADMIN_KEY")
		}
		adminID := c.Get("X-Admin-Id")
		if adminID == "" {
			adminID = "admin"
		}
		c.Locals("admin_id", adminID)
		return c.Next()
	}
}
