package user

import (
	"github.com/gofiber/fiber/v2"

	"matka/helpers"
	"matka/models"
)

// CheckBalance returns the wallet breakdown; the total is always
// computed from the four sub-balances.
func CheckBalance(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	return helpers.JSONSuccess(c, "Balance fetched", fiber.Map{
		"user_code":          user.UserCode,
		"deposit_balance":    user.DepositBalance,
		"bonus_balance":      user.BonusBalance,
		"commission_balance": user.CommissionBalance,
		"winning_balance":    user.WinningBalance,
		"total_balance":      user.TotalBalance(),
		"total_winnings":     user.TotalWinnings,
	})
}
