package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"matka/database"
	"matka/helpers"
	"matka/models"
)

type CreateUserRequest struct {
	UserCode string `json:"user_code" validate:"required,max=32"`
	Name     string `json:"name" validate:"omitempty,max=64"`
	Mobile   string `json:"mobile" validate:"omitempty,max=16"`
}

func CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	user := models.User{
		UserCode: req.UserCode,
		Name:     req.Name,
		Mobile:   req.Mobile,
		IsActive: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "USER_CODE_TAKEN")
	}
	return helpers.JSONSuccess(c, "User created", user)
}

type AdjustBalanceRequest struct {
	UserCode string  `json:"user_code" validate:"required"`
	Amount   float64 `json:"amount" validate:"required"` // positive credits, negative debits
	Note     string  `json:"note" validate:"omitempty,max=255"`
}

// AdjustBalance applies a manual wallet correction. The mutation and
// its ledger row commit together; a negative adjustment that the
// wallet cannot cover is rejected.
func AdjustBalance(c *fiber.Ctx) error {
	var req AdjustBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil || req.Amount == 0 {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	adminID, _ := c.Locals("admin_id").(string)
	note := req.Note
	if note == "" {
		note = "Manual adjustment by " + adminID
	}

	var balance float64
	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_code = ?", req.UserCode).First(&user).Error; err != nil {
			return err
		}

		before := user.TotalBalance()
		if req.Amount > 0 {
			user.DepositBalance = helpers.FormatFloat(user.DepositBalance+req.Amount, 2)
		} else if !user.Debit(-req.Amount) {
			return errors.New("INSUFFICIENT_BALANCE")
		}

		if err := tx.Model(&user).Updates(map[string]any{
			"deposit_balance":    user.DepositBalance,
			"bonus_balance":      user.BonusBalance,
			"commission_balance": user.CommissionBalance,
			"winning_balance":    user.WinningBalance,
		}).Error; err != nil {
			return err
		}

		amount := req.Amount
		if amount < 0 {
			amount = -amount
		}
		if err := tx.Create(&models.UserTransaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxAdjustment,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  user.TotalBalance(),
			Note:          note,
			RefID:         uuid.New().String(),
		}).Error; err != nil {
			return err
		}

		balance = user.TotalBalance()
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "USER_NOT_FOUND")
		}
		if txErr.Error() == "INSUFFICIENT_BALANCE" {
			return helpers.JSONErrorStatus(c, fiber.StatusPaymentRequired, "INSUFFICIENT_BALANCE")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "ADJUSTMENT_FAILED")
	}

	return helpers.JSONSuccess(c, "Balance adjusted", fiber.Map{
		"user_code": req.UserCode,
		"balance":   balance,
	})
}
