package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"matka/database"
	"matka/helpers"
	"matka/models"
)

type CancelBetRequest struct {
	BetID uint   `json:"bet_id" validate:"required"`
	Note  string `json:"note" validate:"omitempty,max=255"`
}

// CancelBet refunds a pending bet's stake and marks it refunded. Only
// pending bets on undeclared markets qualify; the guarded status flip
// keeps a racing settlement from double-paying.
func CancelBet(c *fiber.Ctx) error {
	var req CancelBetRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var bet models.Bet
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bet, req.BetID).Error; err != nil {
			return err
		}
		if bet.Status != models.BetPending {
			return errors.New("BET_NOT_PENDING")
		}

		var market models.Market
		if err := tx.First(&market, bet.MarketID).Error; err != nil {
			return err
		}
		if market.WinningNumber != "" || market.Status == models.MarketResultDeclared {
			return errors.New("RESULT_ALREADY_DECLARED")
		}

		now := time.Now()
		flip := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Updates(map[string]any{"status": models.BetRefunded, "processed_at": now})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return errors.New("BET_NOT_PENDING")
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, bet.UserID).Error; err != nil {
			return err
		}
		before := user.TotalBalance()
		user.DepositBalance = helpers.FormatFloat(user.DepositBalance+bet.Amount, 2)
		if err := tx.Model(&user).Update("deposit_balance", user.DepositBalance).Error; err != nil {
			return err
		}

		betID, marketID := bet.ID, bet.MarketID
		note := req.Note
		if note == "" {
			note = "Bet refund for " + bet.MarketName
		}
		return tx.Create(&models.UserTransaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxRefund,
			Amount:        bet.Amount,
			BalanceBefore: before,
			BalanceAfter:  user.TotalBalance(),
			Note:          note,
			RefID:         uuid.New().String(),
			BetID:         &betID,
			MarketID:      &marketID,
		}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "BET_NOT_FOUND")
		}
		switch txErr.Error() {
		case "BET_NOT_PENDING", "RESULT_ALREADY_DECLARED":
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, txErr.Error())
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "REFUND_FAILED")
	}

	return helpers.JSONSuccess(c, "Bet refunded", fiber.Map{"bet_id": req.BetID})
}
