package admin

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"matka/database"
	"matka/helpers"
	"matka/models"
	"matka/services"
)

var validate = validator.New()

type CreateMarketRequest struct {
	Name       string `json:"name" validate:"required,max=64"`
	GameType   string `json:"game_type" validate:"required,oneof=jodi haruf crossing"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	ResultTime string `json:"result_time" validate:"required"`

	MinBet float64 `json:"min_bet" validate:"omitempty,gt=0"`
	MaxBet float64 `json:"max_bet" validate:"omitempty,gt=0"`

	JodiMultiplier     float64 `json:"jodi_multiplier" validate:"omitempty,gt=0"`
	HarufMultiplier    float64 `json:"haruf_multiplier" validate:"omitempty,gt=0"`
	CrossingMultiplier float64 `json:"crossing_multiplier" validate:"omitempty,gt=0"`

	CrossingRule string `json:"crossing_rule" validate:"omitempty,oneof=reversible exact"`
}

func CreateMarket(c *fiber.Ctx) error {
	var req CreateMarketRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	market := models.Market{
		Name:               req.Name,
		GameType:           req.GameType,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		ResultTime:         req.ResultTime,
		Status:             models.MarketWaiting,
		IsActive:           true,
		AcceptingBets:      true,
		MinBet:             orDefault(req.MinBet, 10),
		MaxBet:             orDefault(req.MaxBet, 10000),
		JodiMultiplier:     orDefault(req.JodiMultiplier, 95),
		HarufMultiplier:    orDefault(req.HarufMultiplier, 9),
		CrossingMultiplier: orDefault(req.CrossingMultiplier, 95),
		CrossingRule:       req.CrossingRule,
	}
	if market.CrossingRule == "" {
		market.CrossingRule = models.CrossingRuleReversible
	}
	if market.MinBet > market.MaxBet {
		return helpers.JSONError(c, "MIN_BET_EXCEEDS_MAX_BET")
	}
	if err := services.ResolveMarketInstants(&market, time.Now()); err != nil {
		return helpers.JSONError(c, "INVALID_SCHEDULE_TIME")
	}

	if err := database.DB.Create(&market).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "MARKET_NAME_TAKEN")
	}
	return helpers.JSONSuccess(c, "Market created", market)
}

// DeleteMarket soft-deletes a market. Blocked while pending bets still
// reference it.
func DeleteMarket(c *fiber.Ctx) error {
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

	var pending int64
	if err := database.DB.Model(&models.Bet{}).
		Where("market_id = ? AND status = ?", m.ID, models.BetPending).
		Count(&pending).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_COUNT_BETS")
	}
	if pending > 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "MARKET_HAS_PENDING_BETS")
	}

	if err := database.DB.Delete(&m).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_DELETE_MARKET")
	}
	return helpers.JSONSuccess(c, "Market deleted", fiber.Map{"market_id": m.ID})
}

// ResetMarket starts the next settlement cycle: clears the declared
// result and close stamps, re-resolves the absolute instants and
// reopens intake.
func ResetMarket(c *fiber.Ctx) error {
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

	var pending int64
	if err := database.DB.Model(&models.Bet{}).
		Where("market_id = ? AND status = ?", m.ID, models.BetPending).
		Count(&pending).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_COUNT_BETS")
	}
	if pending > 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "MARKET_HAS_PENDING_BETS")
	}

	if err := services.ResolveMarketInstants(&m, time.Now()); err != nil {
		return helpers.JSONError(c, "INVALID_SCHEDULE_TIME")
	}
	updates := map[string]any{
		"status":             models.MarketWaiting,
		"forced_status":      "",
		"accepting_bets":     true,
		"auto_closed_at":     nil,
		"manual_closed_at":   nil,
		"closed_by":          "",
		"winning_number":     "",
		"jodi_result":        "",
		"haruf_result":       "",
		"crossing_result":    "",
		"scheduled_result":   "",
		"result_declared_at": nil,
		"result_declared_by": "",
		"declare_method":     "",
		"opens_at":           m.OpensAt,
		"closes_at":          m.ClosesAt,
		"results_at":         m.ResultsAt,
	}
	if err := database.DB.Model(&m).Updates(updates).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_RESET_MARKET")
	}
	return helpers.JSONSuccess(c, "Market reset for next cycle", fiber.Map{
		"market_id": m.ID,
		"opens_at":  m.OpensAt,
		"closes_at": m.ClosesAt,
	})
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
