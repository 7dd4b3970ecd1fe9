package admin

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"matka/database"
	"matka/helpers"
	"matka/models"
	"matka/services"
)

type DeclareRequest struct {
	JodiResult     string `json:"jodi_result" validate:"omitempty,len=2,numeric"`
	HarufResult    string `json:"haruf_result" validate:"omitempty,len=2,numeric"`
	CrossingResult string `json:"crossing_result" validate:"omitempty,len=2,numeric"`
}

// DeclareResult is the strict declaration endpoint: the market must be
// in its closed phase.
func DeclareResult(c *fiber.Ctx) error {
	return declare(c, true, models.DeclareManual)
}

// ForceDeclareResult bypasses the closed-phase precondition. Kept as a
// separate entry point for admin intervention on stuck markets.
func ForceDeclareResult(c *fiber.Ctx) error {
	return declare(c, false, models.DeclareOverride)
}

func declare(c *fiber.Ctx, requireClosed bool, method string) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_MARKET_ID")
	}

	var req DeclareRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	declaredBy, _ := c.Locals("admin_id").(string)
	if declaredBy == "" {
		declaredBy = "admin"
	}

	report, err := services.DeclareResult(database.DB, uint(id), services.ResultPayload{
		Jodi:     req.JodiResult,
		Haruf:    req.HarufResult,
		Crossing: req.CrossingResult,
	}, services.DeclareOptions{
		DeclaredBy:    declaredBy,
		Method:        method,
		RequireClosed: requireClosed,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMarketNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "MARKET_NOT_FOUND")
		case errors.Is(err, services.ErrAlreadyDeclared):
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "RESULT_ALREADY_DECLARED")
		case errors.Is(err, services.ErrMarketNotClosed):
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, "MARKET_NOT_CLOSED")
		case errors.Is(err, services.ErrEmptyResult):
			return helpers.JSONError(c, "RESULT_VALUE_REQUIRED")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "DECLARATION_FAILED")
	}

	return helpers.JSONSuccess(c, "Result declared", report)
}

type ScheduleResultRequest struct {
	Result string `json:"result" validate:"required,len=2,numeric"`
}

// ScheduleResult stages a result for the sweeper to declare
// automatically once the market's result instant passes.
func ScheduleResult(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_MARKET_ID")
	}

	var req ScheduleResultRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	var m models.Market
	if err := database.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "MARKET_NOT_FOUND")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_MARKET")
	}
	if m.WinningNumber != "" || m.Status == models.MarketResultDeclared {
		return helpers.JSONErrorStatus(c, fiber.StatusConflict, "RESULT_ALREADY_DECLARED")
	}

	if err := database.DB.Model(&m).Update("scheduled_result", req.Result).Error; err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_SCHEDULE_RESULT")
	}
	return helpers.JSONSuccess(c, "Result scheduled", fiber.Map{
		"market_id":        m.ID,
		"scheduled_result": req.Result,
		"results_at":       m.ResultsAt,
	})
}

// MarketSummary returns the latest declaration summary for reporting
// and chart views.
func MarketSummary(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_MARKET_ID")
	}

	var summary models.ResultSummary
	if err := database.DB.Where("market_id = ?", id).Order("id DESC").First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, "SUMMARY_NOT_FOUND")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_SUMMARY")
	}
	return helpers.JSONSuccess(c, "Result summary", summary)
}
