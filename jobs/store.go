package jobs

import (
	"time"

	"gorm.io/gorm"

	"matka/models"
	"matka/services"
)

// GormStore is the production MarketStore.
type GormStore struct {
	DB *gorm.DB
}

func (g *GormStore) CloseExpired(now time.Time) (int64, error) {
	res := g.DB.Model(&models.Market{}).
		Where("is_active = ? AND closes_at IS NOT NULL AND closes_at <= ? AND status NOT IN ?",
			true, now, []string{models.MarketClosed, models.MarketResultDeclared}).
		Updates(map[string]any{
			"status":         models.MarketClosed,
			"accepting_bets": false,
			"auto_closed_at": now,
		})
	return res.RowsAffected, res.Error
}

func (g *GormStore) DueScheduledResults(now time.Time) ([]ScheduledResult, error) {
	var markets []models.Market
	err := g.DB.
		Where("is_active = ? AND scheduled_result <> '' AND winning_number = '' AND results_at IS NOT NULL AND results_at <= ?",
			true, now).
		Find(&markets).Error
	if err != nil {
		return nil, err
	}
	due := make([]ScheduledResult, 0, len(markets))
	for _, m := range markets {
		due = append(due, ScheduledResult{MarketID: m.ID, MarketName: m.Name, Result: m.ScheduledResult})
	}
	return due, nil
}

func (g *GormStore) DeclareScheduled(sr ScheduledResult, now time.Time) error {
	_, err := services.DeclareResult(g.DB, sr.MarketID, services.ResultPayload{Jodi: sr.Result}, services.DeclareOptions{
		DeclaredBy:    "automatic",
		Method:        models.DeclareAutomatic,
		RequireClosed: false,
	})
	return err
}
