package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"matka/helpers"
	"matka/models"
)

var ErrMarketNotFound = errors.New("market not found")

// PhaseAt derives the market's lifecycle phase at the given instant.
// An admin-forced status on an active market wins unconditionally;
// a persisted declared result is terminal; everything else comes from
// the shared cross-midnight clock arithmetic.
func PhaseAt(m *models.Market, now time.Time) string {
	if m.ForcedStatus != "" && m.IsActive {
		return m.ForcedStatus
	}
	if m.Status == models.MarketResultDeclared {
		return models.MarketResultDeclared
	}
	w, err := helpers.NewClockWindow(m.StartTime, m.EndTime, m.ResultTime)
	if err != nil {
		return m.Status
	}
	return w.PhaseAt(helpers.MinuteOfDay(now))
}

// AcceptingBets reports whether new bets may be placed right now. The
// guards are independent; any one of them alone blocks intake.
func AcceptingBets(m *models.Market, now time.Time) bool {
	if PhaseAt(m, now) != models.MarketOpen {
		return false
	}
	if !m.AcceptingBets {
		return false
	}
	if m.ClosesAt != nil && !now.Before(*m.ClosesAt) {
		return false
	}
	if m.ManualClosedAt != nil {
		return false
	}
	return true
}

// TimeRemaining is the human-readable countdown shown next to a
// market's status.
func TimeRemaining(m *models.Market, now time.Time) string {
	switch PhaseAt(m, now) {
	case models.MarketWaiting:
		return "opens at " + m.StartTime
	case models.MarketOpen:
		w, err := helpers.NewClockWindow(m.StartTime, m.EndTime, m.ResultTime)
		if err != nil {
			return "open"
		}
		cur := helpers.AdjustedMinute(w.Start, helpers.MinuteOfDay(now))
		left := w.End - cur
		if left <= 0 {
			return "closing"
		}
		return fmt.Sprintf("closes in %dh%02dm", left/60, left%60)
	case models.MarketClosed:
		return "result at " + m.ResultTime
	default:
		return "result declared"
	}
}

// ResolveMarketInstants fills the absolute UTC instants for the
// market's next settlement cycle. When the cycle anchored on base's
// day is already past its result instant, the whole window rolls to
// the next day.
func ResolveMarketInstants(m *models.Market, base time.Time) error {
	w, err := helpers.NewClockWindow(m.StartTime, m.EndTime, m.ResultTime)
	if err != nil {
		return err
	}
	loc := helpers.MarketLocation()
	local := base.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	opens := day.Add(time.Duration(w.Start) * time.Minute)
	closes := day.Add(time.Duration(w.End) * time.Minute)
	results := day.Add(time.Duration(w.Result) * time.Minute)
	if !base.Before(results) {
		opens = opens.Add(24 * time.Hour)
		closes = closes.Add(24 * time.Hour)
		results = results.Add(24 * time.Hour)
	}

	opensUTC, closesUTC, resultsUTC := opens.UTC(), closes.UTC(), results.UTC()
	m.OpensAt, m.ClosesAt, m.ResultsAt = &opensUTC, &closesUTC, &resultsUTC
	return nil
}

// ForceClose closes a market immediately, outside the sweep schedule,
// recording who triggered it. Closing an already closed or declared
// market is a no-op.
func ForceClose(db *gorm.DB, marketID uint, closedBy string) error {
	now := time.Now()
	res := db.Model(&models.Market{}).
		Where("id = ? AND status NOT IN ?", marketID, []string{models.MarketClosed, models.MarketResultDeclared}).
		Updates(map[string]any{
			"status":           models.MarketClosed,
			"accepting_bets":   false,
			"manual_closed_at": now,
			"closed_by":        closedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var m models.Market
		if err := db.First(&m, marketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMarketNotFound
			}
			return err
		}
	}
	return nil
}
