package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"matka/helpers"
	"matka/models"
)

var (
	ErrAlreadyDeclared = errors.New("result already declared")
	ErrMarketNotClosed = errors.New("market is not closed yet")
	ErrEmptyResult     = errors.New("no result value supplied")
)

// ResultPayload is the typed declaration input; any subset of the
// three fields may be supplied.
type ResultPayload struct {
	Jodi     string
	Haruf    string
	Crossing string
}

type DeclareOptions struct {
	DeclaredBy string
	Method     string // manual | override | automatic

	// RequireClosed enforces the closed-phase precondition. The strict
	// declare endpoint sets it; the force endpoint bypasses it.
	RequireClosed bool
}

// SettlementReport is returned to the declaring caller.
type SettlementReport struct {
	MarketID      uint    `json:"market_id"`
	MarketName    string  `json:"market_name"`
	WinningNumber string  `json:"winning_number"`
	TotalBets     int     `json:"total_bets"`
	WinningBets   int     `json:"winning_bets"`
	LosingBets    int     `json:"losing_bets"`
	SkippedBets   int     `json:"skipped_bets"`
	TotalPaid     float64 `json:"total_paid"`
}

// DeclareResult closes out a market: claims it under lock, judges
// every pending bet, credits winners atomically with a ledger row
// each, and writes the market-level result summary.
//
// The claim happens first so a concurrent second declaration is
// rejected before any wallet is touched. A single bet's failure is
// logged and skipped, leaving that bet pending for reconciliation; it
// never aborts settlement of the rest of the market.
func DeclareResult(db *gorm.DB, marketID uint, payload ResultPayload, opts DeclareOptions) (*SettlementReport, error) {
	res := ResolveResult(payload.Jodi, payload.Haruf, payload.Crossing)
	if res.Canonical == "" {
		return nil, ErrEmptyResult
	}

	now := time.Now()
	var market models.Market

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&market, marketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMarketNotFound
			}
			return err
		}
		if market.WinningNumber != "" || market.Status == models.MarketResultDeclared {
			return ErrAlreadyDeclared
		}
		if opts.RequireClosed && PhaseAt(&market, now) != models.MarketClosed {
			return ErrMarketNotClosed
		}

		claim := tx.Model(&models.Market{}).
			Where("id = ? AND winning_number = ''", market.ID).
			Updates(map[string]any{
				"winning_number":     res.Canonical,
				"jodi_result":        res.Jodi,
				"haruf_result":       res.Haruf,
				"crossing_result":    res.Crossing,
				"status":             models.MarketResultDeclared,
				"accepting_bets":     false,
				"result_declared_at": now,
				"result_declared_by": opts.DeclaredBy,
				"declare_method":     opts.Method,
			})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrAlreadyDeclared
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var bets []models.Bet
	if err := db.Where("market_id = ? AND status = ?", marketID, models.BetPending).Find(&bets).Error; err != nil {
		return nil, err
	}

	report := &SettlementReport{
		MarketID:      market.ID,
		MarketName:    market.Name,
		WinningNumber: res.Canonical,
		TotalBets:     len(bets),
	}
	summary := &models.ResultSummary{
		MarketID:      market.ID,
		MarketName:    market.Name,
		WinningNumber: res.Canonical,
		DeclaredBy:    opts.DeclaredBy,
		DeclareMethod: opts.Method,
	}

	for i := range bets {
		bet := &bets[i]
		won := IsWinningBet(bet, res, market.CrossingRule)
		if err := settleBet(db, bet, res, won, now); err != nil {
			log.Printf("⚠️ settlement: bet %d on %s skipped: %v", bet.ID, market.Name, err)
			report.SkippedBets++
			continue
		}
		AccumulateSummary(summary, bet, won)
		if won {
			report.WinningBets++
			report.TotalPaid = helpers.FormatFloat(report.TotalPaid+bet.PotentialWin, 2)
		} else {
			report.LosingBets++
		}
	}

	summary.NetMargin = helpers.FormatFloat(summary.TotalAmount-summary.TotalPaid, 2)
	summary.ProcessedAt = &now
	if err := db.Create(summary).Error; err != nil {
		log.Printf("❌ settlement: summary for %s not persisted: %v", market.Name, err)
	}

	log.Printf("✅ settlement: %s result %s, %d/%d winning, paid %.2f",
		market.Name, res.Canonical, report.WinningBets, report.TotalBets, report.TotalPaid)
	return report, nil
}

// settleBet flips one pending bet exactly once and, for winners,
// credits the winnings balance together with the ledger row in the
// same transaction. The guarded update makes re-processing a no-op at
// the database level, so a bet can never be credited twice.
func settleBet(db *gorm.DB, bet *models.Bet, res DeclaredResult, won bool, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":        models.BetLost,
			"is_winner":     false,
			"result_number": res.Canonical,
			"processed_at":  now,
		}
		if won {
			updates["status"] = models.BetWon
			updates["is_winner"] = true
			updates["win_amount"] = bet.PotentialWin
		}
		flip := tx.Model(&models.Bet{}).
			Where("id = ? AND status = ?", bet.ID, models.BetPending).
			Updates(updates)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return errors.New("bet already processed")
		}
		if !won {
			return nil
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, bet.UserID).Error; err != nil {
			return err
		}
		before := user.TotalBalance()
		user.CreditWinnings(bet.PotentialWin)
		if err := tx.Model(&user).Updates(map[string]any{
			"winning_balance": user.WinningBalance,
			"total_winnings":  user.TotalWinnings,
		}).Error; err != nil {
			return err
		}

		betID, marketID := bet.ID, bet.MarketID
		return tx.Create(&models.UserTransaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxWin,
			Amount:        bet.PotentialWin,
			BalanceBefore: before,
			BalanceAfter:  user.TotalBalance(),
			Note:          "Winning credit for " + bet.MarketName,
			RefID:         uuid.New().String(),
			BetID:         &betID,
			MarketID:      &marketID,
		}).Error
	})
}

// AccumulateSummary folds one settled bet into the per-type breakdown.
func AccumulateSummary(s *models.ResultSummary, bet *models.Bet, won bool) {
	s.TotalBets++
	s.TotalAmount = helpers.FormatFloat(s.TotalAmount+bet.Amount, 2)
	paid := 0.0
	if won {
		paid = bet.PotentialWin
		s.WinningBets++
		s.TotalPaid = helpers.FormatFloat(s.TotalPaid+paid, 2)
	} else {
		s.LosingBets++
	}

	switch bet.BetType {
	case models.BetTypeJodi:
		s.JodiBets++
		s.JodiAmount = helpers.FormatFloat(s.JodiAmount+bet.Amount, 2)
		if won {
			s.JodiWins++
			s.JodiPaid = helpers.FormatFloat(s.JodiPaid+paid, 2)
		}
	case models.BetTypeHaruf:
		s.HarufBets++
		s.HarufAmount = helpers.FormatFloat(s.HarufAmount+bet.Amount, 2)
		if won {
			s.HarufWins++
			s.HarufPaid = helpers.FormatFloat(s.HarufPaid+paid, 2)
		}
	case models.BetTypeCrossing:
		s.CrossingBets++
		s.CrossingAmount = helpers.FormatFloat(s.CrossingAmount+bet.Amount, 2)
		if won {
			s.CrossingWins++
			s.CrossingPaid = helpers.FormatFloat(s.CrossingPaid+paid, 2)
		}
	}
}
