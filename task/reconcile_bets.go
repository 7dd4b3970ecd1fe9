package tasks

import (
	"log"
	"matka/database"
	"matka/models"
)

// ReconcileUnsettledBets reports bets still pending on markets whose
// result is already declared. These are the settlement engine's
// skip-don't-abort leftovers (missing wallet, malformed record) and
// need manual follow-up.
func ReconcileUnsettledBets() {
	var stuck []models.Bet
	err := database.DB.
		Joins("JOIN markets ON markets.id = bets.market_id").
		Where("bets.status = ? AND markets.status = ?", models.BetPending, models.MarketResultDeclared).
		Find(&stuck).Error
	if err != nil {
		log.Println("❌ reconcile: scan failed:", err)
		return
	}
	if len(stuck) == 0 {
		return
	}
	for i := range stuck {
		log.Printf("⚠️ reconcile: bet %d (user %s, market %s) still pending after declaration",
			stuck[i].ID, stuck[i].UserCode, stuck[i].MarketName)
	}
	log.Printf("⚠️ reconcile: %d unsettled bet(s) need manual review", len(stuck))
}
