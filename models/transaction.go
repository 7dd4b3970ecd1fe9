package models

import "gorm.io/gorm"

// Ledger transaction types. A bet's stake debit and its winning credit
// are always two distinct rows.
const (
	TrxBet        = "bet"
	TrxWin        = "win"
	TrxDeposit    = "deposit"
	TrxWithdraw   = "withdraw"
	TrxAdjustment = "adjustment"
	TrxRefund     = "refund"
)

// UserTransaction is an append-only ledger record of every
// balance-affecting event.
type UserTransaction struct {
	gorm.Model

	UserID   uint   `gorm:"index" json:"user_id"`
	UserCode string `gorm:"size:32;index" json:"user_code"`

	TrxType       string  `gorm:"size:16;index" json:"trx_type"`
	Amount        float64 `json:"amount"`
	BalanceBefore float64 `json:"balance_before"`
	BalanceAfter  float64 `json:"balance_after"`

	Status string `gorm:"size:16;default:success" json:"status"`
	Note   string `gorm:"size:255" json:"note"`
	RefID  string `gorm:"size:64;index" json:"ref_id"`

	BetID    *uint `gorm:"index" json:"bet_id,omitempty"`
	MarketID *uint `gorm:"index" json:"market_id,omitempty"`
}
