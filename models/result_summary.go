package models

import (
	"time"

	"gorm.io/gorm"
)

// ResultSummary aggregates one declaration event per market. Immutable
// once written, except for the ProcessedAt stamp.
type ResultSummary struct {
	gorm.Model

	MarketID      uint   `gorm:"index" json:"market_id"`
	MarketName    string `gorm:"size:64" json:"market_name"`
	WinningNumber string `gorm:"size:8" json:"winning_number"`

	TotalBets   int     `json:"total_bets"`
	WinningBets int     `json:"winning_bets"`
	LosingBets  int     `json:"losing_bets"`
	TotalAmount float64 `json:"total_amount"`
	TotalPaid   float64 `json:"total_paid"`
	NetMargin   float64 `json:"net_margin"`

	JodiBets   int     `json:"jodi_bets"`
	JodiWins   int     `json:"jodi_wins"`
	JodiAmount float64 `json:"jodi_amount"`
	JodiPaid   float64 `json:"jodi_paid"`

	HarufBets   int     `json:"haruf_bets"`
	HarufWins   int     `json:"haruf_wins"`
	HarufAmount float64 `json:"haruf_amount"`
	HarufPaid   float64 `json:"haruf_paid"`

	CrossingBets   int     `json:"crossing_bets"`
	CrossingWins   int     `json:"crossing_wins"`
	CrossingAmount float64 `json:"crossing_amount"`
	CrossingPaid   float64 `json:"crossing_paid"`

	DeclaredBy    string     `gorm:"size:32" json:"declared_by"`
	DeclareMethod string     `gorm:"size:16" json:"declare_method"`
	ProcessedAt   *time.Time `json:"processed_at"`
}
