package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bet types.
const (
	BetTypeJodi     = "jodi"
	BetTypeHaruf    = "haruf"
	BetTypeCrossing = "crossing"
)

// Bet statuses.
const (
	BetPending   = "pending"
	BetWon       = "won"
	BetLost      = "lost"
	BetCancelled = "cancelled"
	BetRefunded  = "refunded"
)

// Haruf positions, normalized at intake from the many synonymous
// tokens (first/A/andhar, last/B/bahar).
const (
	PositionLeading  = "leading"
	PositionTrailing = "trailing"
)

type Bet struct {
	gorm.Model

	UserID     uint   `gorm:"index" json:"user_id"`
	UserCode   string `gorm:"size:32;index" json:"user_code"`
	MarketID   uint   `gorm:"index" json:"market_id"`
	MarketName string `gorm:"size:64" json:"market_name"`

	BetType  string `gorm:"size:16;index" json:"bet_type"`
	Number   string `gorm:"size:8" json:"number"`
	Position string `gorm:"size:12" json:"position,omitempty"` // haruf only

	Amount       float64 `json:"amount"`
	PotentialWin float64 `json:"potential_win"`

	Status    string  `gorm:"size:16;index;default:pending" json:"status"`
	IsWinner  bool    `json:"is_winner"`
	WinAmount float64 `json:"win_amount"`

	// Set exactly once when the bet is judged against a declared result.
	ResultNumber string     `gorm:"size:8" json:"result_number,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`

	// Sibling link for bets expanded from one crossing placement.
	CrossingGroup string `gorm:"size:64;index" json:"crossing_group,omitempty"`

	AuxData datatypes.JSON `gorm:"type:jsonb" json:"aux_data,omitempty"`
	RefID   string         `gorm:"size:64;index" json:"ref_id"`
}

// CrossingAux is the shared metadata stored on every bet expanded from
// a single crossing placement.
type CrossingAux struct {
	BaseDigits     string   `json:"base_digits"`
	Combinations   []string `json:"combinations"`
	JodaCut        bool     `json:"joda_cut"`
	ComboCount     int      `json:"combo_count"`
	PerComboStake  float64  `json:"per_combo_stake"`
	RequestedStake float64  `json:"requested_stake"`
	ChargedStake   float64  `json:"charged_stake"`
}

// HarufAux keeps the raw intake tokens alongside the normalized fields.
type HarufAux struct {
	RawNumber   string `json:"raw_number"`
	RawPosition string `json:"raw_position,omitempty"`
}
