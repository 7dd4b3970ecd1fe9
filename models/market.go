package models

import (
	"time"

	"gorm.io/gorm"
)

// Market lifecycle phases.
const (
	MarketWaiting        = "waiting"
	MarketOpen           = "open"
	MarketClosed         = "closed"
	MarketResultDeclared = "result_declared"
)

// Crossing match strategies. Reversible treats "58" and "85" as the
// same winning pair when a dedicated crossing result was declared;
// exact is the legacy plain string comparison.
const (
	CrossingRuleReversible = "reversible"
	CrossingRuleExact      = "exact"
)

// Result declaration methods.
const (
	DeclareManual    = "manual"
	DeclareOverride  = "override"
	DeclareAutomatic = "automatic"
)

type Market struct {
	gorm.Model

	Name     string `gorm:"uniqueIndex;size:64" json:"name"`
	GameType string `gorm:"size:16" json:"game_type"` // nominal type; bets of any type are accepted

	// Wall-clock schedule in the market timezone ("HH:mm").
	StartTime  string `gorm:"size:8" json:"start_time"`
	EndTime    string `gorm:"size:8" json:"end_time"`
	ResultTime string `gorm:"size:8" json:"result_time"`

	// Absolute instants for the current settlement cycle, resolved at
	// creation/reset. The sweeper compares against ClosesAt.
	OpensAt   *time.Time `json:"opens_at"`
	ClosesAt  *time.Time `json:"closes_at"`
	ResultsAt *time.Time `json:"results_at"`

	Status        string `gorm:"size:24;index;default:waiting" json:"status"`
	ForcedStatus  string `gorm:"size:24" json:"forced_status"`
	IsActive      bool   `gorm:"default:true" json:"is_active"`
	AcceptingBets bool   `gorm:"default:true" json:"accepting_bets"`

	AutoClosedAt   *time.Time `json:"auto_closed_at"`
	ManualClosedAt *time.Time `json:"manual_closed_at"`
	ClosedBy       string     `gorm:"size:32" json:"closed_by"`

	MinBet float64 `gorm:"default:10" json:"min_bet"`
	MaxBet float64 `gorm:"default:10000" json:"max_bet"`

	JodiMultiplier     float64 `gorm:"default:95" json:"jodi_multiplier"`
	HarufMultiplier    float64 `gorm:"default:9" json:"haruf_multiplier"`
	CrossingMultiplier float64 `gorm:"default:95" json:"crossing_multiplier"`

	CrossingRule string `gorm:"size:16;default:reversible" json:"crossing_rule"`

	// Declared result. WinningNumber is the canonical value; the three
	// typed fields keep whatever representation each bet type was
	// declared with.
	WinningNumber  string `gorm:"size:8" json:"winning_number"`
	JodiResult     string `gorm:"size:8" json:"jodi_result"`
	HarufResult    string `gorm:"size:8" json:"haruf_result"`
	CrossingResult string `gorm:"size:8" json:"crossing_result"`

	// Pre-staged result the sweeper declares once ResultsAt passes.
	ScheduledResult string `gorm:"size:8" json:"scheduled_result"`

	ResultDeclaredAt *time.Time `json:"result_declared_at"`
	ResultDeclaredBy string     `gorm:"size:32" json:"result_declared_by"`
	DeclareMethod    string     `gorm:"size:16" json:"declare_method"`

	Bets []Bet `gorm:"foreignKey:MarketID" json:"-"`
}
