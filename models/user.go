package models

import (
	"math"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UserCode string `gorm:"uniqueIndex;size:32" json:"user_code"`
	Name     string `gorm:"size:64" json:"name"`
	Mobile   string `gorm:"size:16;index" json:"mobile"`

	// Segregated wallet balances. The displayed total is always
	// computed, never stored.
	DepositBalance    float64 `json:"deposit_balance"`
	BonusBalance      float64 `json:"bonus_balance"`
	CommissionBalance float64 `json:"commission_balance"`
	WinningBalance    float64 `json:"winning_balance"`

	TotalWinnings float64 `json:"total_winnings"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	Bets         []Bet             `gorm:"foreignKey:UserID" json:"-"`
	Transactions []UserTransaction `gorm:"foreignKey:UserID" json:"-"`
}

// TotalBalance is the sum of the four sub-balances.
func (u *User) TotalBalance() float64 {
	return round2(u.DepositBalance + u.BonusBalance + u.CommissionBalance + u.WinningBalance)
}

// Debit drains amount across the sub-balances, deposit first, then
// bonus, commission and winnings. Returns false without mutating
// anything when the total balance cannot cover the amount.
func (u *User) Debit(amount float64) bool {
	if amount <= 0 {
		return false
	}
	if u.TotalBalance()+1e-6 < amount {
		return false
	}
	remaining := amount
	for _, b := range []*float64{&u.DepositBalance, &u.BonusBalance, &u.CommissionBalance, &u.WinningBalance} {
		if remaining <= 0 {
			break
		}
		take := math.Min(*b, remaining)
		*b = round2(*b - take)
		remaining = round2(remaining - take)
	}
	return true
}

// CreditWinnings adds a winning payout to the winnings balance and the
// lifetime winnings counter.
func (u *User) CreditWinnings(amount float64) {
	u.WinningBalance = round2(u.WinningBalance + amount)
	u.TotalWinnings = round2(u.TotalWinnings + amount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
