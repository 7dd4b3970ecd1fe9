package helpers

import (
	"github.com/shopspring/decimal"
)

// CrossingCombinations expands a string of base digits into every
// ordered two-digit pairing over distinct positions, deduplicated by
// value in first-seen order. With jodaCut set, pairs whose digits are
// equal ("11", "22", ...) are dropped. Fewer than two usable digits
// yields nil; non-digit characters are ignored.
func CrossingCombinations(digits string, jodaCut bool) []string {
	var base []byte
	for i := 0; i < len(digits); i++ {
		if c := digits[i]; c >= '0' && c <= '9' {
			base = append(base, c)
		}
	}
	if len(base) < 2 {
		return nil
	}

	seen := make(map[string]bool, len(base)*len(base))
	var combos []string
	for i := range base {
		for j := range base {
			if i == j {
				continue
			}
			if jodaCut && base[i] == base[j] {
				continue
			}
			pair := string([]byte{base[i], base[j]})
			if seen[pair] {
				continue
			}
			seen[pair] = true
			combos = append(combos, pair)
		}
	}
	return combos
}

// SplitStake divides a total stake across count combinations, rounding
// each share down to two decimals so the charged total never exceeds
// the requested amount.
func SplitStake(total float64, count int) float64 {
	if count <= 0 || total <= 0 {
		return 0
	}
	per := decimal.NewFromFloat(total).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(count))).
		Floor().
		Div(decimal.NewFromInt(100))
	f, _ := per.Float64()
	return f
}

// ChargedTotal is the amount actually debited for a crossing
// placement: the per-combination stake times the combination count.
func ChargedTotal(perCombo float64, count int) float64 {
	f, _ := decimal.NewFromFloat(perCombo).
		Mul(decimal.NewFromInt(int64(count))).
		Float64()
	return f
}
