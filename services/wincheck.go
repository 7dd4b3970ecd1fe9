package services

import (
	"matka/helpers"
	"matka/models"
)

// IsWinningBet judges a single bet against the resolved result. Pure:
// no side effects, safe to call from settlement and from reporting.
func IsWinningBet(bet *models.Bet, res DeclaredResult, crossingRule string) bool {
	switch bet.BetType {
	case models.BetTypeJodi:
		return res.Jodi != "" && bet.Number == res.Jodi
	case models.BetTypeHaruf:
		return harufWins(bet, res.Haruf)
	case models.BetTypeCrossing:
		return crossingWins(bet.Number, res, crossingRule)
	}
	return false
}

// harufWins compares the bet's digit against the leading or trailing
// digit of the declared two-digit value. Position comes from the
// structured field when present; otherwise from a raw "A7"/"B3" token;
// otherwise the leading digit of the raw token is compared at leading
// position.
func harufWins(bet *models.Bet, declared string) bool {
	if len(declared) < 2 {
		return false
	}
	leading := string(declared[0])
	trailing := string(declared[len(declared)-1])

	pos := bet.Position
	digit := bet.Number
	if pos == "" {
		if p, d, ok := helpers.ParseHarufToken(bet.Number); ok {
			pos, digit = p, d
		} else {
			pos = models.PositionLeading
			if digit != "" {
				digit = string(digit[0])
			}
		}
	} else if _, d, ok := helpers.ParseHarufToken(digit); ok {
		// Structured position with a raw token still stored as number.
		digit = d
	}

	if len(digit) != 1 || !helpers.IsDigits(digit) {
		return false
	}
	if pos == models.PositionTrailing {
		return digit == trailing
	}
	return digit == leading
}

// crossingWins matches the bet's pair against the crossing result.
// Under the reversible rule a dedicated crossing value also matches
// its character reversal; a value inherited through the fallback chain
// is compared by plain equality, as is everything under the legacy
// exact rule.
func crossingWins(number string, res DeclaredResult, rule string) bool {
	if number == "" || res.Crossing == "" {
		return false
	}
	if rule != models.CrossingRuleExact && res.CrossingDedicated {
		return number == res.Crossing || number == reverseString(res.Crossing)
	}
	return number == res.Crossing
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
