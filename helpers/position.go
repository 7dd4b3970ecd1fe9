package helpers

import (
	"strings"

	"matka/models"
)

// NormalizePosition maps the many synonymous haruf position tokens to
// the two-value internal representation. The frontend and older API
// clients send any of these interchangeably.
func NormalizePosition(token string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "leading", "first", "a", "a1", "andhar", "andar":
		return models.PositionLeading, true
	case "trailing", "last", "b", "b2", "bahar":
		return models.PositionTrailing, true
	}
	return "", false
}

// ParseHarufToken extracts a position and digit from raw tokens of the
// form "<letter><digit>", e.g. "A7" (leading 7) or "B3" (trailing 3).
func ParseHarufToken(raw string) (position string, digit string, ok bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 2 {
		return "", "", false
	}
	pos, ok := NormalizePosition(raw[:1])
	if !ok || raw[1] < '0' || raw[1] > '9' {
		return "", "", false
	}
	return pos, string(raw[1]), true
}

// IsDigits reports whether s is non-empty and all ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
