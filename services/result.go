package services

import "strings"

// DeclaredResult carries the per-type winning values after fallback
// resolution. Historically the three bet types could be declared with
// different representations, so each typed check reads its own field
// and falls back to the shared canonical value when unset.
type DeclaredResult struct {
	Canonical string
	Jodi      string
	Haruf     string
	Crossing  string

	// CrossingDedicated reports whether the crossing value was supplied
	// explicitly rather than inherited through the fallback chain. The
	// reversal-tolerant match only applies to dedicated values.
	CrossingDedicated bool
}

// ResolveResult builds the declared result from whichever typed inputs
// were supplied. Unset fields default to the first non-empty of the
// three; that same value is the canonical winning number persisted on
// the market.
func ResolveResult(jodi, haruf, crossing string) DeclaredResult {
	jodi = strings.TrimSpace(jodi)
	haruf = strings.TrimSpace(haruf)
	crossing = strings.TrimSpace(crossing)

	fallback := firstNonEmpty(jodi, haruf, crossing)

	res := DeclaredResult{
		Canonical:         fallback,
		Jodi:              jodi,
		Haruf:             haruf,
		Crossing:          crossing,
		CrossingDedicated: crossing != "",
	}
	if res.Jodi == "" {
		res.Jodi = fallback
	}
	if res.Haruf == "" {
		res.Haruf = fallback
	}
	if res.Crossing == "" {
		res.Crossing = fallback
	}
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
