package extract

import "strings"

// unitMapping pairs a canonical unit with the multiplier applied to the
// parsed quantity. A "handful of spinach" becomes 30g, "1 cup" becomes 240ml.
type unitMapping struct {
	Unit   string
	Factor float64
}

// colloquialUnits maps vague quantity vocabulary from generated plans to
// canonical units. Plural forms are listed explicitly because the plans
// use both freely.
var colloquialUnits = map[string]unitMapping{
	"handful":  {"g", 30},
	"handfuls": {"g", 30},
	"scoop":    {"g", 30},
	"scoops":   {"g", 30},
	"cup":      {"ml", 240},
	"cups":     {"ml", 240},
	"tbsp":     {"ml", 15},
	"tsp":      {"ml", 5},
	"slice":    {"unit", 1},
	"slices":   {"unit", 1},
	"egg":      {"unit", 1},
	"eggs":     {"unit", 1},
	"clove":    {"unit", 1},
	"cloves":   {"unit", 1},
}

// canonicalUnits pass through unchanged with factor 1.
var canonicalUnits = map[string]bool{
	"g":  true,
	"kg": true,
	"ml": true,
	"l":  true,
}

// NormalizeUnit maps a raw unit token to a canonical (unit, factor) pair.
// Unrecognized non-empty tokens are kept literally with factor 1 so a weird
// unit never aborts parsing. An empty token yields an empty unit.
func NormalizeUnit(token string) (string, float64) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", 1
	}
	if canonicalUnits[token] {
		return token, 1
	}
	if m, ok := colloquialUnits[token]; ok {
		return m.Unit, m.Factor
	}
	return token, 1
}

// knownUnit reports whether token would be recognized as a unit rather than
// kept as literal text. The ingredient parser uses this to decide whether the
// token after a leading quantity is a unit or part of the name.
func knownUnit(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if canonicalUnits[token] {
		return true
	}
	_, ok := colloquialUnits[token]
	return ok
}
