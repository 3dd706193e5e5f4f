package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Entry is a single normalized ingredient occurrence: lowercase name,
// canonical unit (possibly empty) and a non-negative quantity.
type Entry struct {
	Name     string
	Unit     string
	Quantity float64
}

const inlineMarker = "Ingredients:"

var (
	// "(500g)", "(1.5 kg)", "(2 cups)"
	parenRe = regexp.MustCompile(`\(\s*([0-9]+(?:\.[0-9]+)?)\s*([a-zA-Z]+)\s*\)`)
	// "500 g chicken", "1 cup spinach", "2 eggs"
	leadingQtyRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s+(.*)$`)
	digitRe      = regexp.MustCompile(`[0-9]`)
)

// ParseIngredientLine converts one line into zero or more ingredient entries.
// It recognizes bulleted lines ("- ..." / "* ...") and inline ingredient
// lists ("Ingredients: a, b, c"). Anything else yields no entries.
func ParseIngredientLine(line string) []Entry {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if idx := strings.Index(trimmed, inlineMarker); idx >= 0 {
		return parseInlineList(trimmed[idx+len(inlineMarker):])
	}

	body, ok := stripBullet(trimmed)
	if !ok {
		return nil
	}
	// Prose continuations are bullet-prefixed too ("- Ensure variety...").
	// Only lines carrying at least one digit count as ingredients.
	if !digitRe.MatchString(body) {
		return nil
	}

	if entry, ok := parseCandidate(body, false); ok {
		return []Entry{entry}
	}
	return nil
}

// stripBullet removes a leading "- " or "* " marker.
func stripBullet(line string) (string, bool) {
	for _, marker := range []string{"- ", "* "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}

// parseInlineList splits everything after "Ingredients:" on commas. Each item
// defaults to quantity 1 and no unit unless it carries its own "(amount unit)"
// suffix.
func parseInlineList(rest string) []Entry {
	var entries []Entry
	for _, item := range strings.Split(rest, ",") {
		if entry, ok := parseCandidate(strings.TrimSpace(item), true); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseCandidate extracts (name, unit, quantity) from one candidate string.
// A parenthesized "(amount unit)" suffix takes precedence over a leading
// quantity. With allowBare set (inline list items) a plain name is accepted
// as quantity 1.
func parseCandidate(body string, allowBare bool) (Entry, bool) {
	body = stripEmphasis(body)

	if m := parenRe.FindStringSubmatch(body); m != nil {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			amount = 1
		}
		unit, factor := NormalizeUnit(m[2])
		rest := strings.TrimSpace(parenRe.ReplaceAllString(body, " "))
		// A redundant leading quantity loses to the parenthetical.
		if lead := leadingQtyRe.FindStringSubmatch(rest); lead != nil {
			rest = lead[2]
		}
		name := cleanName(rest)
		if name == "" {
			return Entry{}, false
		}
		return Entry{Name: name, Unit: unit, Quantity: amount * factor}, true
	}

	if m := leadingQtyRe.FindStringSubmatch(body); m != nil {
		qty, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			qty = 1
		}
		rest := m[2]
		token, remainder := splitFirstToken(rest)
		if knownUnit(token) {
			unit, factor := NormalizeUnit(token)
			name := cleanName(remainder)
			if name == "" {
				// "2 eggs": the unit token is the ingredient itself.
				name = cleanName(token)
			}
			if name == "" {
				return Entry{}, false
			}
			return Entry{Name: name, Unit: unit, Quantity: qty * factor}, true
		}
		name := cleanName(rest)
		if name == "" {
			return Entry{}, false
		}
		return Entry{Name: name, Unit: "", Quantity: qty}, true
	}

	if !allowBare {
		// Bulleted candidates without a parseable quantity keep their digit
		// (e.g. "chicken 500g" glued together) and fall back to one unit.
		name := cleanName(body)
		if name == "" {
			return Entry{}, false
		}
		return Entry{Name: name, Unit: "", Quantity: 1}, true
	}

	name := cleanName(body)
	if name == "" {
		return Entry{}, false
	}
	return Entry{Name: name, Unit: "", Quantity: 1}, true
}

func splitFirstToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return s[:idx], strings.TrimSpace(s[idx+1:])
	}
	return s, ""
}

// stripEmphasis drops markdown emphasis markers the generator sprinkles in.
func stripEmphasis(s string) string {
	return strings.NewReplacer("**", "", "*", "", "__", "", "_", " ", "`", "").Replace(s)
}

// cleanName lowercases, truncates preparation notes (" with ...", " and ...")
// and strips trailing punctuation.
func cleanName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, sep := range []string{" with ", " and "} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	name = strings.TrimRight(name, " .,;:!-–")
	return strings.Join(strings.Fields(name), " ")
}
