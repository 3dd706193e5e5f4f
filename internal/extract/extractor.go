package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Ledger maps a day number to its total kcal.
type Ledger map[int]int

// Result is the structured output of a single pass over a raw plan: the
// ingredient aggregate and the per-day calorie ledger. Both are always
// present, possibly empty.
type Result struct {
	Ingredients Aggregate
	Calories    Ledger
}

var (
	dayRe   = regexp.MustCompile(`(?i)^day\s+([0-9]+)`)
	totalRe = regexp.MustCompile(`(?i)total:\s*([0-9]+)\s*kcal`)
	kcalRe  = regexp.MustCompile(`(?i)\b([0-9]+)\s*kcal\b`)
)

// Extract runs the whole extraction pipeline over raw plan text in one linear
// pass. Malformed lines are skipped, never fatal: however mangled the input,
// the result is a valid (possibly empty) Result.
//
// Calorie policy: an explicit "Total: N kcal" line is last-write-wins for the
// current day; bare "N kcal" mentions accumulate only while no explicit total
// has been recorded for that day. Calorie statements before any day marker
// are discarded.
func Extract(text string) Result {
	result := Result{
		Ingredients: NewAggregate(),
		Calories:    make(Ledger),
	}

	currentDay := 0 // 0 means no day marker seen yet
	totalSeen := make(map[int]bool)

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		if day, ok := matchDayMarker(stripped); ok {
			currentDay = day
			continue
		}

		if m := totalRe.FindStringSubmatch(stripped); m != nil {
			if currentDay > 0 {
				if kcal, err := strconv.Atoi(m[1]); err == nil {
					result.Calories[currentDay] = kcal
					totalSeen[currentDay] = true
				}
			}
			continue
		}

		if entries := ParseIngredientLine(stripped); len(entries) > 0 {
			for _, e := range entries {
				result.Ingredients.Add(e.Name, e.Unit, e.Quantity)
			}
			continue
		}

		if m := kcalRe.FindStringSubmatch(stripped); m != nil {
			if currentDay > 0 && !totalSeen[currentDay] {
				if kcal, err := strconv.Atoi(m[1]); err == nil {
					result.Calories[currentDay] += kcal
				}
			}
		}
		// Everything else is noise.
	}

	return result
}

// matchDayMarker recognizes "Day 3" headings, tolerating leading emoji and
// markdown decoration ("### 📅 **Day 3**").
func matchDayMarker(line string) (int, bool) {
	cleaned := strings.TrimLeft(stripEmphasis(line), "#📅🗓️ \t")
	m := dayRe.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day <= 0 {
		return 0, false
	}
	return day, true
}
