package pricing

import "strings"

// pantryStaples are commonly stocked ingredients excluded from costing and
// from the priced shopping list. Matching is by substring so "extra virgin
// olive oil" is still a staple.
var pantryStaples = []string{
	"olive oil",
	"salt",
	"pepper",
	"soy sauce",
	"vinegar",
	"lemon juice",
	"spices",
}

// IsStaple reports whether the ingredient name contains a pantry-staple
// substring.
func IsStaple(name string) bool {
	name = strings.ToLower(name)
	for _, staple := range pantryStaples {
		if strings.Contains(name, staple) {
			return true
		}
	}
	return false
}

// StaplesIn returns the staple keywords the aggregate actually used, in the
// fixed staple order. Front-ends render these as a "pantry staples used"
// footer.
func StaplesIn(names []string) []string {
	used := make(map[string]bool)
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, staple := range pantryStaples {
			if strings.Contains(lower, staple) {
				used[staple] = true
			}
		}
	}

	var result []string
	for _, staple := range pantryStaples {
		if used[staple] {
			result = append(result, staple)
		}
	}
	return result
}
