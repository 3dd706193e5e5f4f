// Package category assigns shopping categories to ingredient names using an
// ordered keyword table. Matching is substring-based and case-insensitive and
// the rule order is part of the contract: the first category whose keyword
// matches wins. "pepper" is listed under both vegetables and cupboard, so the
// fixed order below is what makes classification deterministic.
package category

import "strings"

// Category is a shopping list grouping.
type Category string

const (
	Meat       Category = "meat"
	Vegetables Category = "vegetables"
	Fruit      Category = "fruit"
	Cupboard   Category = "cupboard"
	Dairy      Category = "dairy"
	Other      Category = "other"
)

type rule struct {
	category Category
	keywords []string
}

// rules are evaluated top to bottom, first match wins.
var rules = []rule{
	{Meat, []string{"chicken", "beef", "mince", "steak", "pork", "salmon", "turkey"}},
	{Vegetables, []string{"carrot", "broccoli", "spinach", "pepper", "lettuce", "onion", "potato", "tomato"}},
	{Fruit, []string{"banana", "apple", "orange", "avocado", "berries"}},
	{Cupboard, []string{"rice", "pasta", "stock", "oats", "almond", "oil", "spice", "salt", "pepper"}},
	{Dairy, []string{"milk", "cheese", "yogurt", "butter", "egg"}},
}

// Categorize returns the category for an ingredient name, or Other when no
// keyword matches.
func Categorize(name string) Category {
	name = strings.ToLower(name)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.category
			}
		}
	}
	return Other
}

// All lists every category in display sort order (alphabetical).
func All() []Category {
	return []Category{Cupboard, Dairy, Fruit, Meat, Other, Vegetables}
}
