// Package shopping renders and persists priced shopping lists.
package shopping

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"ovona-planner/internal/category"
	"ovona-planner/internal/pricing"
)

// Format renders priced items as display lines grouped by category.
// Categories iterate alphabetically and items within a category sort
// alphabetically by name, so the same items always render in the same order.
// Fallback-priced lines carry a trailing "*" marker and catalog-backed lines
// append their product link.
func Format(items []pricing.Item) []string {
	grouped := make(map[category.Category][]pricing.Item)
	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	var lines []string
	for _, cat := range category.All() {
		catItems := grouped[cat]
		if len(catItems) == 0 {
			continue
		}
		sort.Slice(catItems, func(i, j int) bool {
			if catItems[i].Name != catItems[j].Name {
				return catItems[i].Name < catItems[j].Name
			}
			return catItems[i].Unit < catItems[j].Unit
		})

		lines = append(lines, titleCase(string(cat))+":")
		for _, item := range catItems {
			lines = append(lines, "  "+FormatItem(item))
		}
	}
	return lines
}

// FormatItem renders a single shopping list line: "Name – 500g" with an
// asterisk for estimated prices and the catalog URL when known. Countable
// items (unit "unit" or none) render as a plain count.
func FormatItem(item pricing.Item) string {
	var sb strings.Builder
	sb.WriteString(titleCase(item.Name))
	sb.WriteString(" – ")
	if item.Unit != "" && item.Unit != "unit" {
		fmt.Fprintf(&sb, "%.0f%s", item.Quantity, item.Unit)
	} else {
		fmt.Fprintf(&sb, "%d", int(item.Quantity))
	}
	if item.Estimated {
		sb.WriteString("  *")
	}
	if item.URL != "" {
		sb.WriteString("  ")
		sb.WriteString(item.URL)
	}
	return sb.String()
}

// FormatTotal renders the grand total as a display string.
func FormatTotal(total decimal.Decimal) string {
	return fmt.Sprintf("Estimated Total Cost: ~£%s", total.StringFixed(2))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
