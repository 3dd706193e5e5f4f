// Package pricing resolves aggregated ingredients against a price catalog and
// computes line costs and a grand total.
//
// Cost policy: line cost is the raw product of the catalog unit price and the
// aggregated quantity. When the catalog price is per-kg and the quantity is in
// grams this overstates the cost; the policy is kept because it matches the
// reference behavior and is pinned by tests.
package pricing

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"ovona-planner/internal/catalog"
	"ovona-planner/internal/category"
)

// DefaultFallbackPrice is applied when no catalog entry matches.
var DefaultFallbackPrice = decimal.NewFromFloat(2.50)

// Item is one priced, categorized shopping list line. Recomputed on every
// costing run, never persisted by the engine itself.
type Item struct {
	Category  category.Category
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice decimal.Decimal
	LineCost  decimal.Decimal
	Estimated bool
	URL       string
}

// Engine prices ingredient aggregates against an injected, read-only catalog.
// An empty catalog is valid: everything gets the fallback price.
type Engine struct {
	catalog  *catalog.Catalog
	fallback decimal.Decimal
}

// Option configures an Engine.
type Option func(*Engine)

// WithFallbackPrice overrides the price applied on catalog misses.
func WithFallbackPrice(p decimal.Decimal) Option {
	return func(e *Engine) { e.fallback = p }
}

// NewEngine creates a costing engine over the given catalog.
func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:  cat,
		fallback: DefaultFallbackPrice,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Price resolves every non-staple ingredient in the aggregate, computes line
// costs and returns the items plus the grand total. Iteration is sorted by
// name and unit so identical aggregates always price identically. A single
// malformed quantity is coerced to 1, never a failure.
func (e *Engine) Price(agg map[string]map[string]float64) ([]Item, decimal.Decimal) {
	names := make([]string, 0, len(agg))
	for name := range agg {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []Item
	total := decimal.Zero

	for _, name := range names {
		if IsStaple(name) {
			continue
		}

		entry, matched := e.catalog.Match(name)

		units := make([]string, 0, len(agg[name]))
		for unit := range agg[name] {
			units = append(units, unit)
		}
		sort.Strings(units)

		for _, unit := range units {
			qty := agg[name][unit]
			if math.IsNaN(qty) || math.IsInf(qty, 0) || qty < 0 {
				qty = 1.0
			}

			item := Item{
				Category: category.Categorize(name),
				Name:     name,
				Quantity: qty,
				Unit:     unit,
			}

			if matched {
				item.UnitPrice = decimal.NewFromFloat(entry.Price)
				item.URL = entry.URL
				if item.Unit == "" && entry.Unit != "" {
					item.Unit = entry.Unit
				}
			} else {
				item.UnitPrice = e.fallback
				item.Estimated = true
			}

			item.LineCost = item.UnitPrice.Mul(decimal.NewFromFloat(qty))
			total = total.Add(item.LineCost)
			items = append(items, item)
		}
	}

	return items, total
}
