// Package catalog holds the retailer price catalog the costing engine prices
// against. A catalog is an ordered list of entries; resolution is substring
// containment in entry order, so the same catalog always resolves the same
// ingredient to the same entry.
package catalog

import "strings"

// Entry is one priced product, keyed by the ingredient search term it was
// scraped for.
type Entry struct {
	Key     string  `json:"key"`
	Product string  `json:"product"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	URL     string  `json:"url,omitempty"`
}

// Catalog is a read-only, ordered price catalog.
type Catalog struct {
	entries []Entry
}

// New builds a catalog preserving the given entry order.
func New(entries ...Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Match resolves an ingredient name to the first entry whose key is a
// substring of the name. The heuristic is deliberately loose ("oil" matches
// "olive oil" and "vegetable oil" alike); entry order decides ties.
func (c *Catalog) Match(name string) (Entry, bool) {
	name = strings.ToLower(name)
	for _, e := range c.entries {
		if e.Key != "" && strings.Contains(name, strings.ToLower(e.Key)) {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns the catalog contents in order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
