package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// fileEntry is the value shape of the scraped price file: a JSON object
// mapping ingredient name to product details.
type fileEntry struct {
	Product string  `json:"product"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	URL     *string `json:"url"`
}

// LoadFile reads a price catalog from a JSON file. JSON objects carry no
// order, so keys are sorted to keep match resolution deterministic across
// loads.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parseJSON(data)
}

func parseJSON(data []byte) (*Catalog, error) {
	var raw map[string]fileEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		fe := raw[k]
		e := Entry{
			Key:     k,
			Product: fe.Product,
			Price:   fe.Price,
			Unit:    fe.Unit,
		}
		if fe.URL != nil {
			e.URL = *fe.URL
		}
		entries = append(entries, e)
	}
	return New(entries...), nil
}
