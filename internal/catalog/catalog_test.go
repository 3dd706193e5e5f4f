package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatch(t *testing.T) {
	cat := New(
		Entry{Key: "chicken breast", Product: "Tesco Chicken Breast Fillets", Price: 5.50, Unit: "kg"},
		Entry{Key: "rice", Product: "Tesco Basmati Rice", Price: 1.10, Unit: "kg"},
	)

	t.Run("substring containment", func(t *testing.T) {
		entry, ok := cat.Match("organic chicken breast fillet")
		if !ok {
			t.Fatal("Expected a match for 'organic chicken breast fillet'")
		}
		if entry.Product != "Tesco Chicken Breast Fillets" {
			t.Errorf("Expected chicken entry, got '%s'", entry.Product)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		if _, ok := cat.Match("Chicken Breast"); !ok {
			t.Error("Expected case-insensitive match")
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := cat.Match("dragonfruit"); ok {
			t.Error("Expected no match for 'dragonfruit'")
		}
	})
}

func TestMatch_FirstEntryWins(t *testing.T) {
	cat := New(
		Entry{Key: "oil", Product: "Tesco Vegetable Oil", Price: 1.80, Unit: "l"},
		Entry{Key: "olive oil", Product: "Tesco Olive Oil", Price: 3.50, Unit: "l"},
	)

	// "olive oil" contains both keys; entry order decides.
	entry, ok := cat.Match("olive oil")
	if !ok {
		t.Fatal("Expected a match for 'olive oil'")
	}
	if entry.Product != "Tesco Vegetable Oil" {
		t.Errorf("Expected first entry to win, got '%s'", entry.Product)
	}
}

func TestLoadFile(t *testing.T) {
	data := `{
		"spinach": {"product": "Tesco Spinach", "price": 0.95, "unit": "260g", "url": "https://www.tesco.com/spinach"},
		"chicken breast": {"product": "Tesco Chicken Breast Fillets", "price": 5.50, "unit": "kg", "url": null},
		"banana": {"product": "Tesco Bananas", "price": 0.90, "unit": "5 pack", "url": "https://www.tesco.com/bananas"}
	}`

	path := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("Expected 3 entries, got %d", cat.Len())
	}

	// JSON object order is arbitrary; keys must come back sorted.
	entries := cat.Entries()
	wantKeys := []string{"banana", "chicken breast", "spinach"}
	for i, want := range wantKeys {
		if entries[i].Key != want {
			t.Errorf("Expected key '%s' at position %d, got '%s'", want, i, entries[i].Key)
		}
	}

	if entries[1].Price != 5.50 {
		t.Errorf("Expected price 5.50, got %f", entries[1].Price)
	}
	if entries[1].URL != "" {
		t.Errorf("Expected empty URL for null, got '%s'", entries[1].URL)
	}
	if entries[0].URL != "https://www.tesco.com/bananas" {
		t.Errorf("Expected banana URL, got '%s'", entries[0].URL)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("Expected error for invalid JSON, got nil")
	}
}
