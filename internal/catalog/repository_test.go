package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"ovona-planner/internal/database"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepository_ReplaceAndLoad(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.SQL)
	ctx := context.Background()

	entries := []Entry{
		{Key: "chicken breast", Product: "Tesco Chicken Breast Fillets", Price: 5.50, Unit: "kg", URL: "https://www.tesco.com/chicken"},
		{Key: "brown rice", Product: "Tesco Brown Rice", Price: 1.25, Unit: "kg"},
		{Key: "banana", Product: "Tesco Bananas", Price: 0.90, Unit: "5 pack"},
	}
	if err := repo.Replace(ctx, entries); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}

	cat, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("Expected 3 entries, got %d", cat.Len())
	}

	// Round-trip preserves insertion order, not alphabetical order.
	got := cat.Entries()
	for i := range entries {
		if got[i].Key != entries[i].Key {
			t.Errorf("Expected key '%s' at position %d, got '%s'", entries[i].Key, i, got[i].Key)
		}
		if got[i].Price != entries[i].Price {
			t.Errorf("Expected price %f for '%s', got %f", entries[i].Price, entries[i].Key, got[i].Price)
		}
	}
	if got[0].URL != "https://www.tesco.com/chicken" {
		t.Errorf("Expected URL round-tripped, got '%s'", got[0].URL)
	}
}

func TestRepository_ReplaceOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.SQL)
	ctx := context.Background()

	if err := repo.Replace(ctx, []Entry{{Key: "old", Product: "Old Product", Price: 1.00}}); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}
	if err := repo.Replace(ctx, []Entry{{Key: "new", Product: "New Product", Price: 2.00}}); err != nil {
		t.Fatalf("Replace returned error: %v", err)
	}

	cat, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Expected old catalog replaced, got %d entries", cat.Len())
	}
	if cat.Entries()[0].Key != "new" {
		t.Errorf("Expected key 'new', got '%s'", cat.Entries()[0].Key)
	}
}

func TestRepository_LoadEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.SQL)

	cat, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("Expected empty catalog, got %d entries", cat.Len())
	}
}
