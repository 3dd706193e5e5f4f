package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository persists catalog entries to the database. The position column
// preserves entry order so a reloaded catalog matches the way the saved one
// did.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Replace swaps the stored catalog for the given entries in one transaction.
func (r *Repository) Replace(ctx context.Context, entries []Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog_entries`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	now := time.Now().UTC()
	for i, e := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_entries (position, key, product, price, unit, url, scraped_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, e.Key, e.Product, e.Price, e.Unit, e.URL, now)
		if err != nil {
			return fmt.Errorf("failed to insert catalog entry %q: %w", e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// Load reads the stored catalog back in position order. An empty table yields
// an empty catalog, not an error.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, product, price, unit, url FROM catalog_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Product, &e.Price, &e.Unit, &e.URL); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog entries: %w", err)
	}
	return New(entries...), nil
}
