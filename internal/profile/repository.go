package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository persists user profiles keyed by name.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new profile repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or replaces the profile for its name.
func (r *Repository) Save(ctx context.Context, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.Name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by name. Returns nil when no profile exists.
func (r *Repository) Get(ctx context.Context, name string) (*Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}

// Default returns the stored profile when exactly one exists, mirroring the
// auto-load behavior of the original front-end. With zero or multiple
// profiles it returns nil.
func (r *Repository) Default(ctx context.Context) (*Profile, error) {
	profiles, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) != 1 {
		return nil, nil
	}
	return &profiles[0], nil
}

// List returns all stored profiles ordered by name.
func (r *Repository) List(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM profiles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		var p Profile
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}
