package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save creates a new shopping list in the database and returns its ID.
func (r *Repository) Save(ctx context.Context, list *List) (int64, error) {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (user_id, plan_id, items, total_cost, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		list.UserID, list.PlanID, string(itemsJSON), list.TotalCost, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get shopping list ID: %w", err)
	}
	return id, nil
}

// GetByPlanID retrieves a shopping list by plan ID. Returns nil when no list
// exists for the plan.
func (r *Repository) GetByPlanID(ctx context.Context, planID int64) (*List, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, plan_id, items, total_cost, created_at
		 FROM shopping_lists WHERE plan_id = ? ORDER BY created_at DESC LIMIT 1`, planID)

	var list List
	var itemsJSON string
	err := row.Scan(&list.ID, &list.UserID, &list.PlanID, &itemsJSON, &list.TotalCost, &list.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shopping list by plan ID: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return &list, nil
}

// DeleteByPlanID deletes any shopping lists stored for a plan.
func (r *Repository) DeleteByPlanID(ctx context.Context, planID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE plan_id = ?`, planID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
