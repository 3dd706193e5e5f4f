package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StoredPlan is a persisted generated plan.
type StoredPlan struct {
	ID        int64
	UserID    string
	Days      int
	PlanText  string
	Result    *PlanResult
	CreatedAt time.Time
}

// Repository is a database-backed repository for generated plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new plan repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts a generated plan and returns its ID.
func (r *Repository) Save(ctx context.Context, userID string, result *PlanResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal plan result: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (user_id, days, plan_text, result_data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, result.Days, result.PlanText, string(resultJSON), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert meal plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get meal plan ID: %w", err)
	}
	return id, nil
}

// ListRecentByUserID retrieves the N most recent plans for a user.
func (r *Repository) ListRecentByUserID(ctx context.Context, userID string, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, days, plan_text, result_data, created_at
		 FROM meal_plans WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans for user %s: %w", userID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var p StoredPlan
		var resultJSON string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Days, &p.PlanText, &resultJSON, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		var result PlanResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan result for plan %d: %w", p.ID, err)
		}
		p.Result = &result
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meal plans: %w", err)
	}
	return plans, nil
}
