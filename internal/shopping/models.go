package shopping

import "time"

// List is a rendered shopping list persisted for a generated plan.
type List struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	PlanID    int64     `json:"plan_id"`
	Items     []string  `json:"items"`
	TotalCost string    `json:"total_cost"`
	CreatedAt time.Time `json:"created_at"`
}
