package plan

import (
	"context"

	"github.com/poloedu/polobill/internal/types"
)

// Repository defines the interface for plan persistence operations.
type Repository interface {
	// Create persists a confirmed plan and, when present, its discount
	// audit row in a single all-or-nothing transaction.
	Create(ctx context.Context, p *Plan, audit *DiscountAudit) error

	// Get retrieves a plan by ID.
	Get(ctx context.Context, id string) (*Plan, error)

	// List retrieves plans matching the filter.
	List(ctx context.Context, filter *Filter) ([]*Plan, error)

	// Count returns the number of plans matching the filter.
	Count(ctx context.Context, filter *Filter) (int, error)
}

// Filter defines query parameters for listing plans.
type Filter struct {
	CustomerID string           `form:"customer_id"`
	PlanStatus types.PlanStatus `form:"plan_status"`
	Limit      int              `form:"limit"`
	Offset     int              `form:"offset"`
}

const defaultListLimit = 50

// GetLimit returns the effective page size.
func (f *Filter) GetLimit() int {
	if f == nil || f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// GetOffset returns the effective page offset.
func (f *Filter) GetOffset() int {
	if f == nil || f.Offset < 0 {
		return 0
	}
	return f.Offset
}
