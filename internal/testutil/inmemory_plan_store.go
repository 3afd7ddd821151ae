package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/poloedu/polobill/internal/domain/plan"
	ierr "github.com/poloedu/polobill/internal/errors"
)

// InMemoryPlanStore implements plan.Repository for tests.
type InMemoryPlanStore struct {
	mu     sync.RWMutex
	plans  map[string]*plan.Plan
	audits map[string]*plan.DiscountAudit

	// CreateErr, when set, makes Create fail. Used to exercise the
	// partial-failure path after a successful gateway call.
	CreateErr error
}

// NewInMemoryPlanStore creates a new in-memory plan store
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans:  make(map[string]*plan.Plan),
		audits: make(map[string]*plan.DiscountAudit),
	}
}

func copyPlan(p *plan.Plan) *plan.Plan {
	if p == nil {
		return nil
	}
	copied := *p
	if p.DiscountType != nil {
		dt := *p.DiscountType
		copied.DiscountType = &dt
	}
	if p.DiscountValue != nil {
		dv := *p.DiscountValue
		copied.DiscountValue = &dv
	}
	return &copied
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan, audit *plan.DiscountAudit) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").
			WithHint("Plan cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID]; exists {
		return ierr.NewError("plan already exists").
			WithReportableDetails(map[string]interface{}{"id": p.ID}).
			Mark(ierr.ErrAlreadyExists)
	}

	s.plans[p.ID] = copyPlan(p)
	if audit != nil {
		auditCopy := *audit
		s.audits[p.ID] = &auditCopy
	}
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plans[id]
	if !ok {
		return nil, ierr.NewError("plan not found").
			WithHintf("Plan %s does not exist", id).
			Mark(ierr.ErrNotFound)
	}
	return copyPlan(p), nil
}

func (s *InMemoryPlanStore) List(ctx context.Context, filter *plan.Filter) ([]*plan.Plan, error) {
	matched := s.match(filter)

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryPlanStore) Count(ctx context.Context, filter *plan.Filter) (int, error) {
	return len(s.match(filter)), nil
}

// GetAudit exposes the stored discount audit row for assertions.
func (s *InMemoryPlanStore) GetAudit(planID string) *plan.DiscountAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audits[planID]
}

func (s *InMemoryPlanStore) match(filter *plan.Filter) []*plan.Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := lo.FilterMap(lo.Values(s.plans), func(p *plan.Plan, _ int) (*plan.Plan, bool) {
		if filter != nil && filter.CustomerID != "" && p.CustomerID != filter.CustomerID {
			return nil, false
		}
		if filter != nil && filter.PlanStatus != "" && p.PlanStatus != filter.PlanStatus {
			return nil, false
		}
		return copyPlan(p), true
	})

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}
