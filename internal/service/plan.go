package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/poloedu/polobill/internal/api/dto"
	"github.com/poloedu/polobill/internal/cache"
	"github.com/poloedu/polobill/internal/domain/discount"
	"github.com/poloedu/polobill/internal/domain/plan"
	"github.com/poloedu/polobill/internal/domain/split"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/integration/asaas"
	"github.com/poloedu/polobill/internal/types"
)

// PlanService defines the interface for installment plan operations
type PlanService interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.CreatePlanResponse, error)
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, filter *plan.Filter) (*dto.ListPlansResponse, error)
	GetPaymentBook(ctx context.Context, id string) ([]byte, error)
}

type planService struct {
	ServiceParams
}

// NewPlanService creates a new plan service
func NewPlanService(params ServiceParams) PlanService {
	return &planService{ServiceParams: params}
}

// CreatePlan runs the full flow: validate input, validate splits, resolve
// the discount, build the gateway payload, submit it, then persist. The
// local write happens strictly after gateway success; a write failure at
// that point is surfaced as a partial failure, never a clean error, since
// the gateway-side plan already exists.
func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.CreatePlanResponse, error) {
	log := s.Logger.WithContext(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p := req.ToPlan(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	shares, err := split.Validate(req.ToShares(), p.InstallmentValue)
	if err != nil {
		return nil, err
	}

	d, discountSource := discount.Resolve(req.DiscountSources()...)
	if d != nil {
		if err := d.Validate(p.InstallmentValue); err != nil {
			return nil, err
		}
		p.DiscountType = lo.ToPtr(d.Type)
		p.DiscountValue = lo.ToPtr(d.Value)
		log.Infow("discount resolved for plan",
			"plan_id", p.ID,
			"source", discountSource,
			"discount_type", d.Type,
			"discount_value", d.Value.String())
	}

	payload, err := asaas.BuildCreatePaymentRequest(p, d, shares, &asaas.PaymentOptions{
		Interest:          req.InterestPercent,
		Fine:              req.FinePercent,
		DescriptionSuffix: req.DescriptionSuffix,
	})
	if err != nil {
		return nil, err
	}

	// Phase 1: external call. Nothing has been written locally yet, so a
	// failure here leaves no state behind.
	gwResp, err := s.Gateway.CreateInstallmentPlan(ctx, payload)
	if err != nil {
		log.Errorw("gateway rejected installment plan",
			"plan_id", p.ID,
			"customer_id", p.CustomerID,
			"error", err)
		return nil, err
	}

	p.GatewayPaymentID = gwResp.ID
	p.GatewayInstallmentID = gwResp.Installment
	p.PlanStatus = types.PlanStatusConfirmed

	var audit *plan.DiscountAudit
	if d != nil {
		audit = &plan.DiscountAudit{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DISCOUNT_AUDIT),
			PlanID:       p.ID,
			SourceName:   discountSource,
			DiscountType: d.Type,
			Value:        d.Value,
			CreatedAt:    p.CreatedAt,
		}
	}

	// Phase 2: local write. The plan now exists at the gateway; if this
	// fails the error is marked as a partial failure so it is never
	// confused with a clean rejection.
	if err := s.PlanRepo.Create(ctx, p, audit); err != nil {
		log.Errorw("plan created at gateway but local write failed",
			"plan_id", p.ID,
			"gateway_payment_id", p.GatewayPaymentID,
			"gateway_installment_id", p.GatewayInstallmentID,
			"customer_id", p.CustomerID,
			"total_value", p.TotalValue.String(),
			"reconciliation_required", true,
			"error", err)
		return nil, ierr.WithError(err).
			WithHint("The payment plan was created at the gateway but could not be recorded locally").
			WithReportableDetails(map[string]interface{}{
				"plan_id":            p.ID,
				"gateway_payment_id": p.GatewayPaymentID,
			}).
			Mark(ierr.ErrPartialFailure)
	}

	s.Cache.Set(cache.PlanKey(p.ID), p)

	perInstallment := d.PerInstallment(p.InstallmentValue)
	log.Infow("installment plan created",
		"plan_id", p.ID,
		"gateway_payment_id", p.GatewayPaymentID,
		"installment_count", p.InstallmentCount,
		"total_value", p.TotalValue.String(),
		"discount_per_installment", perInstallment.String())

	return &dto.CreatePlanResponse{
		PlanID:                 p.ID,
		GatewayPaymentID:       p.GatewayPaymentID,
		GatewayInstallmentID:   p.GatewayInstallmentID,
		InstallmentCount:       p.InstallmentCount,
		TotalValue:             p.TotalValue,
		FirstDueDate:           req.FirstDueDate,
		DiscountPerInstallment: perInstallment,
		PotentialSavings:       d.PotentialSavings(p.InstallmentValue, p.InstallmentCount),
		DiscountSource:         discountSource,
		Installments:           dto.NewInstallmentResponses(p.Installments(d)),
	}, nil
}

// GetPlan retrieves a plan by ID, serving repeat reads from cache.
func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	if cached, ok := s.Cache.Get(cache.PlanKey(id)); ok {
		if p, ok := cached.(*plan.Plan); ok {
			return &dto.PlanResponse{Plan: p}, nil
		}
	}

	p, err := s.PlanRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(cache.PlanKey(id), p)
	return &dto.PlanResponse{Plan: p}, nil
}

// ListPlans lists plans with filtering.
func (s *planService) ListPlans(ctx context.Context, filter *plan.Filter) (*dto.ListPlansResponse, error) {
	if filter == nil {
		filter = &plan.Filter{}
	}

	plans, err := s.PlanRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.PlanRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(plans, func(p *plan.Plan, _ int) *dto.PlanResponse {
		return &dto.PlanResponse{Plan: p}
	})

	return &dto.ListPlansResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.GetLimit(),
		Offset: filter.GetOffset(),
	}, nil
}

// GetPaymentBook downloads the gateway's payment book PDF for a plan.
func (s *planService) GetPaymentBook(ctx context.Context, id string) ([]byte, error) {
	resp, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if resp.GatewayInstallmentID == "" {
		return nil, ierr.NewError("plan has no installment book").
			WithHint("The gateway did not return an installment identifier for this plan").
			Mark(ierr.ErrNotFound)
	}
	return s.Gateway.GetPaymentBook(ctx, resp.GatewayInstallmentID)
}
