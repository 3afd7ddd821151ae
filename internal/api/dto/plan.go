package dto

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/poloedu/polobill/internal/domain/discount"
	"github.com/poloedu/polobill/internal/domain/plan"
	"github.com/poloedu/polobill/internal/domain/split"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/types"
	"github.com/poloedu/polobill/internal/validator"
)

const dueDateLayout = "2006-01-02"

// DiscountRequest is the structured discount block of a plan request.
type DiscountRequest struct {
	Type     types.DiscountType     `json:"type" validate:"required"`
	Value    decimal.Decimal        `json:"value" validate:"required"`
	Deadline types.DiscountDeadline `json:"deadline,omitempty"`
}

// FormDiscountInput mirrors the raw admin-form discount fields. Kept
// loosely typed on purpose: the form ships strings and a checkbox flag.
type FormDiscountInput struct {
	Enabled string `json:"enabled"`
	Value   string `json:"value"`
	Type    string `json:"type"`
}

// SplitShareRequest is one split entry of a plan request.
type SplitShareRequest struct {
	WalletID   string           `json:"wallet_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	FixedValue *decimal.Decimal `json:"fixed_value,omitempty"`
}

// CreatePlanRequest creates an installment plan and submits it to the
// gateway. Discount intent may arrive through four entry points; the
// service resolves them by fixed precedence (request object first, then
// the legacy installment config value, then the raw form input, then a
// discount echoed by a prior gateway response).
type CreatePlanRequest struct {
	CustomerID       string            `json:"customer_id" validate:"required"`
	StudentName      string            `json:"student_name,omitempty"`
	BillingType      types.BillingType `json:"billing_type" validate:"required"`
	InstallmentCount int               `json:"installment_count" validate:"required"`
	InstallmentValue decimal.Decimal   `json:"installment_value" validate:"required"`
	FirstDueDate     string            `json:"first_due_date" validate:"required"`
	Description      string            `json:"description,omitempty"`

	Discount            *DiscountRequest   `json:"discount,omitempty"`
	ConfigDiscountValue *decimal.Decimal   `json:"config_discount_value,omitempty"`
	ConfigDiscountType  types.DiscountType `json:"config_discount_type,omitempty"`
	FormDiscount        *FormDiscountInput `json:"form_discount,omitempty"`
	EchoedDiscountValue *decimal.Decimal   `json:"echoed_discount_value,omitempty"`
	EchoedDiscountType  types.DiscountType `json:"echoed_discount_type,omitempty"`

	Splits []SplitShareRequest `json:"splits,omitempty"`

	InterestPercent   *decimal.Decimal `json:"interest_percent,omitempty"`
	FinePercent       *decimal.Decimal `json:"fine_percent,omitempty"`
	DescriptionSuffix string           `json:"description_suffix,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if _, err := time.Parse(dueDateLayout, r.FirstDueDate); err != nil {
		return ierr.NewError("invalid first due date").
			WithHintf("First due date must use the %s format", dueDateLayout).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPlan builds the domain plan from the request. Plan.Validate still runs
// downstream; this only shapes the data.
func (r *CreatePlanRequest) ToPlan(ctx context.Context) *plan.Plan {
	firstDueDate, _ := time.Parse(dueDateLayout, r.FirstDueDate)
	totalValue := r.InstallmentValue.Mul(decimal.NewFromInt(int64(r.InstallmentCount)))

	return &plan.Plan{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		CustomerID:       r.CustomerID,
		StudentName:      r.StudentName,
		BillingType:      r.BillingType,
		InstallmentCount: r.InstallmentCount,
		InstallmentValue: r.InstallmentValue,
		TotalValue:       totalValue,
		FirstDueDate:     firstDueDate,
		Description:      r.Description,
		SplitCount:       len(r.Splits),
		PlanStatus:       types.PlanStatusPending,
		BaseModel:        types.GetDefaultBaseModel(ctx),
	}
}

// ToShares converts the split entries for validation.
func (r *CreatePlanRequest) ToShares() []split.Share {
	return lo.Map(r.Splits, func(s SplitShareRequest, _ int) split.Share {
		return split.Share{
			WalletID:   s.WalletID,
			Percentage: s.Percentage,
			FixedValue: s.FixedValue,
		}
	})
}

// DiscountSources lists the discount entry points in precedence order.
func (r *CreatePlanRequest) DiscountSources() []discount.Source {
	var primary *discount.Discount
	if r.Discount != nil {
		primary = &discount.Discount{
			Type:     r.Discount.Type,
			Value:    r.Discount.Value,
			Deadline: r.Discount.Deadline,
		}
	}

	sources := []discount.Source{
		discount.FromRequest(primary),
		discount.FromInstallmentConfig(r.ConfigDiscountValue, r.ConfigDiscountType),
	}

	if r.FormDiscount != nil {
		sources = append(sources, discount.FromForm(r.FormDiscount.Enabled, r.FormDiscount.Value, r.FormDiscount.Type))
	}
	if r.EchoedDiscountValue != nil {
		sources = append(sources, discount.FromGatewayEcho(*r.EchoedDiscountValue, r.EchoedDiscountType))
	}

	return sources
}

// InstallmentResponse is one generated installment in API responses.
type InstallmentResponse struct {
	Number         int             `json:"number"`
	DueDate        string          `json:"due_date"`
	Value          decimal.Decimal `json:"value"`
	EffectiveValue decimal.Decimal `json:"effective_value"`
}

// CreatePlanResponse summarizes a successfully created plan.
type CreatePlanResponse struct {
	PlanID                 string                `json:"plan_id"`
	GatewayPaymentID       string                `json:"gateway_payment_id"`
	GatewayInstallmentID   string                `json:"gateway_installment_id,omitempty"`
	InstallmentCount       int                   `json:"installment_count"`
	TotalValue             decimal.Decimal       `json:"total_value"`
	FirstDueDate           string                `json:"first_due_date"`
	DiscountPerInstallment decimal.Decimal       `json:"discount_per_installment"`
	PotentialSavings       decimal.Decimal       `json:"potential_savings"`
	DiscountSource         string                `json:"discount_source,omitempty"`
	Installments           []InstallmentResponse `json:"installments"`
}

// PlanResponse wraps a stored plan for read endpoints.
type PlanResponse struct {
	*plan.Plan
}

// ListPlansResponse is the paginated plan listing.
type ListPlansResponse struct {
	Items  []*PlanResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// NewInstallmentResponses converts domain installments for the API.
func NewInstallmentResponses(installments []plan.Installment) []InstallmentResponse {
	return lo.Map(installments, func(i plan.Installment, _ int) InstallmentResponse {
		return InstallmentResponse{
			Number:         i.Number,
			DueDate:        i.DueDate.Format(dueDateLayout),
			Value:          i.Value,
			EffectiveValue: i.EffectiveValue,
		}
	})
}
