package plan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/poloedu/polobill/internal/domain/discount"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/types"
)

const (
	MinInstallmentCount = 2
	MaxInstallmentCount = 24
)

// Plan is a request to charge one customer N equal installments, one month
// apart. Once submitted to the gateway the plan is immutable; individual
// installment state is owned by the billing subsystem downstream.
type Plan struct {
	ID                   string              `json:"id"`
	CustomerID           string              `json:"customer_id"`
	StudentName          string              `json:"student_name,omitempty"`
	BillingType          types.BillingType   `json:"billing_type"`
	InstallmentCount     int                 `json:"installment_count"`
	InstallmentValue     decimal.Decimal     `json:"installment_value"`
	TotalValue           decimal.Decimal     `json:"total_value"`
	FirstDueDate         time.Time           `json:"first_due_date"`
	Description          string              `json:"description,omitempty"`
	DiscountType         *types.DiscountType `json:"discount_type,omitempty"`
	DiscountValue        *decimal.Decimal    `json:"discount_value,omitempty"`
	SplitCount           int                 `json:"split_count"`
	GatewayPaymentID     string              `json:"gateway_payment_id,omitempty"`
	GatewayInstallmentID string              `json:"gateway_installment_id,omitempty"`
	PlanStatus           types.PlanStatus    `json:"plan_status"`
	types.BaseModel
}

// Installment is one generated charge of a plan. EffectiveValue is the face
// value minus the per-installment discount; informational only, the gateway
// applies the discount itself.
type Installment struct {
	Number         int             `json:"number"`
	DueDate        time.Time       `json:"due_date"`
	Value          decimal.Decimal `json:"value"`
	EffectiveValue decimal.Decimal `json:"effective_value"`
}

// DiscountAudit records which source supplied the discount applied to a
// plan. Written in the same transaction as the plan row.
type DiscountAudit struct {
	ID           string             `json:"id"`
	PlanID       string             `json:"plan_id"`
	SourceName   string             `json:"source_name"`
	DiscountType types.DiscountType `json:"discount_type"`
	Value        decimal.Decimal    `json:"value"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Validate checks the plan invariants before anything leaves the process.
func (p *Plan) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("A plan must reference a gateway customer").
			Mark(ierr.ErrValidation)
	}
	if err := p.BillingType.Validate(); err != nil {
		return err
	}
	if p.InstallmentCount < MinInstallmentCount || p.InstallmentCount > MaxInstallmentCount {
		return ierr.NewError("invalid installment count").
			WithHintf("Installment count must be between %d and %d, got %d", MinInstallmentCount, MaxInstallmentCount, p.InstallmentCount).
			WithReportableDetails(map[string]interface{}{
				"installment_count": p.InstallmentCount,
			}).
			Mark(ierr.ErrValidation)
	}
	if p.InstallmentValue.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invalid installment value").
			WithHint("Installment value must be greater than zero").
			WithReportableDetails(map[string]interface{}{
				"installment_value": p.InstallmentValue.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if p.FirstDueDate.IsZero() {
		return ierr.NewError("first due date is required").
			WithHint("A plan needs a first due date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Installments expands the plan into its generated installments, applying
// the discount to the informational effective value.
func (p *Plan) Installments(d *discount.Discount) []Installment {
	dates := Schedule(p.FirstDueDate, p.InstallmentCount)
	perInstallment := d.PerInstallment(p.InstallmentValue)

	installments := make([]Installment, len(dates))
	for i, due := range dates {
		installments[i] = Installment{
			Number:         i + 1,
			DueDate:        due,
			Value:          p.InstallmentValue,
			EffectiveValue: p.InstallmentValue.Sub(perInstallment),
		}
	}
	return installments
}
