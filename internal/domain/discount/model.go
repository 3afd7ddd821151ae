package discount

import (
	"github.com/shopspring/decimal"

	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/types"
)

var hundred = decimal.NewFromInt(100)

// Discount reduces the face value of every installment in a plan when the
// installment is paid before its deadline.
type Discount struct {
	Type     types.DiscountType     `json:"type"`
	Value    decimal.Decimal        `json:"value"`
	Deadline types.DiscountDeadline `json:"deadline"`
}

// Validate checks the discount against the per-installment face value.
// A FIXED discount must stay below the installment value and a PERCENTAGE
// discount below 100; either way the value must be positive.
func (d *Discount) Validate(installmentValue decimal.Decimal) error {
	if err := d.Type.Validate(); err != nil {
		return err
	}
	if d.Deadline != "" {
		if err := d.Deadline.Validate(); err != nil {
			return err
		}
	}

	if d.Value.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("discount value must be positive").
			WithHint("Discount value must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	switch d.Type {
	case types.DiscountTypeFixed:
		if d.Value.GreaterThanOrEqual(installmentValue) {
			return ierr.NewError("fixed discount exceeds installment value").
				WithHintf("A fixed discount of %s would wipe out the %s installment", d.Value.String(), installmentValue.String()).
				WithReportableDetails(map[string]interface{}{
					"discount_value":    d.Value.String(),
					"installment_value": installmentValue.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	case types.DiscountTypePercentage:
		if d.Value.GreaterThanOrEqual(hundred) {
			return ierr.NewError("percentage discount must be below 100").
				WithHintf("A %s%% discount would wipe out the installment", d.Value.String()).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// PerInstallment returns the monetary reduction applied to a single
// installment of the given face value.
func (d *Discount) PerInstallment(installmentValue decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	if d.Type == types.DiscountTypePercentage {
		return installmentValue.Mul(d.Value).Div(hundred).Round(2)
	}
	return d.Value
}

// PotentialSavings returns the total reduction across the whole plan
// assuming every installment is paid inside its deadline. The gateway does
// not confirm per-installment acceptance, so this stays "potential".
func (d *Discount) PotentialSavings(installmentValue decimal.Decimal, installmentCount int) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.PerInstallment(installmentValue).Mul(decimal.NewFromInt(int64(installmentCount)))
}

// DeadlineOrDefault returns the configured deadline policy, falling back to
// the on-due-date policy when none was set.
func (d *Discount) DeadlineOrDefault() types.DiscountDeadline {
	if d == nil || d.Deadline == "" {
		return types.DefaultDiscountDeadline
	}
	return d.Deadline
}
