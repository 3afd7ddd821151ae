package types

import (
	ierr "github.com/poloedu/polobill/internal/errors"
)

// BillingType is the charge method requested from the payment gateway.
type BillingType string

const (
	BillingTypeBoleto     BillingType = "BOLETO"
	BillingTypeCreditCard BillingType = "CREDIT_CARD"
	BillingTypePix        BillingType = "PIX"
	BillingTypeUndefined  BillingType = "UNDEFINED"
)

func (b BillingType) Validate() error {
	switch b {
	case BillingTypeBoleto, BillingTypeCreditCard, BillingTypePix, BillingTypeUndefined:
		return nil
	default:
		return ierr.NewError("invalid billing type").
			WithHintf("Billing type %s is not supported", string(b)).
			Mark(ierr.ErrValidation)
	}
}

// DiscountType distinguishes fixed-amount from percentage discounts.
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "FIXED"
	DiscountTypePercentage DiscountType = "PERCENTAGE"
)

func (d DiscountType) Validate() error {
	switch d {
	case DiscountTypeFixed, DiscountTypePercentage:
		return nil
	default:
		return ierr.NewError("invalid discount type").
			WithHintf("Discount type %s is not supported", string(d)).
			Mark(ierr.ErrValidation)
	}
}

// DiscountDeadline is the payment deadline policy for earning a discount,
// expressed relative to each installment's due date.
type DiscountDeadline string

const (
	DiscountDeadlineOnDueDate   DiscountDeadline = "ON_DUE_DATE"
	DiscountDeadline1DayBefore  DiscountDeadline = "1_DAY_BEFORE"
	DiscountDeadline3DaysBefore DiscountDeadline = "3_DAYS_BEFORE"
	DiscountDeadline5DaysBefore DiscountDeadline = "5_DAYS_BEFORE"
	DefaultDiscountDeadline                      = DiscountDeadlineOnDueDate
)

func (d DiscountDeadline) Validate() error {
	switch d {
	case DiscountDeadlineOnDueDate, DiscountDeadline1DayBefore,
		DiscountDeadline3DaysBefore, DiscountDeadline5DaysBefore:
		return nil
	default:
		return ierr.NewError("invalid discount deadline policy").
			WithHintf("Deadline policy %s is not supported", string(d)).
			Mark(ierr.ErrValidation)
	}
}

// DueDateLimitDays converts the policy into the day offset sent to the
// gateway: 0 means the discount holds until the due date itself, negative
// values move the deadline that many days earlier.
func (d DiscountDeadline) DueDateLimitDays() int {
	switch d {
	case DiscountDeadline1DayBefore:
		return -1
	case DiscountDeadline3DaysBefore:
		return -3
	case DiscountDeadline5DaysBefore:
		return -5
	default:
		return 0
	}
}

// PlanStatus is the lifecycle state of an installment plan.
type PlanStatus string

const (
	PlanStatusPending   PlanStatus = "pending"
	PlanStatusConfirmed PlanStatus = "confirmed"
)

// InstallmentStatus is owned by the billing subsystem; this service only
// reports it back from gateway webhooks.
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)
