package asaas

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/poloedu/polobill/internal/domain/discount"
	"github.com/poloedu/polobill/internal/domain/plan"
	"github.com/poloedu/polobill/internal/domain/split"
)

// PaymentOptions carries the optional billing attributes of a plan. Absent
// fields are omitted from the payload entirely.
type PaymentOptions struct {
	Interest          *decimal.Decimal
	Fine              *decimal.Decimal
	DescriptionSuffix string
}

// BuildCreatePaymentRequest assembles the gateway payload for a plan. Pure
// function, no I/O: the adapter in client.go performs the actual call. The
// discount and split configuration are attached verbatim and apply to every
// installment the gateway generates.
func BuildCreatePaymentRequest(
	p *plan.Plan,
	d *discount.Discount,
	shares split.ValidatedShares,
	opts *PaymentOptions,
) (*CreatePaymentRequest, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	schedule := plan.Schedule(p.FirstDueDate, p.InstallmentCount)

	req := &CreatePaymentRequest{
		Customer:          p.CustomerID,
		BillingType:       string(p.BillingType),
		DueDate:           schedule[0].Format("2006-01-02"),
		InstallmentCount:  p.InstallmentCount,
		InstallmentValue:  p.InstallmentValue.InexactFloat64(),
		Description:       p.Description,
		ExternalReference: p.ID,
	}

	if d != nil {
		if err := d.Validate(p.InstallmentValue); err != nil {
			return nil, err
		}
		req.Discount = &DiscountParam{
			Value:            d.Value.InexactFloat64(),
			DueDateLimitDays: d.DeadlineOrDefault().DueDateLimitDays(),
			Type:             string(d.Type),
		}
	}

	for _, share := range shares.Shares {
		param := SplitParam{WalletID: share.WalletID}
		if share.Percentage != nil {
			param.PercentualValue = lo.ToPtr(share.Percentage.InexactFloat64())
		}
		if share.FixedValue != nil {
			param.FixedValue = lo.ToPtr(share.FixedValue.InexactFloat64())
		}
		req.Split = append(req.Split, param)
	}

	if opts != nil {
		if opts.Interest != nil && opts.Interest.GreaterThan(decimal.Zero) {
			req.Interest = &InterestParam{Value: opts.Interest.InexactFloat64()}
		}
		if opts.Fine != nil && opts.Fine.GreaterThan(decimal.Zero) {
			req.Fine = &FineParam{Value: opts.Fine.InexactFloat64()}
		}
		if opts.DescriptionSuffix != "" {
			if req.Description != "" {
				req.Description += " " + opts.DescriptionSuffix
			} else {
				req.Description = opts.DescriptionSuffix
			}
		}
	}

	return req, nil
}
