package split

import (
	"github.com/shopspring/decimal"

	ierr "github.com/poloedu/polobill/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// Validate checks a share list against the per-installment value and
// returns the shares that should be submitted to the gateway. Pure; the
// caller decides what to do with the result.
//
// Rules:
//   - shares without a wallet reference are dead entries and are skipped
//   - a percentage share must satisfy 0 < p <= 100
//   - a fixed share must satisfy 0 < f < installmentValue
//   - the percentage total across shares must not exceed 100
//   - the fixed total must stay below the installment value so the plan
//     owner keeps a positive residual
func Validate(shares []Share, installmentValue decimal.Decimal) (ValidatedShares, error) {
	result := ValidatedShares{
		TotalPercentage: decimal.Zero,
		TotalFixed:      decimal.Zero,
	}

	for _, share := range shares {
		if share.WalletID == "" {
			continue
		}

		switch {
		case share.Percentage != nil:
			p := *share.Percentage
			if p.LessThanOrEqual(decimal.Zero) || p.GreaterThan(hundred) {
				return ValidatedShares{}, ierr.NewError("invalid split percentage").
					WithHintf("Split percentage must be greater than 0 and at most 100, got %s", p.String()).
					WithReportableDetails(map[string]interface{}{
						"wallet_id":  share.WalletID,
						"percentage": p.String(),
					}).
					Mark(ierr.ErrValidation)
			}
			result.TotalPercentage = result.TotalPercentage.Add(p)
			result.Shares = append(result.Shares, share)

		case share.FixedValue != nil:
			f := *share.FixedValue
			if f.LessThanOrEqual(decimal.Zero) || f.GreaterThanOrEqual(installmentValue) {
				return ValidatedShares{}, ierr.NewError("invalid split fixed value").
					WithHintf("Split fixed value must be greater than 0 and below the installment value of %s", installmentValue.String()).
					WithReportableDetails(map[string]interface{}{
						"wallet_id":   share.WalletID,
						"fixed_value": f.String(),
					}).
					Mark(ierr.ErrValidation)
			}
			result.TotalFixed = result.TotalFixed.Add(f)
			result.Shares = append(result.Shares, share)

		default:
			return ValidatedShares{}, ierr.NewError("split share has no value").
				WithHint("Each split share must carry either a percentage or a fixed value").
				WithReportableDetails(map[string]interface{}{
					"wallet_id": share.WalletID,
				}).
				Mark(ierr.ErrValidation)
		}
	}

	if result.TotalPercentage.GreaterThan(hundred) {
		return ValidatedShares{}, ierr.NewError("split percentages exceed 100%").
			WithHintf("Split percentages add up to %s%%, the maximum is 100%%", result.TotalPercentage.String()).
			WithReportableDetails(map[string]interface{}{
				"total_percentage": result.TotalPercentage.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if result.TotalFixed.GreaterThanOrEqual(installmentValue) {
		return ValidatedShares{}, ierr.NewError("split fixed values reach the installment value").
			WithHintf("Fixed split values add up to %s, which leaves nothing of the %s installment for the plan owner", result.TotalFixed.String(), installmentValue.String()).
			WithReportableDetails(map[string]interface{}{
				"total_fixed":       result.TotalFixed.String(),
				"installment_value": installmentValue.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	return result, nil
}
