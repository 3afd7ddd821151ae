package split

import (
	"github.com/shopspring/decimal"
)

// Share routes a portion of every installment to a secondary wallet.
// Exactly one of Percentage or FixedValue is set on a well-formed share.
type Share struct {
	WalletID   string           `json:"wallet_id"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
	FixedValue *decimal.Decimal `json:"fixed_value,omitempty"`
}

// ValidatedShares is the result of validating a share list against an
// installment value. Shares with no wallet reference are dropped.
type ValidatedShares struct {
	Shares          []Share
	TotalPercentage decimal.Decimal
	TotalFixed      decimal.Decimal
}

// IsEmpty reports whether any shares survived validation.
func (v ValidatedShares) IsEmpty() bool {
	return len(v.Shares) == 0
}
