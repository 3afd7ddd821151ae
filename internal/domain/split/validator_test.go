package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/poloedu/polobill/internal/errors"
)

func pct(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func fixed(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestValidate_PercentageShares(t *testing.T) {
	installment := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		shares      []Share
		wantErr     bool
		wantTotal   string
		wantShares  int
		hintContain string
	}{
		{
			name:       "single percentage share",
			shares:     []Share{{WalletID: "wal_1", Percentage: pct("15")}},
			wantTotal:  "15",
			wantShares: 1,
		},
		{
			name: "multiple shares summing to exactly 100",
			shares: []Share{
				{WalletID: "wal_1", Percentage: pct("60")},
				{WalletID: "wal_2", Percentage: pct("40")},
			},
			wantTotal:  "100",
			wantShares: 2,
		},
		{
			name: "sum above 100 fails",
			shares: []Share{
				{WalletID: "wal_1", Percentage: pct("60")},
				{WalletID: "wal_2", Percentage: pct("50")},
			},
			wantErr: true,
		},
		{
			name:    "zero percentage fails",
			shares:  []Share{{WalletID: "wal_1", Percentage: pct("0")}},
			wantErr: true,
		},
		{
			name:    "percentage above 100 fails",
			shares:  []Share{{WalletID: "wal_1", Percentage: pct("100.01")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.shares, installment)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Shares, tt.wantShares)
			assert.True(t, got.TotalPercentage.Equal(decimal.RequireFromString(tt.wantTotal)))
		})
	}
}

func TestValidate_FixedShares(t *testing.T) {
	installment := decimal.NewFromInt(80)

	t.Run("fixed share below installment value passes", func(t *testing.T) {
		got, err := Validate([]Share{{WalletID: "wal_1", FixedValue: fixed("79.99")}}, installment)
		require.NoError(t, err)
		assert.True(t, got.TotalFixed.Equal(decimal.RequireFromString("79.99")))
	})

	t.Run("fixed share equal to installment value fails", func(t *testing.T) {
		_, err := Validate([]Share{{WalletID: "wal_1", FixedValue: fixed("80")}}, installment)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("fixed shares summing to installment value fail", func(t *testing.T) {
		_, err := Validate([]Share{
			{WalletID: "wal_1", FixedValue: fixed("50")},
			{WalletID: "wal_2", FixedValue: fixed("30")},
		}, installment)
		require.Error(t, err)
	})

	t.Run("negative fixed value fails", func(t *testing.T) {
		_, err := Validate([]Share{{WalletID: "wal_1", FixedValue: fixed("-5")}}, installment)
		require.Error(t, err)
	})
}

func TestValidate_MixedAndDeadShares(t *testing.T) {
	installment := decimal.NewFromInt(100)

	t.Run("share without wallet id is silently skipped", func(t *testing.T) {
		got, err := Validate([]Share{
			{WalletID: "", Percentage: pct("200")}, // dead entry, never inspected
			{WalletID: "wal_1", Percentage: pct("10")},
		}, installment)
		require.NoError(t, err)
		assert.Len(t, got.Shares, 1)
		assert.Equal(t, "wal_1", got.Shares[0].WalletID)
	})

	t.Run("share with neither value fails", func(t *testing.T) {
		_, err := Validate([]Share{{WalletID: "wal_1"}}, installment)
		require.Error(t, err)
	})

	t.Run("percentage and fixed shares accumulate independently", func(t *testing.T) {
		got, err := Validate([]Share{
			{WalletID: "wal_1", Percentage: pct("25")},
			{WalletID: "wal_2", FixedValue: fixed("40")},
		}, installment)
		require.NoError(t, err)
		assert.True(t, got.TotalPercentage.Equal(decimal.NewFromInt(25)))
		assert.True(t, got.TotalFixed.Equal(decimal.NewFromInt(40)))
	})

	t.Run("empty list yields empty result", func(t *testing.T) {
		got, err := Validate(nil, installment)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
	})
}
