package asaas

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poloedu/polobill/internal/domain/discount"
	"github.com/poloedu/polobill/internal/domain/plan"
	"github.com/poloedu/polobill/internal/domain/split"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/types"
)

func testPlan(count int, value string) *plan.Plan {
	return &plan.Plan{
		ID:               "plan_test",
		CustomerID:       "cus_000001",
		BillingType:      types.BillingTypeBoleto,
		InstallmentCount: count,
		InstallmentValue: decimal.RequireFromString(value),
		FirstDueDate:     time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		Description:      "Mensalidade 2025",
	}
}

func TestBuildCreatePaymentRequest_Basic(t *testing.T) {
	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), nil, split.ValidatedShares{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "cus_000001", req.Customer)
	assert.Equal(t, "BOLETO", req.BillingType)
	assert.Equal(t, "2025-01-31", req.DueDate)
	assert.Equal(t, 3, req.InstallmentCount)
	assert.Equal(t, 100.0, req.InstallmentValue)
	assert.Equal(t, "plan_test", req.ExternalReference)
	assert.Nil(t, req.Discount)
	assert.Nil(t, req.Interest)
	assert.Nil(t, req.Fine)
	assert.Empty(t, req.Split)
}

func TestBuildCreatePaymentRequest_CountBounds(t *testing.T) {
	for _, count := range []int{0, 1, 25} {
		_, err := BuildCreatePaymentRequest(testPlan(count, "100"), nil, split.ValidatedShares{}, nil)
		require.Error(t, err, "count %d must be rejected", count)
		assert.True(t, ierr.IsValidation(err))
	}
	for _, count := range []int{2, 24} {
		_, err := BuildCreatePaymentRequest(testPlan(count, "100"), nil, split.ValidatedShares{}, nil)
		assert.NoError(t, err, "count %d must be accepted", count)
	}
}

func TestBuildCreatePaymentRequest_ValueBounds(t *testing.T) {
	_, err := BuildCreatePaymentRequest(testPlan(3, "0"), nil, split.ValidatedShares{}, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	_, err = BuildCreatePaymentRequest(testPlan(3, "-10"), nil, split.ValidatedShares{}, nil)
	assert.Error(t, err)
}

func TestBuildCreatePaymentRequest_DiscountAttached(t *testing.T) {
	d := &discount.Discount{Type: types.DiscountTypeFixed, Value: decimal.NewFromInt(10)}

	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), d, split.ValidatedShares{}, nil)
	require.NoError(t, err)

	require.NotNil(t, req.Discount)
	assert.Equal(t, 10.0, req.Discount.Value)
	assert.Equal(t, "FIXED", req.Discount.Type)
	assert.Equal(t, 0, req.Discount.DueDateLimitDays)
}

func TestBuildCreatePaymentRequest_DiscountDeadlineOffsets(t *testing.T) {
	d := &discount.Discount{
		Type:     types.DiscountTypePercentage,
		Value:    decimal.NewFromInt(5),
		Deadline: types.DiscountDeadline3DaysBefore,
	}

	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), d, split.ValidatedShares{}, nil)
	require.NoError(t, err)
	assert.Equal(t, -3, req.Discount.DueDateLimitDays)
}

func TestBuildCreatePaymentRequest_DiscountOutOfBounds(t *testing.T) {
	d := &discount.Discount{Type: types.DiscountTypeFixed, Value: decimal.NewFromInt(100)}
	_, err := BuildCreatePaymentRequest(testPlan(3, "100"), d, split.ValidatedShares{}, nil)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestBuildCreatePaymentRequest_SplitsAttachedVerbatim(t *testing.T) {
	pctShare := decimal.NewFromInt(15)
	fixedShare := decimal.NewFromInt(20)
	shares := split.ValidatedShares{
		Shares: []split.Share{
			{WalletID: "wal_1", Percentage: &pctShare},
			{WalletID: "wal_2", FixedValue: &fixedShare},
		},
	}

	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), nil, shares, nil)
	require.NoError(t, err)

	require.Len(t, req.Split, 2)
	assert.Equal(t, "wal_1", req.Split[0].WalletID)
	require.NotNil(t, req.Split[0].PercentualValue)
	assert.Equal(t, 15.0, *req.Split[0].PercentualValue)
	assert.Nil(t, req.Split[0].FixedValue)
	require.NotNil(t, req.Split[1].FixedValue)
	assert.Equal(t, 20.0, *req.Split[1].FixedValue)
}

func TestBuildCreatePaymentRequest_OptionalFieldsOmitted(t *testing.T) {
	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), nil, split.ValidatedShares{}, &PaymentOptions{})
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.NotContains(t, asMap, "discount")
	assert.NotContains(t, asMap, "interest")
	assert.NotContains(t, asMap, "fine")
	assert.NotContains(t, asMap, "split")
}

func TestBuildCreatePaymentRequest_Options(t *testing.T) {
	interest := decimal.NewFromInt(1)
	fine := decimal.NewFromInt(2)
	opts := &PaymentOptions{
		Interest:          &interest,
		Fine:              &fine,
		DescriptionSuffix: "- Polo Centro",
	}

	req, err := BuildCreatePaymentRequest(testPlan(3, "100"), nil, split.ValidatedShares{}, opts)
	require.NoError(t, err)

	require.NotNil(t, req.Interest)
	assert.Equal(t, 1.0, req.Interest.Value)
	require.NotNil(t, req.Fine)
	assert.Equal(t, 2.0, req.Fine.Value)
	assert.Equal(t, "Mensalidade 2025 - Polo Centro", req.Description)
}
