package service

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/poloedu/polobill/internal/api/dto"
	"github.com/poloedu/polobill/internal/cache"
	"github.com/poloedu/polobill/internal/config"
	"github.com/poloedu/polobill/internal/domain/plan"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/integration/asaas"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/testutil"
	"github.com/poloedu/polobill/internal/types"
)

// stubGateway implements asaas.GatewayClient without network access.
type stubGateway struct {
	createErr  error
	lastCreate *asaas.CreatePaymentRequest
	createResp *asaas.PaymentResponse
	book       []byte
}

func (g *stubGateway) CreateInstallmentPlan(ctx context.Context, req *asaas.CreatePaymentRequest) (*asaas.PaymentResponse, error) {
	g.lastCreate = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.createResp != nil {
		return g.createResp, nil
	}
	return &asaas.PaymentResponse{
		ID:          "pay_123",
		Installment: "ins_456",
		Status:      string(asaas.PaymentStatusPending),
	}, nil
}

func (g *stubGateway) GetPayment(ctx context.Context, paymentID string) (*asaas.PaymentResponse, error) {
	return &asaas.PaymentResponse{ID: paymentID}, nil
}

func (g *stubGateway) GetPaymentBook(ctx context.Context, installmentID string) ([]byte, error) {
	return g.book, nil
}

func (g *stubGateway) VerifyWebhookToken(token string) error {
	return nil
}

type PlanServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *testutil.InMemoryPlanStore
	gateway *stubGateway
	service PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	cfg := config.GetDefaultConfig()
	log := logger.GetLogger()

	s.ctx = types.WithPoloID(context.Background(), "polo_1")
	s.store = testutil.NewInMemoryPlanStore()
	s.gateway = &stubGateway{book: []byte("%PDF-1.4 book")}
	s.service = NewPlanService(ServiceParams{
		Logger:   log,
		Config:   cfg,
		Cache:    cache.New(cfg),
		PlanRepo: s.store,
		Gateway:  s.gateway,
	})
}

func (s *PlanServiceSuite) baseRequest() *dto.CreatePlanRequest {
	return &dto.CreatePlanRequest{
		CustomerID:       "cus_001",
		StudentName:      "Ana Souza",
		BillingType:      types.BillingTypeBoleto,
		InstallmentCount: 3,
		InstallmentValue: decimal.NewFromInt(100),
		FirstDueDate:     "2025-01-31",
		Description:      "Mensalidade 2025",
	}
}

func (s *PlanServiceSuite) TestCreatePlanWithDiscountAndSplit() {
	req := s.baseRequest()
	req.Discount = &dto.DiscountRequest{
		Type:  types.DiscountTypeFixed,
		Value: decimal.NewFromInt(10),
	}
	req.Splits = []dto.SplitShareRequest{
		{WalletID: "wal_abc", Percentage: lo.ToPtr(decimal.NewFromInt(15))},
	}

	resp, err := s.service.CreatePlan(s.ctx, req)
	s.NoError(err)
	s.Equal("pay_123", resp.GatewayPaymentID)
	s.Equal("ins_456", resp.GatewayInstallmentID)
	s.Equal(3, resp.InstallmentCount)
	s.True(resp.TotalValue.Equal(decimal.NewFromInt(300)), "total = %s", resp.TotalValue)
	s.True(resp.DiscountPerInstallment.Equal(decimal.NewFromInt(10)))
	s.True(resp.PotentialSavings.Equal(decimal.NewFromInt(30)))
	s.Equal("request", resp.DiscountSource)

	// month-end clamping on the generated schedule
	s.Len(resp.Installments, 3)
	s.Equal("2025-01-31", resp.Installments[0].DueDate)
	s.Equal("2025-02-28", resp.Installments[1].DueDate)
	s.Equal("2025-03-31", resp.Installments[2].DueDate)
	s.True(resp.Installments[0].EffectiveValue.Equal(decimal.NewFromInt(90)))

	// payload carried discount and split verbatim
	s.Require().NotNil(s.gateway.lastCreate)
	s.Require().NotNil(s.gateway.lastCreate.Discount)
	s.Equal(10.0, s.gateway.lastCreate.Discount.Value)
	s.Len(s.gateway.lastCreate.Split, 1)
	s.Equal("wal_abc", s.gateway.lastCreate.Split[0].WalletID)

	// persisted plan confirmed with gateway identifiers and audit row
	stored, err := s.store.Get(s.ctx, resp.PlanID)
	s.NoError(err)
	s.Equal(types.PlanStatusConfirmed, stored.PlanStatus)
	s.Equal("pay_123", stored.GatewayPaymentID)

	audit := s.store.GetAudit(resp.PlanID)
	s.Require().NotNil(audit)
	s.Equal("request", audit.SourceName)
	s.True(audit.Value.Equal(decimal.NewFromInt(10)))
}

func (s *PlanServiceSuite) TestCreatePlanWithoutDiscount() {
	resp, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.NoError(err)
	s.True(resp.DiscountPerInstallment.IsZero())
	s.True(resp.PotentialSavings.IsZero())
	s.Empty(resp.DiscountSource)
	s.Nil(s.gateway.lastCreate.Discount)
	s.Nil(s.store.GetAudit(resp.PlanID))
}

func (s *PlanServiceSuite) TestCreatePlanDiscountPrecedence() {
	req := s.baseRequest()
	req.ConfigDiscountValue = lo.ToPtr(decimal.NewFromInt(20))
	req.ConfigDiscountType = types.DiscountTypeFixed
	req.FormDiscount = &dto.FormDiscountInput{Enabled: "1", Value: "5", Type: "FIXED"}

	resp, err := s.service.CreatePlan(s.ctx, req)
	s.NoError(err)
	s.Equal("installment_config", resp.DiscountSource)
	s.True(resp.DiscountPerInstallment.Equal(decimal.NewFromInt(20)))
}

func (s *PlanServiceSuite) TestCreatePlanInvalidCount() {
	req := s.baseRequest()
	req.InstallmentCount = 25

	_, err := s.service.CreatePlan(s.ctx, req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Nil(s.gateway.lastCreate, "gateway must not be called on validation failure")
}

func (s *PlanServiceSuite) TestCreatePlanInvalidSplitStopsBeforeGateway() {
	req := s.baseRequest()
	req.Splits = []dto.SplitShareRequest{
		{WalletID: "wal_1", Percentage: lo.ToPtr(decimal.NewFromInt(60))},
		{WalletID: "wal_2", Percentage: lo.ToPtr(decimal.NewFromInt(50))},
	}

	_, err := s.service.CreatePlan(s.ctx, req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Nil(s.gateway.lastCreate)
}

func (s *PlanServiceSuite) TestCreatePlanGatewayFailureSkipsPersistence() {
	s.gateway.createErr = ierr.NewError("invalid customer").Mark(ierr.ErrGateway)

	_, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Error(err)
	s.True(ierr.IsGateway(err))

	count, _ := s.store.Count(s.ctx, nil)
	s.Zero(count, "nothing persisted when the gateway rejects")
}

func (s *PlanServiceSuite) TestCreatePlanPersistenceFailureIsPartial() {
	s.store.CreateErr = ierr.NewError("connection reset").Mark(ierr.ErrDatabase)

	_, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Error(err)
	s.True(ierr.IsPartialFailure(err), "expected partial failure, got %v", err)
	s.False(ierr.IsGateway(err))
	s.NotNil(s.gateway.lastCreate, "gateway call did happen")
}

func (s *PlanServiceSuite) TestGetPlanCachesReads() {
	resp, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Require().NoError(err)

	got, err := s.service.GetPlan(s.ctx, resp.PlanID)
	s.NoError(err)
	s.Equal(resp.PlanID, got.ID)
	s.Equal("pay_123", got.GatewayPaymentID)
}

func (s *PlanServiceSuite) TestGetPlanNotFound() {
	_, err := s.service.GetPlan(s.ctx, "plan_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *PlanServiceSuite) TestListPlansFiltersByCustomer() {
	_, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Require().NoError(err)

	other := s.baseRequest()
	other.CustomerID = "cus_002"
	_, err = s.service.CreatePlan(s.ctx, other)
	s.Require().NoError(err)

	list, err := s.service.ListPlans(s.ctx, &plan.Filter{CustomerID: "cus_001"})
	s.NoError(err)
	s.Equal(1, list.Total)
	s.Len(list.Items, 1)
	s.Equal("cus_001", list.Items[0].CustomerID)
}

func (s *PlanServiceSuite) TestGetPaymentBook() {
	resp, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Require().NoError(err)

	book, err := s.service.GetPaymentBook(s.ctx, resp.PlanID)
	s.NoError(err)
	s.Equal([]byte("%PDF-1.4 book"), book)
}

func (s *PlanServiceSuite) TestGetPaymentBookWithoutInstallmentID() {
	s.gateway.createResp = &asaas.PaymentResponse{ID: "pay_789"}

	resp, err := s.service.CreatePlan(s.ctx, s.baseRequest())
	s.Require().NoError(err)

	_, err = s.service.GetPaymentBook(s.ctx, resp.PlanID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
