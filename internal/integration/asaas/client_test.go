package asaas

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poloedu/polobill/internal/config"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/logger"
)

func newTestClient(t *testing.T, serverURL string) GatewayClient {
	t.Helper()
	cfg := &config.Configuration{
		Asaas: config.AsaasConfig{
			BaseURL:      serverURL,
			APIKey:       "test_key",
			WebhookToken: "wh_token",
		},
	}
	return NewClient(cfg, logger.GetLogger())
}

func TestCreateInstallmentPlan_Success(t *testing.T) {
	var gotReq CreatePaymentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "test_key", r.Header.Get("access_token"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PaymentResponse{
			ID:          "pay_123",
			Status:      string(PaymentStatusPending),
			Installment: "ins_456",
			Discount:    &DiscountParam{Value: 10, Type: "FIXED"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.CreateInstallmentPlan(context.Background(), &CreatePaymentRequest{
		Customer:         "cus_000001",
		BillingType:      "BOLETO",
		DueDate:          "2025-01-31",
		InstallmentCount: 3,
		InstallmentValue: 100,
		Discount:         &DiscountParam{Value: 10, Type: "FIXED"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pay_123", resp.ID)
	assert.Equal(t, "ins_456", resp.Installment)
	assert.Equal(t, "cus_000001", gotReq.Customer)
	require.NotNil(t, gotReq.Discount)
	assert.Equal(t, 10.0, gotReq.Discount.Value)
}

func TestCreateInstallmentPlan_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Errors: []APIError{
			{Code: "invalid_value", Description: "O valor da parcela é inválido"},
		}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.CreateInstallmentPlan(context.Background(), &CreatePaymentRequest{
		Customer: "cus_000001",
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, ierr.IsGateway(err))
	assert.Contains(t, err.Error(), "O valor da parcela é inválido")
}

func TestCreateInstallmentPlan_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.CreateInstallmentPlan(context.Background(), &CreatePaymentRequest{})

	require.Error(t, err)
	assert.True(t, ierr.IsGateway(err))
}

func TestCreateInstallmentPlan_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use to force a connection error

	client := newTestClient(t, server.URL)
	_, err := client.CreateInstallmentPlan(context.Background(), &CreatePaymentRequest{})

	require.Error(t, err)
	assert.True(t, ierr.IsGateway(err))
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_123", r.URL.Path)
		json.NewEncoder(w).Encode(PaymentResponse{ID: "pay_123", Status: string(PaymentStatusReceived)})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.GetPayment(context.Background(), "pay_123")
	require.NoError(t, err)
	assert.Equal(t, string(PaymentStatusReceived), resp.Status)
}

func TestGetPaymentBook(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/installments/ins_456/paymentBook", r.URL.Path)
		w.Write(pdf)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	book, err := client.GetPaymentBook(context.Background(), "ins_456")
	require.NoError(t, err)
	assert.Equal(t, pdf, book)
}

func TestVerifyWebhookToken(t *testing.T) {
	client := newTestClient(t, "http://unused")

	assert.NoError(t, client.VerifyWebhookToken("wh_token"))

	err := client.VerifyWebhookToken("wrong")
	require.Error(t, err)

	unconfigured := NewClient(&config.Configuration{
		Asaas: config.AsaasConfig{BaseURL: "http://unused", APIKey: "k"},
	}, logger.GetLogger())
	assert.Error(t, unconfigured.VerifyWebhookToken("anything"))
}

func TestErrorResponse_Message(t *testing.T) {
	e := &ErrorResponse{Errors: []APIError{
		{Code: "a", Description: "first"},
		{Code: "b", Description: "second"},
	}}
	assert.Equal(t, "first; second", e.Message())

	empty := &ErrorResponse{}
	assert.Empty(t, empty.Message())
}
