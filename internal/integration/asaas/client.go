package asaas

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/poloedu/polobill/internal/config"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/logger"
)

const (
	// requestTimeout bounds every regular API call.
	requestTimeout = 30 * time.Second

	// documentTimeout bounds document generation endpoints (payment book
	// PDFs), which the gateway renders on demand.
	documentTimeout = 60 * time.Second
)

// GatewayClient defines the interface for ASAAS API operations
type GatewayClient interface {
	CreateInstallmentPlan(ctx context.Context, req *CreatePaymentRequest) (*PaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error)
	GetPaymentBook(ctx context.Context, installmentID string) ([]byte, error)
	VerifyWebhookToken(token string) error
}

// Client handles ASAAS API calls. One submission per plan, no retries; the
// caller decides how to surface failures.
type Client struct {
	baseURL        string
	apiKey         string
	webhookToken   string
	logger         *logger.Logger
	httpClient     *http.Client
	documentClient *http.Client
}

// NewClient creates a new ASAAS client
func NewClient(cfg *config.Configuration, logger *logger.Logger) GatewayClient {
	return &Client{
		baseURL:        cfg.Asaas.BaseURL,
		apiKey:         cfg.Asaas.APIKey,
		webhookToken:   cfg.Asaas.WebhookToken,
		logger:         logger,
		httpClient:     &http.Client{Timeout: requestTimeout},
		documentClient: &http.Client{Timeout: documentTimeout},
	}
}

// CreateInstallmentPlan submits an installment plan to ASAAS. On success it
// also checks whether the gateway echoed the requested discount back and
// logs the outcome; this is observability only and never changes behavior.
func (c *Client) CreateInstallmentPlan(ctx context.Context, req *CreatePaymentRequest) (*PaymentResponse, error) {
	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return nil, ierr.NewError("failed to marshal payment request").
			WithHint("Invalid payment request data").
			Mark(ierr.ErrInternal)
	}

	c.logger.Infow("submitting installment plan to ASAAS",
		"customer", req.Customer,
		"billing_type", req.BillingType,
		"installment_count", req.InstallmentCount,
		"installment_value", req.InstallmentValue,
		"has_discount", req.Discount != nil,
		"split_count", len(req.Split))

	respBody, err := c.do(ctx, c.httpClient, http.MethodPost, "/payments", bodyBytes)
	if err != nil {
		return nil, err
	}

	var payment PaymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, ierr.NewError("failed to parse ASAAS response").Mark(ierr.ErrInternal)
	}

	c.logger.Infow("successfully created installment plan in ASAAS",
		"payment_id", payment.ID,
		"installment_id", payment.Installment,
		"status", payment.Status)

	c.logDiscountOutcome(req, &payment)

	return &payment, nil
}

// GetPayment retrieves a payment from ASAAS by ID
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	respBody, err := c.do(ctx, c.httpClient, http.MethodGet, "/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment PaymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, ierr.NewError("failed to parse ASAAS response").Mark(ierr.ErrInternal)
	}

	return &payment, nil
}

// GetPaymentBook downloads the installment payment book PDF. Uses the
// longer document timeout because the gateway renders the file on demand.
func (c *Client) GetPaymentBook(ctx context.Context, installmentID string) ([]byte, error) {
	book, err := c.do(ctx, c.documentClient, http.MethodGet, "/installments/"+installmentID+"/paymentBook", nil)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("fetched payment book from ASAAS",
		"installment_id", installmentID,
		"size_bytes", len(book))

	return book, nil
}

// VerifyWebhookToken compares the token sent on a webhook delivery against
// the configured one in constant time.
func (c *Client) VerifyWebhookToken(token string) error {
	if c.webhookToken == "" {
		return ierr.NewError("webhook token not configured").
			WithHint("Configure the ASAAS webhook token").
			Mark(ierr.ErrValidation)
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.webhookToken)) != 1 {
		c.logger.Errorw("webhook token mismatch", "token_length", len(token))
		return ierr.NewError("webhook token verification failed").
			WithHint("Invalid webhook token").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

// do performs one HTTP call and normalizes transport and upstream errors
// into gateway errors carrying the upstream message.
func (c *Client) do(ctx context.Context, client *http.Client, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, ierr.NewError("failed to create HTTP request").Mark(ierr.ErrInternal)
	}

	httpReq.Header.Set("access_token", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		c.logger.Errorw("ASAAS request failed", "error", err, "method", method, "path", path)
		return nil, ierr.WithError(err).
			WithHint("Unable to connect to the ASAAS API").
			Mark(ierr.ErrGateway)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.NewError("failed to read ASAAS response").Mark(ierr.ErrGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message() != "" {
			c.logger.Errorw("ASAAS API error",
				"status", resp.StatusCode,
				"method", method,
				"path", path,
				"message", errResp.Message())
			return nil, ierr.NewError(errResp.Message()).
				WithHint(errResp.Message()).
				WithReportableDetails(map[string]interface{}{
					"status": resp.StatusCode,
					"errors": errResp.Errors,
				}).
				Mark(ierr.ErrGateway)
		}
		c.logger.Errorw("ASAAS API error with unparseable body",
			"status", resp.StatusCode,
			"method", method,
			"path", path)
		return nil, ierr.NewError("ASAAS API error").
			WithHintf("HTTP status %d", resp.StatusCode).
			Mark(ierr.ErrGateway)
	}

	return respBody, nil
}

// logDiscountOutcome reports whether the gateway honored the discount we
// asked for.
func (c *Client) logDiscountOutcome(req *CreatePaymentRequest, payment *PaymentResponse) {
	if req.Discount == nil {
		return
	}
	if payment.Discount == nil {
		c.logger.Warnw("ASAAS did not echo the requested discount",
			"payment_id", payment.ID,
			"requested_value", req.Discount.Value,
			"requested_type", req.Discount.Type)
		return
	}
	c.logger.Infow("ASAAS accepted the requested discount",
		"payment_id", payment.ID,
		"discount_value", payment.Discount.Value,
		"discount_type", payment.Discount.Type,
		"due_date_limit_days", payment.Discount.DueDateLimitDays,
		"matches_request", payment.Discount.Value == req.Discount.Value)
}
