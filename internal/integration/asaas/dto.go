package asaas

import "strings"

// Constants for the ASAAS integration
const (
	// SandboxBaseURL is the base URL for the ASAAS sandbox API
	SandboxBaseURL = "https://sandbox.asaas.com/api/v3"

	// ProductionBaseURL is the base URL for the ASAAS production API
	ProductionBaseURL = "https://api.asaas.com/v3"
)

// PaymentStatus represents ASAAS payment status values
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusReceived  PaymentStatus = "RECEIVED"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// DiscountParam is the discount block attached to a payment request. The
// gateway applies it to every generated installment automatically.
type DiscountParam struct {
	Value            float64 `json:"value"`
	DueDateLimitDays int     `json:"dueDateLimitDays"`
	Type             string  `json:"type"`
}

// InterestParam is the monthly interest applied after the due date.
type InterestParam struct {
	Value float64 `json:"value"`
}

// FineParam is the one-off fine applied after the due date.
type FineParam struct {
	Value float64 `json:"value"`
}

// SplitParam routes part of each installment to a secondary wallet.
// Exactly one of PercentualValue or FixedValue is set.
type SplitParam struct {
	WalletID        string   `json:"walletId"`
	PercentualValue *float64 `json:"percentualValue,omitempty"`
	FixedValue      *float64 `json:"fixedValue,omitempty"`
}

// CreatePaymentRequest is the payload for POST /payments. Optional blocks
// are pointers so absent configuration is omitted rather than sent as null.
type CreatePaymentRequest struct {
	Customer          string         `json:"customer"`
	BillingType       string         `json:"billingType"`
	DueDate           string         `json:"dueDate"`
	InstallmentCount  int            `json:"installmentCount"`
	InstallmentValue  float64        `json:"installmentValue"`
	Description       string         `json:"description,omitempty"`
	ExternalReference string         `json:"externalReference,omitempty"`
	Discount          *DiscountParam `json:"discount,omitempty"`
	Interest          *InterestParam `json:"interest,omitempty"`
	Fine              *FineParam     `json:"fine,omitempty"`
	Split             []SplitParam   `json:"split,omitempty"`
}

// PaymentResponse is the object returned by the payments endpoints. For
// installment plans Installment carries the book identifier shared by every
// generated charge.
type PaymentResponse struct {
	ID                string         `json:"id"`
	Customer          string         `json:"customer"`
	Status            string         `json:"status"`
	BillingType       string         `json:"billingType"`
	DueDate           string         `json:"dueDate"`
	Value             float64        `json:"value"`
	NetValue          float64        `json:"netValue,omitempty"`
	Installment       string         `json:"installment,omitempty"`
	InstallmentCount  int            `json:"installmentCount,omitempty"`
	InstallmentValue  float64        `json:"installmentValue,omitempty"`
	Description       string         `json:"description,omitempty"`
	ExternalReference string         `json:"externalReference,omitempty"`
	InvoiceURL        string         `json:"invoiceUrl,omitempty"`
	BankSlipURL       string         `json:"bankSlipUrl,omitempty"`
	Discount          *DiscountParam `json:"discount,omitempty"`
	Interest          *InterestParam `json:"interest,omitempty"`
	Fine              *FineParam     `json:"fine,omitempty"`
	Split             []SplitParam   `json:"split,omitempty"`
	DateCreated       string         `json:"dateCreated,omitempty"`
}

// APIError is a single entry of the ASAAS error body.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ErrorResponse represents an ASAAS API error response
type ErrorResponse struct {
	Errors []APIError `json:"errors"`
}

// Message joins the upstream error descriptions into one line.
func (e *ErrorResponse) Message() string {
	if len(e.Errors) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.Errors))
	for _, apiErr := range e.Errors {
		if apiErr.Description != "" {
			parts = append(parts, apiErr.Description)
		}
	}
	return strings.Join(parts, "; ")
}
