package webhook

// EventType is the ASAAS webhook event name.
type EventType string

const (
	EventPaymentCreated   EventType = "PAYMENT_CREATED"
	EventPaymentConfirmed EventType = "PAYMENT_CONFIRMED"
	EventPaymentReceived  EventType = "PAYMENT_RECEIVED"
	EventPaymentOverdue   EventType = "PAYMENT_OVERDUE"
	EventPaymentRefunded  EventType = "PAYMENT_REFUNDED"
	EventPaymentDeleted   EventType = "PAYMENT_DELETED"
)

// PaymentEventData is the payment object embedded in a webhook delivery.
type PaymentEventData struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	Installment       string  `json:"installment,omitempty"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	NetValue          float64 `json:"netValue,omitempty"`
	DueDate           string  `json:"dueDate"`
	PaymentDate       string  `json:"paymentDate,omitempty"`
	BillingType       string  `json:"billingType"`
	ExternalReference string  `json:"externalReference,omitempty"`
	InvoiceURL        string  `json:"invoiceUrl,omitempty"`
}

// Event is an ASAAS webhook delivery.
type Event struct {
	Event   EventType         `json:"event"`
	Payment *PaymentEventData `json:"payment,omitempty"`
}
