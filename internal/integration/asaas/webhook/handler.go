package webhook

import (
	"context"

	"github.com/poloedu/polobill/internal/logger"
)

// Handler handles ASAAS webhook events. Installment state is owned by the
// billing subsystem downstream; here events are dispatched to structured
// logs only.
type Handler struct {
	logger *logger.Logger
}

// NewHandler creates a new ASAAS webhook handler
func NewHandler(logger *logger.Logger) *Handler {
	return &Handler{logger: logger}
}

// HandleEvent processes an ASAAS webhook event. It never returns an error:
// webhooks must always be answered with 200 OK so the gateway stops
// retrying, and every failure mode is logged instead.
func (h *Handler) HandleEvent(ctx context.Context, event *Event) {
	log := h.logger.WithContext(ctx)

	if event.Payment == nil {
		log.Warnw("webhook event without payment payload, skipping",
			"event_type", event.Event)
		return
	}

	fields := []interface{}{
		"event_type", event.Event,
		"payment_id", event.Payment.ID,
		"installment_id", event.Payment.Installment,
		"customer", event.Payment.Customer,
		"status", event.Payment.Status,
		"value", event.Payment.Value,
		"due_date", event.Payment.DueDate,
		"external_reference", event.Payment.ExternalReference,
	}

	switch event.Event {
	case EventPaymentReceived, EventPaymentConfirmed:
		log.Infow("installment payment confirmed by gateway", fields...)
	case EventPaymentOverdue:
		log.Warnw("installment payment overdue", fields...)
	case EventPaymentRefunded, EventPaymentDeleted:
		log.Warnw("installment payment reversed at gateway", fields...)
	case EventPaymentCreated:
		log.Infow("installment payment created at gateway", fields...)
	default:
		log.Infow("ignoring unhandled webhook event", "event_type", event.Event)
	}
}
