package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/integration/asaas"
	"github.com/poloedu/polobill/internal/integration/asaas/webhook"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/types"
)

type WebhookHandler struct {
	gateway asaas.GatewayClient
	handler *webhook.Handler
	log     *logger.Logger
}

func NewWebhookHandler(gateway asaas.GatewayClient, handler *webhook.Handler, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{gateway: gateway, handler: handler, log: log}
}

// @Summary Receive an ASAAS webhook event
// @Description Verify the delivery token and process the payment event
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param event body webhook.Event true "Webhook event"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} ierr.ErrorResponse
// @Router /webhooks/asaas [post]
func (h *WebhookHandler) HandleAsaasEvent(c *gin.Context) {
	token := c.GetHeader(types.HeaderAsaasAccessToken)
	if err := h.gateway.VerifyWebhookToken(token); err != nil {
		c.Error(err)
		return
	}

	var event webhook.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		h.log.Error("Failed to bind webhook event", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid webhook payload").
			Mark(ierr.ErrValidation))
		return
	}

	// Always 200 once authenticated, otherwise the gateway keeps retrying.
	h.handler.HandleEvent(c.Request.Context(), &event)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
