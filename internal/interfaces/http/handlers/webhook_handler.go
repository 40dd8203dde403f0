package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"charity-pay.backend/internal/domain/gateway"
	"charity-pay.backend/internal/interfaces/http/response"
	"charity-pay.backend/pkg/logger"
)

// DefaultSignatureHeader carries the provider's HMAC over the raw body
const DefaultSignatureHeader = "X-Webhook-Signature"

// WebhookService is the slice of the webhook usecase the handler needs
type WebhookService interface {
	ProcessGatewayEvent(ctx context.Context, event *gateway.WebhookEvent) error
}

// WebhookVerifier is the part of the gateway client that authenticates and
// decodes inbound callbacks
type WebhookVerifier interface {
	VerifyWebhookSignature(rawPayload []byte, signature string) bool
	ParseWebhookEvent(rawPayload []byte) (*gateway.WebhookEvent, error)
}

// WebhookHandler is the inbound boundary for provider callbacks
type WebhookHandler struct {
	webhookUsecase  WebhookService
	gateway         WebhookVerifier
	signatureHeader string
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase WebhookService, gatewayClient WebhookVerifier, signatureHeader string) *WebhookHandler {
	if signatureHeader == "" {
		signatureHeader = DefaultSignatureHeader
	}
	return &WebhookHandler{
		webhookUsecase:  webhookUsecase,
		gateway:         gatewayClient,
		signatureHeader: signatureHeader,
	}
}

// HandleGatewayWebhook authenticates and applies a provider status callback.
// The body is verified as the exact raw bytes received; parsing only happens
// after the signature checks out. The provider retries on non-2xx, so
// reconciliation must stay safe to re-run.
// POST /api/v1/webhooks/gateway
func (h *WebhookHandler) HandleGatewayWebhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", "unreadable request body")
		return
	}

	signature := c.GetHeader(h.signatureHeader)
	if signature == "" {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "ERR_MISSING_SIGNATURE", "signature header is required")
		return
	}
	if !h.gateway.VerifyWebhookSignature(rawBody, signature) {
		logger.Warn(c.Request.Context(), "Webhook signature verification failed")
		response.ErrorWithStatus(c, http.StatusUnauthorized, "ERR_INVALID_SIGNATURE", "invalid signature")
		return
	}

	event, err := h.gateway.ParseWebhookEvent(rawBody)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", err.Error())
		return
	}

	if err := h.webhookUsecase.ProcessGatewayEvent(c.Request.Context(), event); err != nil {
		logger.Error(c.Request.Context(), "Webhook reconciliation failed",
			zap.String("remote_merchant_id", event.RemoteMerchantID),
			zap.Error(err),
		)
		response.ErrorWithStatus(c, http.StatusInternalServerError, "ERR_INTERNAL", "failed to process webhook")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"received": true})
}
