// Package gateway defines the contract with the external acquiring/KYC
// provider. The concrete HTTP client lives in infrastructure; usecases and
// handlers depend only on this interface.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"charity-pay.backend/internal/domain/entities"
)

// CreateMerchantResult is the provider's answer to merchant creation
type CreateMerchantResult struct {
	RemoteMerchantID string    `json:"merchantId"`
	Status           string    `json:"status"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UploadDocumentResult is the provider's answer to a document submission
type UploadDocumentResult struct {
	RemoteDocumentID string `json:"documentId"`
	Status           string `json:"status"`
	Message          string `json:"message"`
}

// MerchantStatusResult is a read-only poll result, used as a fallback when
// webhooks are delayed or lost
type MerchantStatusResult struct {
	RemoteMerchantID string    `json:"merchantId"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// WebhookEvent is a normalized provider callback. Extra carries fields the
// parser does not recognize so the vocabulary can grow without data loss.
type WebhookEvent struct {
	EventType        string
	RemoteMerchantID string
	Status           string
	Reason           string
	Timestamp        time.Time
	Extra            map[string]json.RawMessage
}

// Error carries the provider's non-success response for diagnostics
type Error struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway %s failed: status=%d body=%s", e.Op, e.StatusCode, e.Body)
}

// Client defines all communication with the external merchant/KYC provider
// plus local verification of inbound webhook payloads. Signature verification
// operates on the exact raw bytes as received; any re-serialization would
// invalidate the signature.
type Client interface {
	CreateMerchant(ctx context.Context, org *entities.Organization) (*CreateMerchantResult, error)
	UploadDocument(ctx context.Context, remoteMerchantID string, doc *entities.Document, fileBytes []byte) (*UploadDocumentResult, error)
	GetMerchantStatus(ctx context.Context, remoteMerchantID string) (*MerchantStatusResult, error)
	VerifyWebhookSignature(rawPayload []byte, signature string) bool
	ParseWebhookEvent(rawPayload []byte) (*WebhookEvent, error)
}
