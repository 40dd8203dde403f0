// Package gateway implements the HTTP client for the external acquiring/KYC
// provider: client-credentials authentication, merchant creation, document
// submission, status polling and webhook signature verification.
package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
	domaingateway "charity-pay.backend/internal/domain/gateway"
	"charity-pay.backend/pkg/logger"
)

// Config holds the provider endpoint and credentials
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// WebhookSecret is the shared secret used to verify inbound callbacks
	WebhookSecret string
	// TokenSafetyMargin is how long before expiry a cached token is
	// considered stale and refreshed
	TokenSafetyMargin time.Duration
	Timeout           time.Duration
}

type bearerToken struct {
	value  string
	expiry time.Time
}

// Client is the concrete provider client. Safe for concurrent use: the
// cached token is read lock-free and refreshed under a mutex.
type Client struct {
	cfg        Config
	httpClient *http.Client

	token     atomic.Pointer[bearerToken]
	refreshMu sync.Mutex
}

var _ domaingateway.Client = (*Client)(nil)

// NewClient creates a new provider client
func NewClient(cfg Config) *Client {
	if cfg.TokenSafetyMargin <= 0 {
		cfg.TokenSafetyMargin = 2 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) tokenValid(t *bearerToken) bool {
	return t != nil && time.Until(t.expiry) > c.cfg.TokenSafetyMargin
}

// ensureToken returns a bearer token valid for at least the safety margin,
// refreshing it if needed. Double-checked: the fast path is lock-free; a
// refresher re-checks after acquiring the lock because a competing caller
// may have refreshed while it waited.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	if t := c.token.Load(); c.tokenValid(t) {
		return t.value, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if t := c.token.Load(); c.tokenValid(t) {
		return t.value, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &domaingateway.Error{Op: "token exchange", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tr struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("malformed token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	t := &bearerToken{
		value:  tr.AccessToken,
		expiry: time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	c.token.Store(t)
	logger.Debug(ctx, "Gateway token refreshed", zap.Time("expiry", t.expiry))
	return t.value, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, op string) ([]byte, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway %s failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		gerr := &domaingateway.Error{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
		logger.Error(ctx, "Gateway call failed",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, gerr
	}
	return body, nil
}

// merchant creation wire types, provider-defined schema
type merchantRequest struct {
	Merchant merchantDetails `json:"merchant"`
	Deposit  depositAccount  `json:"deposit"`
	Person   contactPerson   `json:"person"`
}

type merchantDetails struct {
	LegalName      string `json:"legalName"`
	TaxID          string `json:"taxId"`
	RegistryNumber string `json:"registryNumber,omitempty"`
}

type depositAccount struct {
	Iban string `json:"iban"`
}

type contactPerson struct {
	Email string `json:"email"`
}

// CreateMerchant registers the organization with the provider. Tax id and
// bank account are validated locally before any network call.
func (c *Client) CreateMerchant(ctx context.Context, org *entities.Organization) (*domaingateway.CreateMerchantResult, error) {
	if !org.TaxID.Valid || !org.BankAccount.Valid {
		return nil, domainerrors.BadRequest("tax id and bank account are required before merchant creation")
	}
	if err := entities.ValidateTaxID(org.TaxID.String); err != nil {
		return nil, err
	}
	if err := entities.ValidateBankAccount(org.BankAccount.String); err != nil {
		return nil, err
	}

	payload := merchantRequest{
		Merchant: merchantDetails{
			LegalName:      org.LegalBusinessName.String,
			TaxID:          org.TaxID.String,
			RegistryNumber: org.KrsNumber.String,
		},
		Deposit: depositAccount{Iban: org.BankAccount.String},
		Person:  contactPerson{Email: org.ContactEmail},
	}

	body, err := c.doJSON(ctx, http.MethodPost, "/merchants", payload, "create merchant")
	if err != nil {
		return nil, err
	}

	var result domaingateway.CreateMerchantResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("malformed merchant creation response: %w", err)
	}
	return &result, nil
}

// documentCategory maps local document types to provider category codes
func documentCategory(t entities.DocumentType) string {
	switch t {
	case entities.DocumentTypeCorporateRegistration:
		return "COMPANY_REGISTRATION"
	case entities.DocumentTypeGovernmentID:
		return "IDENTITY"
	case entities.DocumentTypeBankStatement:
		return "BANK_CONFIRMATION"
	default:
		return "OTHER"
	}
}

type documentRequest struct {
	Category string `json:"category"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	// Content is the file transported base64-encoded inside the JSON body
	Content string `json:"content"`
}

// UploadDocument submits a KYC document for the given remote merchant.
func (c *Client) UploadDocument(ctx context.Context, remoteMerchantID string, doc *entities.Document, fileBytes []byte) (*domaingateway.UploadDocumentResult, error) {
	payload := documentRequest{
		Category: documentCategory(doc.Type),
		FileName: doc.OriginalFileName,
		MimeType: doc.MimeType,
		Content:  base64.StdEncoding.EncodeToString(fileBytes),
	}

	path := "/merchants/" + url.PathEscape(remoteMerchantID) + "/documents"
	body, err := c.doJSON(ctx, http.MethodPost, path, payload, "upload document")
	if err != nil {
		return nil, err
	}

	var result domaingateway.UploadDocumentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("malformed document upload response: %w", err)
	}
	return &result, nil
}

// GetMerchantStatus polls the provider for the merchant's current status.
func (c *Client) GetMerchantStatus(ctx context.Context, remoteMerchantID string) (*domaingateway.MerchantStatusResult, error) {
	path := "/merchants/" + url.PathEscape(remoteMerchantID) + "/status"
	body, err := c.doJSON(ctx, http.MethodGet, path, nil, "merchant status")
	if err != nil {
		return nil, err
	}

	var result domaingateway.MerchantStatusResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("malformed merchant status response: %w", err)
	}
	return &result, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 hex signature over the exact
// raw payload bytes. Comparison is constant-time; hex case is ignored.
func (c *Client) VerifyWebhookSignature(rawPayload []byte, signature string) bool {
	sig := strings.ToLower(strings.TrimSpace(signature))
	sig = strings.TrimPrefix(sig, "sha256=")
	if sig == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(c.cfg.WebhookSecret))
	mac.Write(rawPayload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

// webhook payload wire format
type webhookPayload struct {
	EventType  string `json:"eventType"`
	MerchantID string `json:"merchantId"`
	Status     string `json:"status"`
	Reason     string `json:"reason"`
	Timestamp  string `json:"timestamp"`
}

var webhookKnownFields = map[string]bool{
	"eventType": true, "merchantId": true, "status": true, "reason": true, "timestamp": true,
}

// ParseWebhookEvent parses a verified payload into a normalized event.
// Pure parsing, no side effects.
func (c *Client) ParseWebhookEvent(rawPayload []byte) (*domaingateway.WebhookEvent, error) {
	var p webhookPayload
	if err := json.Unmarshal(rawPayload, &p); err != nil {
		return nil, fmt.Errorf("%w: malformed webhook payload: %v", domainerrors.ErrInvalidInput, err)
	}
	if p.MerchantID == "" || p.Status == "" {
		return nil, fmt.Errorf("%w: webhook payload missing merchantId or status", domainerrors.ErrInvalidInput)
	}

	event := &domaingateway.WebhookEvent{
		EventType:        p.EventType,
		RemoteMerchantID: p.MerchantID,
		Status:           p.Status,
		Reason:           p.Reason,
	}
	if p.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
			event.Timestamp = ts
		}
	}

	// Keep unrecognized fields so the provider vocabulary can grow
	var all map[string]json.RawMessage
	if err := json.Unmarshal(rawPayload, &all); err == nil {
		for k, v := range all {
			if !webhookKnownFields[k] {
				if event.Extra == nil {
					event.Extra = make(map[string]json.RawMessage)
				}
				event.Extra[k] = v
			}
		}
	}
	return event, nil
}
