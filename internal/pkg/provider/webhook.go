package provider

import (
	"fmt"
	"net/http"

	svix "github.com/svix/svix-webhooks/go"
)

// WebhookVerifier checks a provider webhook signature. Verification must
// succeed before any event side effect is applied.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// SvixWebhookVerifier verifies signatures using the provider's svix scheme.
type SvixWebhookVerifier struct {
	wh *svix.Webhook
}

// NewSvixWebhookVerifier creates a verifier from the shared webhook secret.
func NewSvixWebhookVerifier(secret string) (*SvixWebhookVerifier, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize webhook verifier: %w", err)
	}
	return &SvixWebhookVerifier{wh: wh}, nil
}

// Verify checks the svix signature headers against the raw payload.
func (v *SvixWebhookVerifier) Verify(payload []byte, headers http.Header) error {
	return v.wh.Verify(payload, headers)
}
