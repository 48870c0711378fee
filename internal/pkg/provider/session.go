package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Session errors
var (
	ErrSessionInvalid = errors.New("invalid provider session")
)

// SessionVerifier resolves an opaque provider bearer session to a subject id.
// The provider is an external oracle; this interface keeps handlers and
// middleware testable without it.
type SessionVerifier interface {
	VerifySession(ctx context.Context, sessionToken string) (subjectID string, err error)
}

// Config holds provider API settings.
type Config struct {
	APIBaseURL string
	APIKey     string
}

// Client talks to the identity provider's backend API.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a provider API client.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type verifySessionRequest struct {
	Token string `json:"token"`
}

type verifySessionResponse struct {
	SubjectID string `json:"subject_id"`
}

// VerifySession asks the provider whether the session token is valid and
// returns the provider subject id of its owner.
func (c *Client) VerifySession(ctx context.Context, sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", ErrSessionInvalid
	}

	body, err := json.Marshal(verifySessionRequest{Token: sessionToken})
	if err != nil {
		return "", fmt.Errorf("failed to encode session verification request: %w", err)
	}

	url := c.config.APIBaseURL + "/v1/sessions/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build session verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("provider session verification failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusNotFound:
		return "", ErrSessionInvalid
	default:
		return "", fmt.Errorf("provider returned unexpected status %d", resp.StatusCode)
	}

	var parsed verifySessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode session verification response: %w", err)
	}

	if parsed.SubjectID == "" {
		return "", ErrSessionInvalid
	}

	return parsed.SubjectID, nil
}
