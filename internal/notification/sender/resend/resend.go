// Package resend implements an email sender backed by a Resend-compatible
// HTTP email API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rindi230/angelsfitnesgym/internal/notification/domain"
	"github.com/rindi230/angelsfitnesgym/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// EmailSender delivers emails through a Resend-compatible HTTP endpoint.
type EmailSender struct {
	httpClient  HTTPDoer
	endpointURL string
	apiKey      string
	logger      *slog.Logger
}

// NewEmailSender creates a new HTTP email sender.
func NewEmailSender(httpClient HTTPDoer, endpointURL, apiKey string, logger *slog.Logger) *EmailSender {
	return &EmailSender{
		httpClient:  httpClient,
		endpointURL: endpointURL,
		apiKey:      apiKey,
		logger:      logger,
	}
}

// Name returns the name of this sender.
func (s *EmailSender) Name() string {
	return "resend-email"
}

// Send delivers an email via the configured HTTP endpoint.
func (s *EmailSender) Send(ctx context.Context, email *domain.Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call email service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return httpclient.ParseResponseError(resp, "email")
	}

	s.logger.InfoContext(ctx, "email sent",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)

	return nil
}
