// Package gateway talks to the external Stripe-style payment-session
// endpoint.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// SessionGateway creates payment sessions with the external provider.
type SessionGateway interface {
	CreateSession(ctx context.Context, req *domain.CheckoutRequest) (*domain.PaymentSession, error)
}

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// HTTPGateway implements SessionGateway against an HTTP payment endpoint.
// The endpoint answers with either {"id","url"} or {"error"}.
type HTTPGateway struct {
	httpClient HTTPDoer
	endpoint   string
	apiKey     string
	logger     *slog.Logger
}

// NewHTTPGateway creates a new payment-session gateway.
func NewHTTPGateway(httpClient HTTPDoer, endpoint, apiKey string, logger *slog.Logger) *HTTPGateway {
	return &HTTPGateway{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// sessionResponse is the provider's answer: exactly one of the session
// fields or the error field is set.
type sessionResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateSession posts the checkout request to the provider and returns the
// created session.
func (g *HTTPGateway) CreateSession(ctx context.Context, checkout *domain.CheckoutRequest) (*domain.PaymentSession, error) {
	body, err := json.Marshal(checkout)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read payment gateway response: %w", err)
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("decode payment gateway response (status %d): %w", resp.StatusCode, err)
	}

	if session.Error != "" {
		return nil, apperrors.PaymentFailed(session.Error)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrors.PaymentFailed(fmt.Sprintf("payment gateway returned status %d", resp.StatusCode))
	}
	if session.URL == "" {
		return nil, apperrors.PaymentFailed("payment gateway returned no session url")
	}

	g.logger.InfoContext(ctx, "payment session created",
		slog.String("session_id", session.ID),
	)

	return &domain.PaymentSession{ID: session.ID, URL: session.URL}, nil
}
