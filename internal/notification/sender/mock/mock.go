package mock

import (
	"context"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/notification/domain"
)

// MockSender is a sender implementation that logs emails and always
// succeeds. It is used when no email endpoint is configured.
type MockSender struct {
	logger *slog.Logger
}

// NewMockSender creates a new mock sender.
func NewMockSender(logger *slog.Logger) *MockSender {
	return &MockSender{logger: logger}
}

// Name returns the name of this sender.
func (s *MockSender) Name() string {
	return "mock-email"
}

// Send logs the email details instead of delivering it.
func (s *MockSender) Send(ctx context.Context, email *domain.Email) error {
	s.logger.InfoContext(ctx, "mock sender: email sent",
		slog.String("from", email.From),
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
