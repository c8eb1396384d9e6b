package sender

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/notification/domain"
)

// Sender defines the interface for delivering an email through a provider.
type Sender interface {
	Name() string
	Send(ctx context.Context, email *domain.Email) error
}
