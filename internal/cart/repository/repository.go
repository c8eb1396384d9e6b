package repository

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/cart/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart for the session.
	Delete(ctx context.Context, sessionID string) error
}
