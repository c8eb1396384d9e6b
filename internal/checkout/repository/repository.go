// Package repository defines the data access interface for orders.
package repository

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists an order and its items in one transaction.
	Create(ctx context.Context, order *domain.Order) error

	// MarkPaidBySession marks the order tied to a payment session as paid.
	// Unknown sessions are a no-op.
	MarkPaidBySession(ctx context.Context, paymentSessionID string) error
}
