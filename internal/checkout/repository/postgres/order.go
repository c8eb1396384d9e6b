package postgres

import (
	"context"
	"fmt"

	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
	"github.com/rindi230/angelsfitnesgym/pkg/database"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists an order and its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderQuery := `
		INSERT INTO orders (id, payment_session_id, customer_email, customer_name, customer_phone, total_amount, status, fulfillment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.Exec(ctx, orderQuery,
		order.ID,
		order.PaymentSessionID,
		order.CustomerEmail,
		order.CustomerName,
		order.CustomerPhone,
		order.TotalAmount,
		order.Status,
		order.Fulfillment,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)`

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.ProductID, item.Name, item.Price, item.Quantity); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

// MarkPaidBySession marks the order tied to a payment session as paid.
func (r *OrderRepository) MarkPaidBySession(ctx context.Context, paymentSessionID string) error {
	query := `
		UPDATE orders
		SET status = $1
		WHERE payment_session_id = $2 AND status = $3`

	_, err := r.pool.Exec(ctx, query, domain.StatusPaid, paymentSessionID, domain.StatusPending)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	return nil
}
