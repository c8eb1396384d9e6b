package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

// Kafka topics for order domain events.
var (
	TopicOrderCreated = pkgkafka.Topic("order", "created")
	TopicOrderPaid    = pkgkafka.Topic("order", "paid")
)

// Aggregate type constant.
const AggregateTypeOrder = "order"

// Source identifier for events originating from the checkout feature.
const SourceCheckout = "gym-server.checkout"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	CustomerEmail    string `json:"customer_email"`
	TotalAmount      int64  `json:"total_amount"`
	Fulfillment      string `json:"fulfillment"`
	ItemCount        int    `json:"item_count"`
}

// OrderPaidData is the payload for an order.paid event.
type OrderPaidData struct {
	PaymentSessionID string `json:"payment_session_id"`
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the checkout feature.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	data := OrderCreatedData{
		OrderID:          order.ID.String(),
		PaymentSessionID: order.PaymentSessionID,
		CustomerEmail:    order.CustomerEmail,
		TotalAmount:      order.TotalAmount,
		Fulfillment:      order.Fulfillment,
		ItemCount:        len(order.Items),
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID.String(), AggregateTypeOrder, SourceCheckout, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID.String()),
	)

	return nil
}

// PublishOrderPaid publishes an order.paid event.
func (p *Producer) PublishOrderPaid(ctx context.Context, paymentSessionID string) error {
	data := OrderPaidData{PaymentSessionID: paymentSessionID}

	event, err := pkgkafka.NewEvent(TopicOrderPaid, paymentSessionID, AggregateTypeOrder, SourceCheckout, data)
	if err != nil {
		return fmt.Errorf("create order.paid event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPaid, event); err != nil {
		return fmt.Errorf("publish order.paid event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.paid event",
		slog.String("payment_session_id", paymentSessionID),
	)

	return nil
}
