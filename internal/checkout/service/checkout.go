package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rindi230/angelsfitnesgym/internal/bus"
	cartdomain "github.com/rindi230/angelsfitnesgym/internal/cart/domain"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/domain"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/event"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/gateway"
	"github.com/rindi230/angelsfitnesgym/internal/checkout/repository"
	"github.com/rindi230/angelsfitnesgym/internal/contact"
	notification "github.com/rindi230/angelsfitnesgym/internal/notification/service"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// Payment return markers carried back from the payment provider redirect.
const (
	MarkerSuccess   = "success"
	MarkerCancelled = "cancelled"
)

// CartStore is the slice of the cart service the checkout flow needs.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// Notifier dispatches the gym pickup order email.
type Notifier interface {
	SendPickupOrder(ctx context.Context, input notification.PickupOrderInput)
}

// CheckoutService coordinates payment sessions, orders, and pickup orders.
type CheckoutService struct {
	carts      CartStore
	gateway    gateway.SessionGateway
	repo       repository.OrderRepository
	signals    *bus.Bus
	notifier   Notifier
	producer   *event.Producer
	policy     contact.Policy
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts CartStore,
	gw gateway.SessionGateway,
	repo repository.OrderRepository,
	signals *bus.Bus,
	notifier Notifier,
	producer *event.Producer,
	policy contact.Policy,
	successURL, cancelURL string,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		gateway:    gw,
		repo:       repo,
		signals:    signals,
		notifier:   notifier,
		producer:   producer,
		policy:     policy,
		successURL: successURL,
		cancelURL:  cancelURL,
		logger:     logger,
	}
}

// CreateSession validates the checkout preconditions and creates a payment
// session with the external provider. The cart is left untouched: it is only
// cleared when the payment return confirms success. The pending order row is
// best-effort and never blocks the checkout.
func (s *CheckoutService) CreateSession(ctx context.Context, sessionID, customerEmail string) (*domain.PaymentSession, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if !contact.IsEmailShaped(customerEmail) {
		return nil, apperrors.InvalidInput("a valid email address is required")
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	items := make([]domain.CheckoutItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = domain.CheckoutItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	session, err := s.gateway.CreateSession(ctx, &domain.CheckoutRequest{
		Items:         items,
		CustomerEmail: customerEmail,
		SuccessURL:    s.successURL,
		CancelURL:     s.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}

	order := s.buildOrder(cart, session.ID, customerEmail, "", "", domain.FulfillmentOnline)
	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to record pending order",
			slog.String("payment_session_id", session.ID),
			slog.String("error", err.Error()),
		)
	} else if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("payment_session_id", session.ID),
		slog.Int("item_count", len(items)),
	)

	return session, nil
}

// HandlePaymentReturn processes the redirect back from the payment provider.
// A success marker clears the cart, publishes a single order-completed
// signal, and marks the order paid. A cancelled marker leaves the cart
// intact.
func (s *CheckoutService) HandlePaymentReturn(ctx context.Context, sessionID, marker, paymentSessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	switch marker {
	case MarkerCancelled:
		s.logger.InfoContext(ctx, "payment cancelled, cart preserved",
			slog.String("payment_session_id", paymentSessionID),
		)
		return nil
	case MarkerSuccess:
		// handled below
	default:
		return apperrors.InvalidInput(fmt.Sprintf("unknown payment status %q", marker))
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart after payment: %w", err)
	}

	s.signals.Publish(bus.SignalOrderCompleted)

	if paymentSessionID != "" {
		if err := s.repo.MarkPaidBySession(ctx, paymentSessionID); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark order paid",
				slog.String("payment_session_id", paymentSessionID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.producer.PublishOrderPaid(ctx, paymentSessionID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.paid event",
				slog.String("payment_session_id", paymentSessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "payment completed",
		slog.String("payment_session_id", paymentSessionID),
	)

	return nil
}

// PickupOrderInput holds the contact details for a gym pickup order.
type PickupOrderInput struct {
	Name  string
	Email string
	Phone string
}

// CreatePickupOrder places an order to be paid and collected at the gym. The
// full contact policy applies. The cart is cleared once the order is stored;
// the shop email is fire-and-forget.
func (s *CheckoutService) CreatePickupOrder(ctx context.Context, sessionID string, input *PickupOrderInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input == nil {
		return nil, apperrors.InvalidInput("pickup order input is required")
	}

	if fields := s.policy.Validate(contact.Info{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}); len(fields) > 0 {
		return nil, contact.FieldErrors(fields)
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for pickup order: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	phone := s.policy.FormatPhone(input.Phone)
	order := s.buildOrder(cart, "", input.Email, input.Name, phone, domain.FulfillmentPickup)

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create pickup order: %w", err)
	}

	lines := make([]notification.OrderLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = notification.OrderLine{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}
	s.notifier.SendPickupOrder(ctx, notification.PickupOrderInput{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      phone,
		Items:      lines,
		TotalPrice: order.TotalAmount,
	})

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after pickup order",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "pickup order created",
		slog.String("order_id", order.ID.String()),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

// buildOrder converts a cart into an order record.
func (s *CheckoutService) buildOrder(cart *cartdomain.Cart, paymentSessionID, email, name, phone, fulfillment string) *domain.Order {
	items := make([]domain.OrderItem, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return &domain.Order{
		ID:               uuid.New(),
		PaymentSessionID: paymentSessionID,
		CustomerEmail:    email,
		CustomerName:     name,
		CustomerPhone:    phone,
		TotalAmount:      cart.TotalPrice(),
		Status:           domain.StatusPending,
		Fulfillment:      fulfillment,
		Items:            items,
		CreatedAt:        time.Now().UTC(),
	}
}
