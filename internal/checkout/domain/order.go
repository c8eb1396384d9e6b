// Package domain contains the checkout request/response schemas and the
// order record.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Order fulfillment types.
const (
	FulfillmentOnline = "online"
	FulfillmentPickup = "pickup"
)

// CheckoutItem is a single cart line sent to the payment gateway.
type CheckoutItem struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the payload sent to the payment-session gateway.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	CustomerEmail string         `json:"customerEmail"`
	SuccessURL    string         `json:"successUrl"`
	CancelURL     string         `json:"cancelUrl"`
}

// PaymentSession is a successfully created payment session. The customer is
// redirected to URL to complete payment.
type PaymentSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// OrderItem is a purchased line within an order.
type OrderItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is a durable record of a checkout, either an online payment or a
// gym pickup.
type Order struct {
	ID               uuid.UUID   `json:"id"`
	PaymentSessionID string      `json:"payment_session_id,omitempty"`
	CustomerEmail    string      `json:"customer_email"`
	CustomerName     string      `json:"customer_name,omitempty"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	TotalAmount      int64       `json:"total_amount"`
	Status           string      `json:"status"`
	Fulfillment      string      `json:"fulfillment"`
	Items            []OrderItem `json:"items"`
	CreatedAt        time.Time   `json:"created_at"`
}
