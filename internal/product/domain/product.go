// Package domain defines the shop products sold at the gym front desk.
package domain

import "time"

// Product is a shop item with a unit price in cents and a stock count.
// Stock is checked when rendering the shop; a cart line added against
// stale stock is accepted and reconciled at pickup.
type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	ImageURL      string    `json:"image_url,omitempty"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

// InStock reports whether any units remain.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}
