// Package domain defines the shopping cart owned by a browsing session.
// The item list is only ever changed through the methods here; callers
// get a copy of the items when they need to read them.
package domain

import "time"

// Cart is the server-side shopping cart for one session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []Item     `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Item is a single cart line.
type Item struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // unit price in cents
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string, ttl time.Duration) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// TotalPrice returns the sum of price x quantity over all lines, in cents.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// TotalItems returns the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// findIndex returns the index of the line for the given product, or -1.
func (c *Cart) findIndex(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges the given line into the cart. If a line for the same
// product already exists its quantity is increased by item.Quantity and
// the unit price, name, and image are refreshed; otherwise the line is
// appended.
func (c *Cart) AddItem(item Item) {
	if i := c.findIndex(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		c.Items[i].Price = item.Price
		c.Items[i].Name = item.Name
		c.Items[i].ImageURL = item.ImageURL
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the quantity of the line for the given product.
// A quantity of zero or less removes the line. Setting the quantity of a
// product that is not in the cart leaves the cart unchanged. It reports
// whether the cart was modified.
func (c *Cart) SetQuantity(productID, quantity int) bool {
	i := c.findIndex(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
	}
	return true
}

// RemoveItem deletes the line for the given product. Removing a product
// that is not in the cart is a no-op. It reports whether a line was removed.
func (c *Cart) RemoveItem(productID int) bool {
	i := c.findIndex(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
