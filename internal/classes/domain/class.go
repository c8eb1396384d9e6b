// Package domain defines the group fitness classes offered by the gym.
package domain

import "time"

// Class is a scheduled group class with a bounded number of slots.
type Class struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Trainer        string    `json:"trainer"`
	Schedule       string    `json:"schedule"`
	DurationMin    int       `json:"duration_min"`
	Difficulty     string    `json:"difficulty"`
	MaxCapacity    int       `json:"max_capacity"`
	AvailableSlots int       `json:"available_slots"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// HasAvailableSlots reports whether the class can take another booking.
func (c *Class) HasAvailableSlots() bool {
	return c.AvailableSlots > 0
}
