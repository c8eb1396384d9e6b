// Package domain contains the booking record and the per-class booking
// state machine.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking statuses.
const (
	StatusConfirmed = "confirmed"
)

// Booking is a confirmed reservation of a spot in a class.
type Booking struct {
	ID          uuid.UUID `json:"id"`
	ClassID     int       `json:"class_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	BookingDate string    `json:"booking_date"`
	BookingTime string    `json:"booking_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
