// Package repository defines the data access interface for bookings.
package repository

import (
	"context"

	"github.com/rindi230/angelsfitnesgym/internal/booking/domain"
)

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	// Create claims one slot on the class and persists the booking
	// atomically. It returns ErrConflict (via apperrors.Conflict) when the
	// class has no remaining slots; on any failure no slot is taken.
	Create(ctx context.Context, booking *domain.Booking) error

	// CountByClass returns the number of bookings for a single class.
	CountByClass(ctx context.Context, classID int) (int, error)

	// CountsByClass returns booking counts keyed by class ID.
	CountsByClass(ctx context.Context) (map[int]int, error)
}
