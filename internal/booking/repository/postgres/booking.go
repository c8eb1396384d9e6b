package postgres

import (
	"context"
	"fmt"

	"github.com/rindi230/angelsfitnesgym/internal/booking/domain"
	"github.com/rindi230/angelsfitnesgym/pkg/database"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// BookingRepository implements repository.BookingRepository using PostgreSQL.
type BookingRepository struct {
	pool database.DBTX
}

// NewBookingRepository creates a new PostgreSQL-backed booking repository.
func NewBookingRepository(pool database.DBTX) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create claims one slot on the class and persists the booking in a single
// transaction, so a failed insert rolls the slot back. The guard in the
// UPDATE prevents the count from going below zero under concurrent bookings;
// when no slots remain it returns a conflict and writes nothing.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	slotQuery := `
		UPDATE classes
		SET available_slots = available_slots - 1
		WHERE id = $1 AND available_slots > 0`

	tag, err := tx.Exec(ctx, slotQuery, booking.ClassID)
	if err != nil {
		return fmt.Errorf("take class slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Conflict("class is fully booked")
	}

	insertQuery := `
		INSERT INTO bookings (id, class_id, name, email, phone, booking_date, booking_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = tx.Exec(ctx, insertQuery,
		booking.ID,
		booking.ClassID,
		booking.Name,
		booking.Email,
		booking.Phone,
		booking.BookingDate,
		booking.BookingTime,
		booking.Status,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking tx: %w", err)
	}

	return nil
}

// CountByClass returns the number of bookings for a single class.
func (r *BookingRepository) CountByClass(ctx context.Context, classID int) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE class_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, classID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings by class: %w", err)
	}

	return count, nil
}

// CountsByClass returns booking counts keyed by class ID.
func (r *BookingRepository) CountsByClass(ctx context.Context) (map[int]int, error) {
	query := `
		SELECT class_id, COUNT(*)
		FROM bookings
		GROUP BY class_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query booking counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var classID, count int
		if err := rows.Scan(&classID, &count); err != nil {
			return nil, fmt.Errorf("scan booking count: %w", err)
		}
		counts[classID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking counts: %w", err)
	}

	return counts, nil
}
