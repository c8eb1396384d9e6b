package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rindi230/angelsfitnesgym/internal/booking/domain"
	"github.com/rindi230/angelsfitnesgym/internal/booking/event"
	"github.com/rindi230/angelsfitnesgym/internal/booking/repository"
	"github.com/rindi230/angelsfitnesgym/internal/bus"
	classrepo "github.com/rindi230/angelsfitnesgym/internal/classes/repository"
	"github.com/rindi230/angelsfitnesgym/internal/contact"
	notification "github.com/rindi230/angelsfitnesgym/internal/notification/service"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// Notifier dispatches the booking confirmation email.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, input notification.BookingEmailInput)
}

// BookingService implements the business logic for class bookings.
type BookingService struct {
	repo      repository.BookingRepository
	classRepo classrepo.ClassRepository
	policy    contact.Policy
	tracker   *domain.StateTracker
	signals   *bus.Bus
	notifier  Notifier
	producer  *event.Producer
	logger    *slog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	repo repository.BookingRepository,
	classRepo classrepo.ClassRepository,
	policy contact.Policy,
	tracker *domain.StateTracker,
	signals *bus.Bus,
	notifier Notifier,
	producer *event.Producer,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		classRepo: classRepo,
		policy:    policy,
		tracker:   tracker,
		signals:   signals,
		notifier:  notifier,
		producer:  producer,
		logger:    logger,
	}
}

// CreateBookingInput holds the parameters for booking a class spot.
type CreateBookingInput struct {
	ClassID     int    `json:"class_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	BookingTime string `json:"booking_time" validate:"required"`
}

// CreateBooking validates the request, takes a slot on the class, and
// persists the booking. The booking confirmation email and the Kafka event
// are best-effort: their failures are logged and do not fail the booking.
func (s *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*domain.Booking, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("booking input is required")
	}
	if input.ClassID <= 0 {
		return nil, apperrors.InvalidInput("class id is required")
	}

	if fields := s.policy.Validate(contact.Info{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}); len(fields) > 0 {
		return nil, contact.FieldErrors(fields)
	}

	if _, err := time.Parse("2006-01-02", input.BookingDate); err != nil {
		return nil, apperrors.InvalidInput("booking date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", input.BookingTime); err != nil {
		return nil, apperrors.InvalidInput("booking time must be in HH:MM format")
	}

	if !s.tracker.Begin(input.ClassID) {
		return nil, apperrors.Conflict("a booking for this class is already in progress")
	}

	booking, className, err := s.createBooking(ctx, input)
	if err != nil {
		s.tracker.Fail(input.ClassID)
		return nil, err
	}
	s.tracker.Complete(input.ClassID)

	s.signals.Publish(bus.SignalBookingUpdated)

	s.notifier.SendBookingConfirmation(ctx, notification.BookingEmailInput{
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		ClassName:   className,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
	})

	if err := s.producer.PublishBookingCreated(ctx, booking); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish booking.created event",
			slog.String("booking_id", booking.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "booking created",
		slog.String("booking_id", booking.ID.String()),
		slog.Int("class_id", booking.ClassID),
	)

	return booking, nil
}

// createBooking checks class capacity and writes the booking. The slot claim
// happens inside repo.Create in the same transaction as the insert, so a
// failed write never loses capacity. It also returns the class name for the
// confirmation email.
func (s *BookingService) createBooking(ctx context.Context, input *CreateBookingInput) (*domain.Booking, string, error) {
	class, err := s.classRepo.GetByID(ctx, input.ClassID)
	if err != nil {
		return nil, "", fmt.Errorf("get class for booking: %w", err)
	}
	if !class.HasAvailableSlots() {
		return nil, "", apperrors.Conflict("class is fully booked")
	}

	booking := &domain.Booking{
		ID:          uuid.New(),
		ClassID:     class.ID,
		Name:        input.Name,
		Email:       input.Email,
		Phone:       s.policy.FormatPhone(input.Phone),
		BookingDate: input.BookingDate,
		BookingTime: input.BookingTime,
		Status:      domain.StatusConfirmed,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, "", fmt.Errorf("create booking: %w", err)
	}

	return booking, class.Name, nil
}

// BookingCounts returns the number of bookings per class.
func (s *BookingService) BookingCounts(ctx context.Context) (map[int]int, error) {
	counts, err := s.repo.CountsByClass(ctx)
	if err != nil {
		return nil, fmt.Errorf("booking counts: %w", err)
	}
	return counts, nil
}

// ClassBookingStates returns the current booking flow state per class.
func (s *BookingService) ClassBookingStates() map[int]string {
	return s.tracker.Snapshot()
}
