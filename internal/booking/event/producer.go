package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/booking/domain"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

// Kafka topic for booking domain events.
var TopicBookingCreated = pkgkafka.Topic("booking", "created")

// Aggregate type constant.
const AggregateTypeBooking = "booking"

// Source identifier for events originating from the booking feature.
const SourceBooking = "gym-server.booking"

// BookingCreatedData is the payload for a booking.created event.
type BookingCreatedData struct {
	BookingID   string `json:"booking_id"`
	ClassID     int    `json:"class_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
}

// Producer publishes booking domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the booking feature.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishBookingCreated publishes a booking.created event.
func (p *Producer) PublishBookingCreated(ctx context.Context, booking *domain.Booking) error {
	data := BookingCreatedData{
		BookingID:   booking.ID.String(),
		ClassID:     booking.ClassID,
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
	}

	event, err := pkgkafka.NewEvent(TopicBookingCreated, booking.ID.String(), AggregateTypeBooking, SourceBooking, data)
	if err != nil {
		return fmt.Errorf("create booking.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookingCreated, event); err != nil {
		return fmt.Errorf("publish booking.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published booking.created event",
		slog.String("booking_id", booking.ID.String()),
		slog.Int("class_id", booking.ClassID),
	)

	return nil
}
