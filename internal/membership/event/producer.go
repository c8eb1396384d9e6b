package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rindi230/angelsfitnesgym/internal/membership/domain"
	pkgkafka "github.com/rindi230/angelsfitnesgym/pkg/kafka"
)

// Kafka topic for membership domain events.
var TopicInquiryReceived = pkgkafka.Topic("inquiry", "received")

// Aggregate type constant.
const AggregateTypeInquiry = "inquiry"

// Source identifier for events originating from the membership feature.
const SourceMembership = "gym-server.membership"

// InquiryReceivedData is the payload for an inquiry.received event.
type InquiryReceivedData struct {
	InquiryID string `json:"inquiry_id"`
	PlanID    string `json:"plan_id"`
	PlanName  string `json:"plan_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Producer publishes membership domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the membership feature.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishInquiryReceived publishes an inquiry.received event.
func (p *Producer) PublishInquiryReceived(ctx context.Context, inquiry *domain.Inquiry) error {
	data := InquiryReceivedData{
		InquiryID: inquiry.ID.String(),
		PlanID:    inquiry.PlanID,
		PlanName:  inquiry.PlanName,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
	}

	event, err := pkgkafka.NewEvent(TopicInquiryReceived, inquiry.ID.String(), AggregateTypeInquiry, SourceMembership, data)
	if err != nil {
		return fmt.Errorf("create inquiry.received event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicInquiryReceived, event); err != nil {
		return fmt.Errorf("publish inquiry.received event: %w", err)
	}

	p.logger.DebugContext(ctx, "published inquiry.received event",
		slog.String("inquiry_id", inquiry.ID.String()),
		slog.String("plan_id", inquiry.PlanID),
	)

	return nil
}
