package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rindi230/angelsfitnesgym/internal/contact"
	"github.com/rindi230/angelsfitnesgym/internal/membership/domain"
	"github.com/rindi230/angelsfitnesgym/internal/membership/event"
	notification "github.com/rindi230/angelsfitnesgym/internal/notification/service"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// Notifier dispatches the membership inquiry email.
type Notifier interface {
	SendMembershipInquiry(ctx context.Context, input notification.MembershipInquiryInput)
}

// MembershipService implements the membership plan and inquiry logic.
type MembershipService struct {
	policy   contact.Policy
	notifier Notifier
	producer *event.Producer
	logger   *slog.Logger
}

// NewMembershipService creates a new membership service.
func NewMembershipService(policy contact.Policy, notifier Notifier, producer *event.Producer, logger *slog.Logger) *MembershipService {
	return &MembershipService{
		policy:   policy,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

// Plans returns the membership plan catalog.
func (s *MembershipService) Plans() []domain.Plan {
	return domain.Plans()
}

// CreateInquiryInput holds the parameters for a membership inquiry.
type CreateInquiryInput struct {
	PlanID string
	Name   string
	Email  string
	Phone  string
}

// CreateInquiry validates the prospect's contact details and dispatches the
// inquiry to the gym inbox. The email and the Kafka event are best-effort.
func (s *MembershipService) CreateInquiry(ctx context.Context, input *CreateInquiryInput) (*domain.Inquiry, error) {
	if input == nil {
		return nil, apperrors.InvalidInput("inquiry input is required")
	}

	plan, ok := domain.PlanByID(input.PlanID)
	if !ok {
		return nil, apperrors.NotFound("membership plan", input.PlanID)
	}

	if fields := s.policy.Validate(contact.Info{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}); len(fields) > 0 {
		return nil, contact.FieldErrors(fields)
	}

	inquiry := &domain.Inquiry{
		ID:        uuid.New(),
		PlanID:    plan.ID,
		PlanName:  plan.Name,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     s.policy.FormatPhone(input.Phone),
		CreatedAt: time.Now().UTC(),
	}

	s.notifier.SendMembershipInquiry(ctx, notification.MembershipInquiryInput{
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		PlanName:  plan.Name,
		PlanPrice: plan.PriceMonthly,
	})

	if err := s.producer.PublishInquiryReceived(ctx, inquiry); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish inquiry.received event",
			slog.String("inquiry_id", inquiry.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "membership inquiry received",
		slog.String("inquiry_id", inquiry.ID.String()),
		slog.String("plan_id", plan.ID),
	)

	return inquiry, nil
}
