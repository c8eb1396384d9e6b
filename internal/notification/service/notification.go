package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rindi230/angelsfitnesgym/internal/notification/domain"
	"github.com/rindi230/angelsfitnesgym/internal/notification/sender"
)

// defaultSendTimeout bounds a detached email delivery attempt.
const defaultSendTimeout = 10 * time.Second

// NotificationService builds and dispatches the site's transactional emails.
// Delivery is fire-and-forget: failures are logged and never surface to the
// caller's request.
type NotificationService struct {
	sender      sender.Sender
	fromAddress string
	adminTo     string
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(snd sender.Sender, fromAddress, adminTo string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		sender:      snd,
		fromAddress: fromAddress,
		adminTo:     adminTo,
		sendTimeout: defaultSendTimeout,
		logger:      logger,
	}
}

// BookingEmailInput holds the details rendered into a class booking email.
type BookingEmailInput struct {
	Name        string
	Email       string
	Phone       string
	ClassName   string
	BookingDate string
	BookingTime string
}

// SendBookingConfirmation dispatches a booking notification to the gym inbox.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, input BookingEmailInput) {
	email := &domain.Email{
		From:    s.fromAddress,
		To:      []string{s.adminTo},
		Subject: fmt.Sprintf("New class booking: %s", input.ClassName),
		HTML: fmt.Sprintf(
			"<h2>New Class Booking</h2>"+
				"<p><strong>Class:</strong> %s</p>"+
				"<p><strong>Date:</strong> %s at %s</p>"+
				"<p><strong>Name:</strong> %s</p>"+
				"<p><strong>Email:</strong> %s</p>"+
				"<p><strong>Phone:</strong> %s</p>",
			input.ClassName, input.BookingDate, input.BookingTime,
			input.Name, input.Email, input.Phone,
		),
	}

	s.dispatch(ctx, "booking_confirmation", email)
}

// MembershipInquiryInput holds the details rendered into a membership
// inquiry email.
type MembershipInquiryInput struct {
	Name      string
	Email     string
	Phone     string
	PlanName  string
	PlanPrice int64
}

// SendMembershipInquiry dispatches a membership inquiry to the gym inbox.
func (s *NotificationService) SendMembershipInquiry(ctx context.Context, input MembershipInquiryInput) {
	email := &domain.Email{
		From:    s.fromAddress,
		To:      []string{s.adminTo},
		Subject: fmt.Sprintf("New membership plan interest: %s plan", input.PlanName),
		HTML: fmt.Sprintf(
			"<h2>New Membership Inquiry</h2>"+
				"<p><strong>Plan:</strong> %s (%s/month)</p>"+
				"<p><strong>Name:</strong> %s</p>"+
				"<p><strong>Email:</strong> %s</p>"+
				"<p><strong>Phone:</strong> %s</p>",
			input.PlanName, formatPrice(input.PlanPrice),
			input.Name, input.Email, input.Phone,
		),
	}

	s.dispatch(ctx, "membership_inquiry", email)
}

// OrderLine is a single purchased item rendered into an order email.
type OrderLine struct {
	Name     string
	Quantity int
	Price    int64
}

// PickupOrderInput holds the details rendered into a gym pickup order email.
type PickupOrderInput struct {
	Name       string
	Email      string
	Phone      string
	Items      []OrderLine
	TotalPrice int64
}

// SendPickupOrder dispatches a gym pickup order summary to the gym inbox.
func (s *NotificationService) SendPickupOrder(ctx context.Context, input PickupOrderInput) {
	var lines strings.Builder
	for _, item := range input.Items {
		fmt.Fprintf(&lines, "<li>%s x%d - %s</li>", item.Name, item.Quantity, formatPrice(item.Price*int64(item.Quantity)))
	}

	email := &domain.Email{
		From:    s.fromAddress,
		To:      []string{s.adminTo},
		Subject: fmt.Sprintf("New pickup order from %s", input.Name),
		HTML: fmt.Sprintf(
			"<h2>New Gym Pickup Order</h2>"+
				"<p><strong>Name:</strong> %s</p>"+
				"<p><strong>Email:</strong> %s</p>"+
				"<p><strong>Phone:</strong> %s</p>"+
				"<ul>%s</ul>"+
				"<p><strong>Total:</strong> %s</p>",
			input.Name, input.Email, input.Phone,
			lines.String(), formatPrice(input.TotalPrice),
		),
	}

	s.dispatch(ctx, "pickup_order", email)
}

// dispatch delivers the email on a detached context so the caller's request
// lifecycle never blocks on, or is failed by, the email provider.
func (s *NotificationService) dispatch(ctx context.Context, kind string, email *domain.Email) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)

	go func() {
		defer cancel()

		if err := s.sender.Send(sendCtx, email); err != nil {
			s.logger.ErrorContext(sendCtx, "failed to send email notification",
				slog.String("kind", kind),
				slog.String("sender", s.sender.Name()),
				slog.String("error", err.Error()),
			)
			return
		}

		s.logger.InfoContext(sendCtx, "email notification dispatched",
			slog.String("kind", kind),
			slog.String("sender", s.sender.Name()),
		)
	}()
}

// formatPrice renders a price in cents as a currency string.
func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
