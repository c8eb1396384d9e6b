package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rindi230/angelsfitnesgym/internal/checkout/service"
	"github.com/rindi230/angelsfitnesgym/internal/contact"
	"github.com/rindi230/angelsfitnesgym/pkg/httputil"
	"github.com/rindi230/angelsfitnesgym/pkg/validator"
)

// SessionHeader carries the anonymous browsing-session identifier, shared
// with the cart endpoints.
const SessionHeader = "X-Session-ID"

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the checkout endpoints on the given router.
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Post("/session", h.CreateSession)
	r.Post("/payment-return", h.PaymentReturn)
	r.Post("/pickup-order", h.CreatePickupOrder)
}

// CreateSessionRequest is the JSON request body for starting a checkout.
type CreateSessionRequest struct {
	CustomerEmail string `json:"customer_email" validate:"required"`
}

// PaymentReturnRequest is the JSON request body for the payment redirect.
type PaymentReturnRequest struct {
	Status           string `json:"status" validate:"required,oneof=success cancelled"`
	PaymentSessionID string `json:"payment_session_id"`
}

// PickupOrderRequest is the JSON request body for a gym pickup order.
type PickupOrderRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// CreateSession handles POST /api/v1/checkout/session
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	session, err := h.service.CreateSession(r.Context(), sessionID, req.CustomerEmail)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: session})
}

// PaymentReturn handles POST /api/v1/checkout/payment-return
func (h *CheckoutHandler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req PaymentReturnRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.HandlePaymentReturn(r.Context(), sessionID, req.Status, req.PaymentSessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": req.Status}})
}

// CreatePickupOrder handles POST /api/v1/checkout/pickup-order
func (h *CheckoutHandler) CreatePickupOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req PickupOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.CreatePickupOrder(r.Context(), sessionID, &service.PickupOrderInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		var fields contact.FieldErrors
		if errors.As(err, &fields) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:    "VALIDATION_ERROR",
					Message: "contact validation failed",
					Fields:  fields,
				},
			})
			return
		}
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: SessionHeader + " header is required"},
		})
		return "", false
	}
	return id, true
}
