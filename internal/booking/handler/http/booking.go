package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rindi230/angelsfitnesgym/internal/booking/service"
	"github.com/rindi230/angelsfitnesgym/internal/contact"
	"github.com/rindi230/angelsfitnesgym/pkg/httputil"
	"github.com/rindi230/angelsfitnesgym/pkg/validator"
)

// BookingHandler handles HTTP requests for class bookings.
type BookingHandler struct {
	service *service.BookingService
	logger  *slog.Logger
}

// NewBookingHandler creates a new booking HTTP handler.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the booking endpoints on the given router.
func (h *BookingHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateBooking)
	r.Get("/counts", h.BookingCounts)
	r.Get("/states", h.ClassBookingStates)
}

// CreateBookingRequest is the JSON request body for booking a class spot.
type CreateBookingRequest struct {
	ClassID     int    `json:"class_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	BookingTime string `json:"booking_time" validate:"required"`
}

// CreateBooking handles POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &service.CreateBookingInput{
		ClassID:     req.ClassID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
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

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: booking})
}

// BookingCounts handles GET /api/v1/bookings/counts
func (h *BookingHandler) BookingCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.BookingCounts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: counts})
}

// ClassBookingStates handles GET /api/v1/bookings/states
func (h *BookingHandler) ClassBookingStates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.ClassBookingStates()})
}
