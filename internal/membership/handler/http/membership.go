package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rindi230/angelsfitnesgym/internal/contact"
	"github.com/rindi230/angelsfitnesgym/internal/membership/service"
	"github.com/rindi230/angelsfitnesgym/pkg/httputil"
	"github.com/rindi230/angelsfitnesgym/pkg/validator"
)

// MembershipHandler handles HTTP requests for membership plans and inquiries.
type MembershipHandler struct {
	service *service.MembershipService
	logger  *slog.Logger
}

// NewMembershipHandler creates a new membership HTTP handler.
func NewMembershipHandler(svc *service.MembershipService, logger *slog.Logger) *MembershipHandler {
	return &MembershipHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the membership endpoints on the given router.
func (h *MembershipHandler) Routes(r chi.Router) {
	r.Get("/plans", h.ListPlans)
	r.Post("/inquiries", h.CreateInquiry)
}

// CreateInquiryRequest is the JSON request body for a membership inquiry.
type CreateInquiryRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
}

// ListPlans handles GET /api/v1/membership/plans
func (h *MembershipHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Plans()})
}

// CreateInquiry handles POST /api/v1/membership/inquiries
func (h *MembershipHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	inquiry, err := h.service.CreateInquiry(r.Context(), &service.CreateInquiryInput{
		PlanID: req.PlanID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
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

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: inquiry})
}
