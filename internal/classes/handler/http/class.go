package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rindi230/angelsfitnesgym/internal/classes/service"
	"github.com/rindi230/angelsfitnesgym/pkg/httputil"
)

// ClassHandler handles HTTP requests for the class catalog.
type ClassHandler struct {
	service *service.ClassService
	logger  *slog.Logger
}

// NewClassHandler creates a new class HTTP handler.
func NewClassHandler(svc *service.ClassService, logger *slog.Logger) *ClassHandler {
	return &ClassHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the class endpoints on the given router.
func (h *ClassHandler) Routes(r chi.Router) {
	r.Get("/", h.ListClasses)
	r.Get("/{classID}", h.GetClass)
}

// ListClasses handles GET /api/v1/classes
func (h *ClassHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: classes})
}

// GetClass handles GET /api/v1/classes/{classID}
func (h *ClassHandler) GetClass(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "classID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "invalid class id: " + raw},
		})
		return
	}

	class, err := h.service.GetClass(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: class})
}
