package handler

import (
	"net/http"
	"strings"

	"globaltrade/internal/auth"
	"globaltrade/internal/model"
	"globaltrade/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InquiryHandler handles trade inquiry HTTP requests.
type InquiryHandler struct {
	service service.InquiryService
	logger  zerolog.Logger
}

// NewInquiryHandler creates a new inquiry handler.
func NewInquiryHandler(service service.InquiryService, logger zerolog.Logger) *InquiryHandler {
	return &InquiryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inquiry").Logger(),
	}
}

// Create handles POST /api/inquiries requests from buyers.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var req model.InquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	inquiry, err := h.service.Create(r.Context(), session, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, inquiry)
}

// List handles GET /api/inquiries requests, returning the session user's
// side of the inquiry ledger.
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	inquiries, err := h.service.ListForUser(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	writeJSON(w, http.StatusOK, inquiries)
}

// UpdateStatus handles PATCH /api/inquiries/{id}/status requests from the
// receiving seller.
func (h *InquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/inquiries/")
	idStr = strings.TrimSuffix(idStr, "/status")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusNotFound, "inquiry not found", h.logger)
		return
	}

	var req model.InquiryStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), session, id, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
