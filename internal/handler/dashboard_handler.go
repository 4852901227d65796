package handler

import (
	"net/http"

	"globaltrade/internal/auth"
	"globaltrade/internal/service"

	"github.com/rs/zerolog"
)

// DashboardHandler handles the per-role dashboard views.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Buyer handles GET /api/dashboard requests for buyer accounts.
func (h *DashboardHandler) Buyer(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	dashboard, err := h.service.Buyer(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Seller handles GET /api/dashboard/seller requests for seller accounts.
func (h *DashboardHandler) Seller(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	dashboard, err := h.service.Seller(r.Context(), session)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}
