package handler

import (
	"math"
	"net/http"
	"strconv"

	"globaltrade/internal/model"
	"globaltrade/internal/service"
	"globaltrade/internal/tariff"

	"github.com/rs/zerolog"
)

// TariffHandler handles tariff information and duty calculator requests.
type TariffHandler struct {
	service service.TariffService
	logger  zerolog.Logger
}

// NewTariffHandler creates a new tariff handler.
func NewTariffHandler(service service.TariffService, logger zerolog.Logger) *TariffHandler {
	return &TariffHandler{
		service: service,
		logger:  logger.With().Str("handler", "tariff").Logger(),
	}
}

// tariffCenterResponse is the payload behind the tariff information view.
type tariffCenterResponse struct {
	Tariffs              []model.Tariff `json:"tariffs"`
	OriginCountries      []string       `json:"originCountries"`
	DestinationCountries []string       `json:"destinationCountries"`
}

// dutyEstimateResponse is the duty calculator payload. Amounts are rounded
// to two decimal places for presentation; EffectiveRate is null when the
// product value is not positive.
type dutyEstimateResponse struct {
	ProductValue     float64  `json:"productValue"`
	TariffAmount     float64  `json:"tariffAmount"`
	AdditionalAmount float64  `json:"additionalAmount"`
	TotalDuties      float64  `json:"totalDuties"`
	TotalCost        float64  `json:"totalCost"`
	EffectiveRate    *float64 `json:"effectiveRate"`
	Currency         string   `json:"currency"`
}

// List handles GET /api/tariffs requests for the tariff information view.
func (h *TariffHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil {
			limit = v
		}
	}

	tariffs, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	origins, destinations, err := h.service.Countries(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if tariffs == nil {
		tariffs = []model.Tariff{}
	}
	if origins == nil {
		origins = []string{}
	}
	if destinations == nil {
		destinations = []string{}
	}

	writeJSON(w, http.StatusOK, tariffCenterResponse{
		Tariffs:              tariffs,
		OriginCountries:      origins,
		DestinationCountries: destinations,
	})
}

// Calculate handles POST /api/tariffs/calculate requests. The calculator is
// total over its inputs, so the endpoint never fails on odd values.
func (h *TariffHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var in tariff.DutyInput
	if err := decodeJSON(r, &in); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	result := h.service.Calculate(in)

	resp := dutyEstimateResponse{
		ProductValue:     round2(result.ProductValue),
		TariffAmount:     round2(result.TariffAmount),
		AdditionalAmount: round2(result.AdditionalAmount),
		TotalDuties:      round2(result.TotalDuties),
		TotalCost:        round2(result.TotalCost),
		Currency:         result.Currency,
	}
	if !math.IsNaN(result.EffectiveRate) {
		rate := round2(result.EffectiveRate)
		resp.EffectiveRate = &rate
	}

	writeJSON(w, http.StatusOK, resp)
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
