// Package handlers provides HTTP handlers for stock metrics.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/modules/metrics"
)

// Handler handles metrics HTTP requests
type Handler struct {
	service *metrics.Service
	log     zerolog.Logger
}

// NewHandler creates a new metrics handler
func NewHandler(service *metrics.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "metrics").Logger(),
	}
}

// RegisterRoutes registers all metrics routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stocks/{symbol}/metrics", h.HandleGetMetrics)
}

// HandleGetMetrics returns technical and fundamental metrics for a symbol
func (h *Handler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	m := h.service.GetMetrics(symbol)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
