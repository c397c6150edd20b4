// Package handlers provides HTTP handlers for analyst opinions.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/modules/gurus"
)

// Handler handles guru HTTP requests
type Handler struct {
	service *gurus.Service
	log     zerolog.Logger
}

// NewHandler creates a new guru handler
func NewHandler(service *gurus.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "gurus").Logger(),
	}
}

// RegisterRoutes registers all guru routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stocks/{symbol}/gurus", h.HandleGetOpinions)
}

// HandleGetOpinions returns analyst opinions and their weighted consensus
func (h *Handler) HandleGetOpinions(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	opinions := h.service.GetOpinions(symbol, limit)
	consensus := gurus.Consensus(opinions)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"symbol": symbol,
		"consensus": map[string]interface{}{
			"action":      consensus.Action,
			"strength":    consensus.Confidence,
			"explanation": consensus.Explanation,
		},
		"recommendations": opinions,
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
