// Package handlers provides HTTP handlers for portfolio analysis and
// per-symbol recommendations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/portfolio/analyze", h.HandleAnalyze)
	r.Get("/portfolio/analyses/latest", h.HandleLatest)
	r.Get("/stocks/{symbol}/recommendation", h.HandleRecommendation)
}

// HandleAnalyze runs a full portfolio analysis
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req portfolio.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Holdings) == 0 {
		h.writeError(w, http.StatusBadRequest, "Portfolio must contain at least one holding")
		return
	}

	analysis, err := h.service.Analyze(req)
	if err != nil {
		h.log.Error().Err(err).Msg("Portfolio analysis failed")
		h.writeError(w, http.StatusInternalServerError, "Analysis failed")
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// HandleLatest returns the most recent persisted analysis
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.Latest()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load latest analysis")
		h.writeError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}
	if analysis == nil {
		h.writeError(w, http.StatusNotFound, "No analysis available")
		return
	}

	h.writeJSON(w, http.StatusOK, analysis)
}

// HandleRecommendation returns the composite recommendation for one symbol
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	rec, err := h.service.RecommendSymbol(symbol)
	if err != nil {
		h.log.Warn().Err(err).Str("symbol", symbol).Msg("Recommendation unavailable")
		h.writeError(w, http.StatusNotFound, "Stock not found: "+symbol)
		return
	}

	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
