// Package handlers provides HTTP handlers for stock news and sentiment.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/modules/news"
)

// Handler handles news HTTP requests
type Handler struct {
	service *news.Service
	log     zerolog.Logger
}

// NewHandler creates a new news handler
func NewHandler(service *news.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "news").Logger(),
	}
}

// RegisterRoutes registers all news routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stocks/{symbol}/news", h.HandleGetNews)
}

// HandleGetNews returns recent news and aggregate sentiment for a symbol
func (h *Handler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items := h.service.GetNews(symbol, limit)
	score, label := h.service.OverallSentiment(items)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"symbol":     symbol,
		"news_count": len(items),
		"overall_sentiment": map[string]interface{}{
			"score": score,
			"label": label,
		},
		"news_items": items,
	}); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}
