// Package handlers provides HTTP handlers for stock lookup.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rsrinivasan18/sarasai/internal/modules/stocks"
)

// Handler handles stock HTTP requests
type Handler struct {
	service *stocks.Service
	log     zerolog.Logger
}

// NewHandler creates a new stocks handler
func NewHandler(service *stocks.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "stocks").Logger(),
	}
}

// HandleList returns all catalog stocks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.service.List()

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":  len(list),
		"stocks": list,
	})
}

// HandleGet returns quote data for a single symbol
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	quote, err := h.service.GetQuote(symbol)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}
