package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all stock routes.
// Routes are registered flat so sibling modules can attach their own
// /stocks/{symbol}/... endpoints without subrouter conflicts.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stocks", h.HandleList)
	r.Get("/stocks/{symbol}", h.HandleGet)
}
