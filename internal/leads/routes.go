package leads

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra POST /leads.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Post("/leads", handler.Send)
}
