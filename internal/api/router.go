package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the ingress router. The recoverer sits in front of the
// extractors so no detection fault can take down the host's delivery hook.
func NewRouter(h *SaveHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Post("/hooks/save-complete", h.SaveComplete)

	return r
}
