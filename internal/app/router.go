package app

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/avc-dev/link-resolver/internal/handler"
	"github.com/avc-dev/link-resolver/internal/middleware"
)

// newRouter создает и настраивает роутер приложения
func newRouter(h *handler.Handler, auth *middleware.AuthMiddleware, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", h.Health)

	// Административные маршруты, токен выдает внешний сервис
	r.Route("/api/links", func(r chi.Router) {
		r.Use(auth.RequireAdmin)

		r.Post("/", h.CreateLink)
		r.Get("/", h.ListLinks)
		r.Patch("/{id}/deactivate", h.DeactivateLink)
		r.Delete("/{id}", h.DeleteLink)
	})

	r.Get("/{code}", h.GetURL)

	return r
}
