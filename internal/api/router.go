package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jslate/trophy-share/internal/api/handlers"
	"github.com/jslate/trophy-share/internal/api/middleware"
	"github.com/jslate/trophy-share/internal/config"
	"github.com/jslate/trophy-share/internal/service"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(services.Session)
	trophyHandler := handlers.NewTrophyHandler(services.Trophy)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)

			r.Route("/{sessionCode}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Post("/present", sessionHandler.StartPresentation)
				r.Post("/close", sessionHandler.Close)

				r.Route("/trophies", func(r chi.Router) {
					r.Post("/", trophyHandler.Submit)
					r.Get("/", trophyHandler.List)
					r.Get("/{trophyID}", trophyHandler.Get)
				})
			})
		})
	})

	return r
}
