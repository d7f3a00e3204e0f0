package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/CeciG24/fibo-backend/internal/http/handlers"
	"github.com/CeciG24/fibo-backend/internal/infra"
	"github.com/CeciG24/fibo-backend/internal/middleware"
)

func NewRouter(app *handlers.App, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.CORS,
		middleware.Logger(logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/api/generation", func(r chi.Router) {
		r.Post("/single", app.GenerationCreate)
		r.Post("/sequence", app.GenerationSequence)
		r.Get("/health", app.GenerationHealth)
		r.Get("/history", app.GenerationHistory)
		r.Get("/{id}", app.GenerationGet)
		r.Post("/{id}/favorite", app.GenerationFavorite)
		r.Delete("/{id}", app.GenerationDelete)
	})

	r.Post("/api/cinematics/translate", app.CinematicsTranslate)

	r.Route("/api/presets", func(r chi.Router) {
		r.Get("/list", app.PresetsList)
		r.Get("/{name}", app.PresetsGet)
	})

	return r
}
