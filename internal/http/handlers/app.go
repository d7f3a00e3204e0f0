package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CeciG24/fibo-backend/internal/domain"
	"github.com/CeciG24/fibo-backend/internal/generation"
	"github.com/CeciG24/fibo-backend/internal/infra"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Service *generation.Service
	Repo    domain.GenerationRepository
	Logger  infra.Logger
}

func NewApp(service *generation.Service, repo domain.GenerationRepository, logger infra.Logger) *App {
	return &App{Service: service, Repo: repo, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]string{"error": kind, "message": message})
}
