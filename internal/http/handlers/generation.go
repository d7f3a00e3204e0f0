package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/CeciG24/fibo-backend/internal/domain"
	"github.com/CeciG24/fibo-backend/internal/scene"
)

const anonymousUser = "anonymous"

type generateRequest struct {
	UserID    string         `json:"user_id"`
	ProjectID string         `json:"project_id"`
	Scene     map[string]any `json:"scene"`
}

type sequenceRequest struct {
	UserID    string           `json:"user_id"`
	ProjectID string           `json:"project_id"`
	Scenes    []map[string]any `json:"scenes"`
}

// GenerationCreate handles POST /generation/single.
func (a *App) GenerationCreate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Scene == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "scene is required")
		return
	}
	sc, err := scene.FromMap(req.Scene)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	record, err := a.Service.GenerateSingle(r.Context(), userOrAnonymous(req.UserID), req.ProjectID, sc)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrQuotaExceeded):
			a.error(w, http.StatusTooManyRequests, "quota_exceeded", "daily generation quota exhausted")
		case errors.Is(err, domain.ErrInvalidScene):
			a.json(w, http.StatusBadRequest, map[string]any{
				"error":      "invalid_scene",
				"message":    err.Error(),
				"generation": generationJSON(record),
			})
		default:
			a.error(w, http.StatusInternalServerError, "internal", "failed to start generation")
		}
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"generation":     generationJSON(record),
		"estimated_time": sc.EstimateGenerationTime(),
	})
}

// GenerationSequence handles POST /generation/sequence.
func (a *App) GenerationSequence(w http.ResponseWriter, r *http.Request) {
	var req sequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Scenes) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "scenes must not be empty")
		return
	}

	scenes := make([]scene.Scene, 0, len(req.Scenes))
	for i, m := range req.Scenes {
		sc, err := scene.FromMap(m)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "scene "+strconv.Itoa(i)+": "+err.Error())
			return
		}
		scenes = append(scenes, sc)
	}

	result, err := a.Service.GenerateSequence(r.Context(), userOrAnonymous(req.UserID), req.ProjectID, scenes)
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			a.error(w, http.StatusTooManyRequests, "quota_exceeded", "daily generation quota exhausted")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to run sequence")
		return
	}

	items := make([]map[string]any, 0, len(result.Generations))
	for i := range result.Generations {
		items = append(items, generationJSON(&result.Generations[i]))
	}
	a.json(w, http.StatusOK, map[string]any{
		"total":       result.Total,
		"completed":   result.Completed,
		"failed":      result.Failed,
		"generations": items,
	})
}

// GenerationGet handles GET /generation/{id}.
func (a *App) GenerationGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := a.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	a.json(w, http.StatusOK, generationJSON(record))
}

// GenerationHistory handles GET /generation/history.
func (a *App) GenerationHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.GenerationFilter{
		UserID:    q.Get("user_id"),
		ProjectID: q.Get("project_id"),
		Status:    domain.GenerationStatus(q.Get("status")),
		Limit:     queryInt(q.Get("limit")),
		Offset:    queryInt(q.Get("offset")),
	}
	records, err := a.Repo.List(r.Context(), filter)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load history")
		return
	}
	items := make([]map[string]any, 0, len(records))
	for i := range records {
		items = append(items, generationJSON(&records[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

// GenerationFavorite handles POST /generation/{id}/favorite. It toggles the
// flag and returns the new state.
func (a *App) GenerationFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := a.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load generation")
		return
	}
	next := !record.IsFavorite
	if err := a.Repo.SetFavorite(r.Context(), id, next); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update favorite")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "is_favorite": next})
}

// GenerationDelete handles DELETE /generation/{id}.
func (a *App) GenerationDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := a.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "generation not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete generation")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

// GenerationHealth handles GET /generation/health.
func (a *App) GenerationHealth(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"provider": "fibo",
		"status":   a.Service.Health(r.Context()),
	})
}

func generationJSON(g *domain.Generation) map[string]any {
	if g == nil {
		return nil
	}
	out := map[string]any{
		"id":           g.ID,
		"user_id":      g.UserID,
		"prompt":       g.Prompt,
		"status":       string(g.Status),
		"is_favorite":  g.IsFavorite,
		"created_at":   g.CreatedAt,
		"completed_at": g.CompletedAt,
	}
	if g.ProjectID != "" {
		out["project_id"] = g.ProjectID
	}
	if g.NegativePrompt != "" {
		out["negative_prompt"] = g.NegativePrompt
	}
	if g.ImageURL != "" {
		out["image_url"] = g.ImageURL
	}
	if len(g.ParametersJSON) > 0 {
		out["parameters"] = json.RawMessage(g.ParametersJSON)
	}
	if g.Seed != nil {
		out["seed"] = *g.Seed
	}
	if g.GenerationTime != nil {
		out["generation_time"] = *g.GenerationTime
	}
	if g.ProviderGenerationID != "" {
		out["provider_generation_id"] = g.ProviderGenerationID
	}
	if g.ErrorMessage != "" {
		out["error_message"] = g.ErrorMessage
	}
	if g.SceneNumber != nil {
		out["scene_number"] = *g.SceneNumber
	}
	return out
}

func userOrAnonymous(userID string) string {
	if userID == "" {
		return anonymousUser
	}
	return userID
}

func queryInt(v string) int {
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
