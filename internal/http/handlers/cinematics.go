package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CeciG24/fibo-backend/internal/cinematics"
)

type translateRequest struct {
	CameraState   cinematics.CameraState `json:"camera_state"`
	LightPosition *cinematics.Vec3       `json:"light_position"`
}

// CinematicsTranslate handles POST /api/cinematics/translate. It maps a raw
// viewport camera pose and light placement into the categorical parameters a
// scene expects.
func (a *App) CinematicsTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	mapping := cinematics.TranslateCameraState(req.CameraState, req.LightPosition)
	out := map[string]any{
		"angle":        mapping.Angle,
		"shot_type":    mapping.ShotType,
		"lighting":     mapping.Lighting,
		"fov":          mapping.FOV,
		"focal_length": cinematics.FocalLengthFromFOV(mapping.FOV),
	}
	if req.CameraState.Position == nil && req.CameraState.Rotation != nil {
		out["angle"] = cinematics.CameraAngleFromRotation(*req.CameraState.Rotation)
	}
	a.json(w, http.StatusOK, out)
}
