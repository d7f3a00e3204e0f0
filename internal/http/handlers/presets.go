package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DirectorPreset captures partial scene settings in the style of a known
// director. Camera and lighting are partial maps so clients can merge them
// over their own scene before submitting.
type DirectorPreset struct {
	Name     string         `json:"name"`
	Camera   map[string]any `json:"camera,omitempty"`
	Lighting map[string]any `json:"lighting,omitempty"`
	Style    string         `json:"style,omitempty"`
}

var titleCaser = cases.Title(language.English)

// nameSuffixes holds the display-name qualifiers that plain title-casing of
// the preset key cannot produce.
var nameSuffixes = map[string]string{
	"roger_deakins": " (Cinematographer)",
}

var directorPresets = map[string]DirectorPreset{
	"wes_anderson": {
		Camera: map[string]any{
			"angle":            "eye_level",
			"shot_type":        "medium_shot",
			"composition_rule": "center",
		},
		Lighting: map[string]any{
			"preset":        "high_key",
			"color_grading": "warm",
		},
		Style: "cinematic",
	},
	"christopher_nolan": {
		Camera: map[string]any{
			"angle":     "low_angle",
			"shot_type": "wide_shot",
			"fov":       35.0,
		},
		Lighting: map[string]any{
			"preset":        "dramatic",
			"color_grading": "cool",
		},
		Style: "realistic",
	},
	"roger_deakins": {
		Camera: map[string]any{
			"shot_type":      "full_shot",
			"depth_of_field": "shallow",
		},
		Lighting: map[string]any{
			"preset":        "natural",
			"time_of_day":   "golden_hour",
			"color_grading": "cinematic",
		},
	},
}

func presetDisplayName(key string) string {
	name := titleCaser.String(strings.ReplaceAll(key, "_", " "))
	return name + nameSuffixes[key]
}

// PresetsList handles GET /presets/list.
func (a *App) PresetsList(w http.ResponseWriter, r *http.Request) {
	keys := make([]string, 0, len(directorPresets))
	for key := range directorPresets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make(map[string]DirectorPreset, len(directorPresets))
	for _, key := range keys {
		p := directorPresets[key]
		p.Name = presetDisplayName(key)
		out[key] = p
	}
	a.json(w, http.StatusOK, out)
}

// PresetsGet handles GET /presets/{name}.
func (a *App) PresetsGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "name")
	p, ok := directorPresets[key]
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "preset not found")
		return
	}
	p.Name = presetDisplayName(key)
	a.json(w, http.StatusOK, p)
}
