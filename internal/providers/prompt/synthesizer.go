// Package prompt derives natural-language enhancement fragments from
// categorical camera and lighting attributes. The downstream provider accepts
// a single free-text prompt and has no structured camera or lighting
// parameters, so everything the scene model knows has to be folded into text.
package prompt

import (
	"strings"

	"github.com/CeciG24/fibo-backend/internal/scene"
)

var shotTypePhrases = map[string]string{
	"extreme_close_up":  "extreme close-up shot",
	"close_up":          "close-up shot",
	"medium_shot":       "medium shot",
	"wide_shot":         "wide angle shot",
	"extreme_wide_shot": "extreme wide shot",
}

var anglePhrases = map[string]string{
	"low_angle":  "low angle view",
	"high_angle": "high angle view",
	"birds_eye":  "bird's eye view",
}

var timeOfDayPhrases = map[string]string{
	"golden_hour": "golden hour lighting",
	"blue_hour":   "blue hour twilight",
	"night":       "night time",
	"overcast":    "overcast diffused light",
}

var colorGradingPhrases = map[string]string{
	"warm":      "warm color tones",
	"cool":      "cool color tones",
	"cinematic": "cinematic color grading",
	"noir":      "film noir style",
}

// Enhance appends comma-joined fragments derived from the camera, lighting
// and style attributes to the base prompt. Fragment order is fixed:
// shot type, angle, time of day, color grading, style. Attributes without a
// lookup entry contribute nothing; when no fragment applies the base prompt
// is returned unchanged.
func Enhance(base string, camera scene.CameraSettings, lighting scene.LightingSetup, style string) string {
	var fragments []string
	if phrase, ok := shotTypePhrases[camera.ShotType]; ok {
		fragments = append(fragments, phrase)
	}
	if camera.Angle != "eye_level" {
		if phrase, ok := anglePhrases[camera.Angle]; ok {
			fragments = append(fragments, phrase)
		}
	}
	if phrase, ok := timeOfDayPhrases[lighting.TimeOfDay]; ok {
		fragments = append(fragments, phrase)
	}
	if lighting.ColorGrading != "neutral" {
		if phrase, ok := colorGradingPhrases[lighting.ColorGrading]; ok {
			fragments = append(fragments, phrase)
		}
	}
	if style != "" && style != "realistic" {
		fragments = append(fragments, style+" style")
	}
	if len(fragments) == 0 {
		return base
	}
	return base + ", " + strings.Join(fragments, ", ")
}

// EnhanceScene is the scene-level convenience wrapper around Enhance.
func EnhanceScene(s scene.Scene) string {
	return Enhance(s.Prompt, s.Camera, s.Lighting, s.Style)
}
