// Package scene models a provider-agnostic cinematic scene: prompt text plus
// camera, lighting and generation parameters. A Scene owns its camera and
// lighting by value; once validated it is treated as immutable and variations
// are produced through Clone.
package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Scene is the complete description of one image to be generated.
type Scene struct {
	// Prompt is the required textual description, 1-2000 characters.
	Prompt string `json:"prompt"`
	// NegativePrompt lists elements to avoid.
	NegativePrompt string `json:"negative_prompt"`

	Camera   CameraSettings `json:"camera"`
	Lighting LightingSetup  `json:"lighting"`

	// Width and Height are in pixels, 256-2048 each.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Steps is the diffusion step count, 10-100.
	Steps int `json:"steps"`
	// GuidanceScale controls prompt adherence, 1.0-20.0.
	GuidanceScale float64 `json:"guidance_scale"`
	// Seed enables reproducibility; nil means the adapter picks one.
	Seed *int64 `json:"seed"`

	// Style names one of ten artistic styles (cinematic, realistic, anime, ...).
	Style        string `json:"style"`
	ColorPalette string `json:"color_palette,omitempty"`
	Mood         string `json:"mood,omitempty"`

	// DetailLevel ranges 0.1-3.0, TextureStrength 0.0-3.0, Sharpness 0.1-2.0.
	DetailLevel     float64 `json:"detail_level"`
	TextureStrength float64 `json:"texture_strength"`
	Sharpness       float64 `json:"sharpness"`

	// SceneNumber orders the scene inside a storyboard sequence.
	SceneNumber *int     `json:"scene_number,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// New returns a scene with documented defaults around the given prompt.
func New(prompt string) Scene {
	return Scene{
		Prompt:          prompt,
		Camera:          DefaultCameraSettings(),
		Lighting:        DefaultLightingSetup(),
		Width:           1024,
		Height:          576,
		Steps:           30,
		GuidanceScale:   7.5,
		Style:           "cinematic",
		DetailLevel:     1.0,
		TextureStrength: 1.0,
		Sharpness:       1.0,
	}
}

// FromMap builds a scene from a raw client mapping. Decoding is strict in the
// sense that only enumerated fields are considered; unknown keys are ignored
// deterministically and missing fields keep their defaults.
func FromMap(data map[string]any) (Scene, error) {
	s := New("")
	raw, err := json.Marshal(data)
	if err != nil {
		return Scene{}, fmt.Errorf("encode scene input: %w", err)
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return Scene{}, fmt.Errorf("decode scene input: %w", err)
	}
	return s, nil
}

// ToMap serializes the scene into a plain mapping; FromMap(s.ToMap())
// reproduces an equal scene.
func (s Scene) ToMap() map[string]any {
	raw, _ := json.Marshal(s)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return out
}

// Validate checks the scene and its camera and lighting, short-circuiting on
// the first violation. Failures inside a sub-object are prefixed with the
// sub-object name.
func (s Scene) Validate() error {
	if strings.TrimSpace(s.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty")
	}
	if utf8.RuneCountInString(s.Prompt) > 2000 {
		return fmt.Errorf("prompt must not exceed 2000 characters")
	}
	if s.Width < 256 || s.Width > 2048 {
		return fmt.Errorf("width must be between 256 and 2048")
	}
	if s.Height < 256 || s.Height > 2048 {
		return fmt.Errorf("height must be between 256 and 2048")
	}
	if s.Steps < 10 || s.Steps > 100 {
		return fmt.Errorf("steps must be between 10 and 100")
	}
	if s.GuidanceScale < 1.0 || s.GuidanceScale > 20.0 {
		return fmt.Errorf("guidance_scale must be between 1.0 and 20.0")
	}
	if s.Seed != nil && *s.Seed < 0 {
		return fmt.Errorf("seed must be a non-negative number")
	}
	if s.DetailLevel < 0.1 || s.DetailLevel > 3.0 {
		return fmt.Errorf("detail_level must be between 0.1 and 3.0")
	}
	if s.TextureStrength < 0.0 || s.TextureStrength > 3.0 {
		return fmt.Errorf("texture_strength must be between 0.0 and 3.0")
	}
	if s.Sharpness < 0.1 || s.Sharpness > 2.0 {
		return fmt.Errorf("sharpness must be between 0.1 and 2.0")
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if err := s.Lighting.Validate(); err != nil {
		return fmt.Errorf("lighting: %w", err)
	}
	return nil
}

// ProviderPayload merges prompt, generation parameters and the camera and
// lighting blocks into the normalized provider-agnostic payload. Absent
// optional fields are omitted, not set to null.
func (s Scene) ProviderPayload() map[string]any {
	payload := map[string]any{
		"prompt":           s.Prompt,
		"negative_prompt":  s.NegativePrompt,
		"width":            s.Width,
		"height":           s.Height,
		"steps":            s.Steps,
		"guidance_scale":   s.GuidanceScale,
		"style":            s.Style,
		"detail_level":     s.DetailLevel,
		"texture_strength": s.TextureStrength,
		"sharpness":        s.Sharpness,
	}
	if s.Seed != nil {
		payload["seed"] = *s.Seed
	}
	if s.ColorPalette != "" {
		payload["color_palette"] = s.ColorPalette
	}
	if s.Mood != "" {
		payload["mood"] = s.Mood
	}
	for k, v := range s.Camera.ProviderJSON() {
		payload[k] = v
	}
	for k, v := range s.Lighting.ProviderJSON() {
		payload[k] = v
	}
	if s.SceneNumber != nil {
		payload["scene_number"] = *s.SceneNumber
	}
	if len(s.Tags) > 0 {
		payload["tags"] = s.Tags
	}
	return payload
}

// Clone deep-copies the scene, including custom lights, tags and the seed, so
// variations never share state with the original.
func (s Scene) Clone() Scene {
	out := s
	if s.Seed != nil {
		seed := *s.Seed
		out.Seed = &seed
	}
	if s.SceneNumber != nil {
		n := *s.SceneNumber
		out.SceneNumber = &n
	}
	if len(s.Lighting.Lights) > 0 {
		out.Lighting.Lights = append([]LightSource(nil), s.Lighting.Lights...)
	}
	if len(s.Tags) > 0 {
		out.Tags = append([]string(nil), s.Tags...)
	}
	return out
}

// AspectRatio reduces width:height by their greatest common divisor.
func (s Scene) AspectRatio() string {
	divisor := gcd(s.Width, s.Height)
	if divisor == 0 {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", s.Width/divisor, s.Height/divisor)
}

// EstimateGenerationTime predicts the generation duration in seconds. This is
// a deterministic heuristic for UI hints, not a measurement or an SLA.
func (s Scene) EstimateGenerationTime() float64 {
	estimated := 2.0 + float64(s.Width*s.Height*s.Steps)/1_000_000
	return math.Round(estimated*10) / 10
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
