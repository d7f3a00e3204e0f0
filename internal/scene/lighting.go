package scene

import (
	"fmt"
)

// LightSource is a single light in the scene rig.
type LightSource struct {
	// Type places the light in the lighting scheme: key, fill, back, rim,
	// ambient, accent.
	Type string `json:"type"`
	// Intensity ranges 0.0 (off) to 2.0 (very bright).
	Intensity float64 `json:"intensity"`
	// ColorTemp is the color temperature in Kelvin, 1000-12000.
	ColorTemp int `json:"color_temp"`
	// Position is one of ten relative placements (front, back_left, top, ...).
	Position string `json:"position"`
	// Softness ranges 0.0 (hard shadows) to 1.0 (diffuse).
	Softness float64 `json:"softness"`
	// Angle is the incidence angle in degrees, 0-90.
	Angle float64 `json:"angle"`
	// ColorTint is an optional hex or named tint.
	ColorTint string `json:"color_tint,omitempty"`
}

// DefaultLightSource returns a neutral key light.
func DefaultLightSource() LightSource {
	return LightSource{
		Type:      "key",
		Intensity: 1.0,
		ColorTemp: 5500,
		Position:  "front",
		Softness:  0.5,
		Angle:     45.0,
	}
}

// Validate checks the light against its documented bounds.
func (l LightSource) Validate() error {
	if l.Intensity < 0.0 || l.Intensity > 2.0 {
		return fmt.Errorf("intensity must be between 0.0 and 2.0")
	}
	if l.ColorTemp < 1000 || l.ColorTemp > 12000 {
		return fmt.Errorf("color_temp must be between 1000K and 12000K")
	}
	if l.Softness < 0.0 || l.Softness > 1.0 {
		return fmt.Errorf("softness must be between 0.0 and 1.0")
	}
	return nil
}

// LightingSetup is the complete lighting configuration for a scene. Custom
// lights, when present, take priority over the named preset.
type LightingSetup struct {
	// Preset names one of thirteen lighting schemes (three_point, rembrandt,
	// low_key, silhouette, ...).
	Preset string `json:"preset"`
	// TimeOfDay determines the natural light quality (dawn, golden_hour,
	// noon, night, overcast, ...).
	TimeOfDay string `json:"time_of_day"`
	// Lights overrides the preset when non-empty.
	Lights []LightSource `json:"lights,omitempty"`

	// AmbientIntensity ranges 0.0-1.0.
	AmbientIntensity float64 `json:"ambient_intensity"`
	AmbientColor     string  `json:"ambient_color"`
	AmbientColorHex  string  `json:"ambient_color_hex,omitempty"`

	// ColorGrading names one of thirteen cinematic looks.
	ColorGrading string `json:"color_grading"`

	// Contrast ranges 0.1-3.0, Exposure -3.0-3.0, Highlights/Shadows -1.0-1.0.
	Contrast   float64 `json:"contrast"`
	Exposure   float64 `json:"exposure"`
	Highlights float64 `json:"highlights"`
	Shadows    float64 `json:"shadows"`

	// Atmospherics: Fog and Haze range 0.0-1.0.
	Fog     float64 `json:"fog"`
	Haze    float64 `json:"haze"`
	GodRays bool    `json:"god_rays"`

	// ShadowIntensity ranges 0.0-2.0, ShadowSoftness 0.0-1.0.
	ShadowIntensity float64 `json:"shadow_intensity"`
	ShadowSoftness  float64 `json:"shadow_softness"`

	LensFlare bool    `json:"lens_flare"`
	Bloom     float64 `json:"bloom"`
}

// DefaultLightingSetup returns the classic three-point golden-hour rig.
func DefaultLightingSetup() LightingSetup {
	return LightingSetup{
		Preset:           "three_point",
		TimeOfDay:        "golden_hour",
		AmbientIntensity: 0.3,
		AmbientColor:     "neutral",
		ColorGrading:     "neutral",
		Contrast:         1.0,
		ShadowIntensity:  1.0,
		ShadowSoftness:   0.5,
	}
}

// Validate checks the setup and each custom light, reporting the first
// violation only.
func (s LightingSetup) Validate() error {
	if s.AmbientIntensity < 0.0 || s.AmbientIntensity > 1.0 {
		return fmt.Errorf("ambient_intensity must be between 0.0 and 1.0")
	}
	if s.Contrast < 0.1 || s.Contrast > 3.0 {
		return fmt.Errorf("contrast must be between 0.1 and 3.0")
	}
	if s.Exposure < -3.0 || s.Exposure > 3.0 {
		return fmt.Errorf("exposure must be between -3.0 and 3.0")
	}
	if s.Highlights < -1.0 || s.Highlights > 1.0 {
		return fmt.Errorf("highlights must be between -1.0 and 1.0")
	}
	if s.Shadows < -1.0 || s.Shadows > 1.0 {
		return fmt.Errorf("shadows must be between -1.0 and 1.0")
	}
	if s.Fog < 0.0 || s.Fog > 1.0 {
		return fmt.Errorf("fog must be between 0.0 and 1.0")
	}
	if s.Haze < 0.0 || s.Haze > 1.0 {
		return fmt.Errorf("haze must be between 0.0 and 1.0")
	}
	if s.ShadowIntensity < 0.0 || s.ShadowIntensity > 2.0 {
		return fmt.Errorf("shadow_intensity must be between 0.0 and 2.0")
	}
	if s.ShadowSoftness < 0.0 || s.ShadowSoftness > 1.0 {
		return fmt.Errorf("shadow_softness must be between 0.0 and 1.0")
	}
	if s.Bloom < 0.0 || s.Bloom > 1.0 {
		return fmt.Errorf("bloom must be between 0.0 and 1.0")
	}
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	return nil
}

// ProviderJSON renders the lighting block of the provider payload, grouped
// into lighting/exposure/atmosphere/shadows/effects sections plus custom
// lights when present.
func (s LightingSetup) ProviderJSON() map[string]any {
	result := map[string]any{
		"lighting": map[string]any{
			"preset":            s.Preset,
			"time_of_day":       s.TimeOfDay,
			"ambient_intensity": s.AmbientIntensity,
			"ambient_color":     s.AmbientColor,
			"color_grading":     s.ColorGrading,
		},
		"exposure": map[string]any{
			"contrast":   s.Contrast,
			"exposure":   s.Exposure,
			"highlights": s.Highlights,
			"shadows":    s.Shadows,
		},
		"atmosphere": map[string]any{
			"fog":      s.Fog,
			"haze":     s.Haze,
			"god_rays": s.GodRays,
		},
		"shadows": map[string]any{
			"intensity": s.ShadowIntensity,
			"softness":  s.ShadowSoftness,
		},
		"effects": map[string]any{
			"lens_flare": s.LensFlare,
			"bloom":      s.Bloom,
		},
	}
	if len(s.Lights) > 0 {
		lights := make([]map[string]any, 0, len(s.Lights))
		for _, light := range s.Lights {
			entry := map[string]any{
				"type":       light.Type,
				"intensity":  light.Intensity,
				"color_temp": light.ColorTemp,
				"position":   light.Position,
				"softness":   light.Softness,
				"angle":      light.Angle,
			}
			if light.ColorTint != "" {
				entry["color_tint"] = light.ColorTint
			}
			lights = append(lights, entry)
		}
		result["custom_lights"] = lights
	}
	return result
}

// LightingNaturalDaylight is the clear-morning rig.
func LightingNaturalDaylight() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "natural"
	s.TimeOfDay = "morning"
	s.AmbientIntensity = 0.7
	s.ColorGrading = "neutral"
	s.Shadows = 0.2
	s.Contrast = 0.9
	return s
}

// LightingGoldenHour is the warm magic-hour rig.
func LightingGoldenHour() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "natural"
	s.TimeOfDay = "golden_hour"
	s.AmbientIntensity = 0.6
	s.ColorGrading = "warm"
	s.Exposure = 0.3
	s.Haze = 0.3
	s.GodRays = true
	s.Bloom = 0.4
	return s
}

// LightingDramaticNoir is the hard low-key film-noir rig.
func LightingDramaticNoir() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "low_key"
	s.TimeOfDay = "night"
	s.AmbientIntensity = 0.1
	s.ColorGrading = "noir"
	s.Contrast = 1.8
	s.Shadows = -0.5
	s.ShadowIntensity = 1.5
	s.ShadowSoftness = 0.2
	return s
}

// LightingSoftPortrait is the diffuse rembrandt portrait rig.
func LightingSoftPortrait() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "rembrandt"
	s.TimeOfDay = "overcast"
	s.AmbientIntensity = 0.5
	s.ColorGrading = "warm"
	s.ShadowSoftness = 0.8
	s.Contrast = 0.8
	s.Bloom = 0.2
	return s
}

// LightingCyberpunk is the saturated neon night rig.
func LightingCyberpunk() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "dramatic"
	s.TimeOfDay = "night"
	s.AmbientIntensity = 0.2
	s.ColorGrading = "cyberpunk"
	s.Contrast = 1.4
	s.Fog = 0.3
	s.Bloom = 0.8
	s.LensFlare = true
	return s
}

// LightingBladeRunner is the hazy orange-and-blue night rig.
func LightingBladeRunner() LightingSetup {
	s := DefaultLightingSetup()
	s.Preset = "low_key"
	s.TimeOfDay = "night"
	s.AmbientIntensity = 0.15
	s.ColorGrading = "blade_runner"
	s.Contrast = 1.3
	s.Fog = 0.4
	s.Haze = 0.5
	s.GodRays = true
	s.Bloom = 0.6
	return s
}
