package scene

import (
	"fmt"
)

// CameraSettings simulates professional camera controls for image generation.
// Zero values are not useful defaults; construct with DefaultCameraSettings or
// a preset and override fields as needed.
type CameraSettings struct {
	// Angle is the vertical camera angle: eye_level, high_angle, low_angle,
	// birds_eye, dutch_angle, worms_eye.
	Angle string `json:"angle"`
	// ShotType frames the subject, from extreme_close_up to extreme_wide_shot.
	ShotType string `json:"shot_type"`
	// Movement is an optional camera move for sequences (pan_left, dolly_in, ...).
	Movement string `json:"movement,omitempty"`
	// FOV is the field of view in degrees, 10-150.
	FOV float64 `json:"fov"`
	// FocalLength is the 35mm-equivalent focal length, 10-500mm.
	FocalLength float64 `json:"focal_length"`
	// Aperture is the f-stop, f/0.95-f/32.
	Aperture   float64 `json:"aperture"`
	SensorSize string  `json:"sensor_size"`

	CompositionRule string `json:"composition_rule"`
	DepthOfField    string `json:"depth_of_field"`
	FocusPoint      string `json:"focus_point"`

	// LensDistortion ranges -1.0 (barrel) to 1.0 (pincushion).
	LensDistortion float64 `json:"lens_distortion"`
	// Vignette darkens edges, 0.0-1.0.
	Vignette            float64 `json:"vignette"`
	ChromaticAberration bool    `json:"chromatic_aberration"`

	AspectRatio string `json:"aspect_ratio"`
}

// DefaultCameraSettings returns the neutral configuration every scene starts
// from.
func DefaultCameraSettings() CameraSettings {
	return CameraSettings{
		Angle:           "eye_level",
		ShotType:        "medium_shot",
		FOV:             50.0,
		FocalLength:     50.0,
		Aperture:        2.8,
		SensorSize:      "full_frame",
		CompositionRule: "rule_of_thirds",
		DepthOfField:    "medium",
		FocusPoint:      "center",
		AspectRatio:     "16:9",
	}
}

// Validate checks numeric fields against their documented bounds and reports
// the first violation only.
func (c CameraSettings) Validate() error {
	if c.FOV < 10 || c.FOV > 150 {
		return fmt.Errorf("fov must be between 10 and 150 degrees")
	}
	if c.FocalLength < 10 || c.FocalLength > 500 {
		return fmt.Errorf("focal_length must be between 10mm and 500mm")
	}
	if c.Aperture < 0.95 || c.Aperture > 32 {
		return fmt.Errorf("aperture must be between f/0.95 and f/32")
	}
	if c.LensDistortion < -1.0 || c.LensDistortion > 1.0 {
		return fmt.Errorf("lens_distortion must be between -1.0 and 1.0")
	}
	if c.Vignette < 0.0 || c.Vignette > 1.0 {
		return fmt.Errorf("vignette must be between 0.0 and 1.0")
	}
	return nil
}

// ProviderJSON renders the camera block of the provider payload. The external
// API groups fields into camera/composition/optical_effects/format sections.
func (c CameraSettings) ProviderJSON() map[string]any {
	camera := map[string]any{
		"angle":        c.Angle,
		"shot_type":    c.ShotType,
		"fov":          c.FOV,
		"focal_length": c.FocalLength,
		"aperture":     c.Aperture,
		"sensor_size":  c.SensorSize,
	}
	if c.Movement != "" {
		camera["movement"] = c.Movement
	}
	return map[string]any{
		"camera": camera,
		"composition": map[string]any{
			"rule":           c.CompositionRule,
			"depth_of_field": c.DepthOfField,
			"focus_point":    c.FocusPoint,
		},
		"optical_effects": map[string]any{
			"lens_distortion":      c.LensDistortion,
			"vignette":             c.Vignette,
			"chromatic_aberration": c.ChromaticAberration,
		},
		"format": map[string]any{
			"aspect_ratio": c.AspectRatio,
		},
	}
}

// CameraPortrait is tuned for head-and-shoulders portraits.
func CameraPortrait() CameraSettings {
	c := DefaultCameraSettings()
	c.Angle = "eye_level"
	c.ShotType = "close_up"
	c.FocalLength = 85.0
	c.Aperture = 1.8
	c.DepthOfField = "shallow"
	c.CompositionRule = "rule_of_thirds"
	c.FocusPoint = "eyes"
	return c
}

// CameraLandscape is tuned for wide scenery.
func CameraLandscape() CameraSettings {
	c := DefaultCameraSettings()
	c.Angle = "eye_level"
	c.ShotType = "extreme_wide_shot"
	c.FocalLength = 24.0
	c.Aperture = 11.0
	c.DepthOfField = "deep"
	c.CompositionRule = "rule_of_thirds"
	return c
}

// CameraCinematic is the anamorphic feature-film look.
func CameraCinematic() CameraSettings {
	c := DefaultCameraSettings()
	c.Angle = "low_angle"
	c.ShotType = "medium_shot"
	c.FocalLength = 35.0
	c.Aperture = 2.8
	c.DepthOfField = "shallow"
	c.AspectRatio = "21:9"
	c.Vignette = 0.3
	return c
}

// CameraDocumentary is the handheld observational look.
func CameraDocumentary() CameraSettings {
	c := DefaultCameraSettings()
	c.Angle = "eye_level"
	c.ShotType = "medium_shot"
	c.FocalLength = 35.0
	c.Aperture = 4.0
	c.DepthOfField = "medium"
	c.CompositionRule = "center"
	return c
}
