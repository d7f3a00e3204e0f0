// Package cinematics converts raw 3D camera and light placement into
// categorical cinematographic labels. All functions are pure and total: any
// input maps to a label, missing vectors fall back to documented defaults.
package cinematics

import (
	"math"
)

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Default placements used when the caller supplies no vectors.
var (
	DefaultCameraPosition = Vec3{X: 0, Y: 2, Z: 5}
	DefaultTarget         = Vec3{X: 0, Y: 0, Z: 0}
	DefaultLightPosition  = Vec3{X: 0, Y: 3, Z: 3}
)

// CameraAngle derives the vertical camera angle from the height of the camera
// relative to its target.
func CameraAngle(position, target Vec3) string {
	diff := position.Y - target.Y
	switch {
	case diff > 3.0:
		return "birds_eye"
	case diff > 1.0:
		return "high_angle"
	case diff < -1.0:
		return "low_angle"
	default:
		return "eye_level"
	}
}

// CameraAngleFromRotation derives the camera angle from the pitch component of
// a rotation vector (radians). This variant serves callers that track camera
// orientation instead of a look-at target; its thresholds are independent of
// the position-relative mapping and must stay that way.
func CameraAngleFromRotation(rotation Vec3) string {
	pitch := rotation.X * 180 / math.Pi
	switch {
	case pitch > 25:
		return "high_angle"
	case pitch < -25:
		return "low_angle"
	default:
		return "eye_level"
	}
}

// ShotSize buckets the camera-to-target distance into a shot type.
func ShotSize(position, target Vec3) string {
	dx := position.X - target.X
	dy := position.Y - target.Y
	dz := position.Z - target.Z
	dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
	switch {
	case dist < 4:
		return "close_up"
	case dist < 8:
		return "medium_shot"
	default:
		return "long_shot"
	}
}

// ShotSizeFromOrigin buckets the camera distance measured from the scene
// origin. The bands differ from ShotSize because origin-referenced rigs sit
// closer to the subject; the two policies are alternates, not duplicates.
func ShotSizeFromOrigin(position Vec3) string {
	dist := math.Sqrt(position.X*position.X + position.Y*position.Y + position.Z*position.Z)
	switch {
	case dist < 2.5:
		return "close_up"
	case dist < 6:
		return "medium_shot"
	default:
		return "wide_shot"
	}
}

// LightingQuality classifies a light by its vertical angle of incidence over
// the horizon.
func LightingQuality(light Vec3) string {
	angle := math.Atan2(light.Y, math.Sqrt(light.X*light.X+light.Z*light.Z)) * 180 / math.Pi
	switch {
	case angle >= 35 && angle <= 55:
		return "studio_lighting"
	case angle < 20:
		return "flat_lighting"
	case angle > 60:
		return "dramatic_lighting"
	default:
		return "neutral"
	}
}

// FocalLengthFromFOV approximates a 35mm-equivalent focal length from a field
// of view in degrees. The denominator is clamped at 1 degree.
func FocalLengthFromFOV(fov float64) float64 {
	if fov < 1 {
		fov = 1
	}
	return math.Round(50*(60/fov)*100) / 100
}

// CameraState is the raw camera pose a front-end viewport reports.
type CameraState struct {
	Position *Vec3   `json:"position,omitempty"`
	Rotation *Vec3   `json:"rotation,omitempty"`
	FOV      float64 `json:"fov,omitempty"`
}

// Mapping is the categorical summary of a camera/light placement.
type Mapping struct {
	Angle    string  `json:"angle"`
	ShotType string  `json:"shot_type"`
	Lighting string  `json:"lighting"`
	FOV      float64 `json:"fov"`
}

// TranslateCameraState maps a raw viewport state plus a light placement into
// categorical parameters. Missing vectors take the documented defaults.
func TranslateCameraState(state CameraState, light *Vec3) Mapping {
	position := DefaultCameraPosition
	if state.Position != nil {
		position = *state.Position
	}
	lightPos := DefaultLightPosition
	if light != nil {
		lightPos = *light
	}
	fov := state.FOV
	if fov == 0 {
		fov = 50
	}
	return Mapping{
		Angle:    CameraAngle(position, DefaultTarget),
		ShotType: ShotSize(position, DefaultTarget),
		Lighting: LightingQuality(lightPos),
		FOV:      fov,
	}
}
