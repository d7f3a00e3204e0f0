package cinematics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraAngle(t *testing.T) {
	origin := Vec3{}
	assert.Equal(t, "birds_eye", CameraAngle(Vec3{Y: 5}, origin))
	assert.Equal(t, "high_angle", CameraAngle(Vec3{Y: 1.5}, origin))
	assert.Equal(t, "low_angle", CameraAngle(Vec3{Y: -2}, origin))
	assert.Equal(t, "eye_level", CameraAngle(Vec3{}, origin))
}

func TestCameraAngleBoundaries(t *testing.T) {
	origin := Vec3{}
	// Exactly on a threshold stays in the lower band.
	assert.Equal(t, "high_angle", CameraAngle(Vec3{Y: 3.0}, origin))
	assert.Equal(t, "eye_level", CameraAngle(Vec3{Y: 1.0}, origin))
	assert.Equal(t, "eye_level", CameraAngle(Vec3{Y: -1.0}, origin))
}

func TestCameraAngleFromRotation(t *testing.T) {
	assert.Equal(t, "high_angle", CameraAngleFromRotation(Vec3{X: 30 * math.Pi / 180}))
	assert.Equal(t, "low_angle", CameraAngleFromRotation(Vec3{X: -30 * math.Pi / 180}))
	assert.Equal(t, "eye_level", CameraAngleFromRotation(Vec3{X: 10 * math.Pi / 180}))
	assert.Equal(t, "eye_level", CameraAngleFromRotation(Vec3{}))
}

func TestShotSize(t *testing.T) {
	origin := Vec3{}
	assert.Equal(t, "close_up", ShotSize(Vec3{Z: 3}, origin))
	assert.Equal(t, "medium_shot", ShotSize(Vec3{Z: 6}, origin))
	assert.Equal(t, "long_shot", ShotSize(Vec3{Z: 10}, origin))
}

func TestShotSizeUsesEuclideanDistance(t *testing.T) {
	// |(3,4,0)| = 5 -> medium band even though each component is below 4.
	assert.Equal(t, "medium_shot", ShotSize(Vec3{X: 3, Y: 4}, Vec3{}))
}

func TestShotSizeFromOrigin(t *testing.T) {
	assert.Equal(t, "close_up", ShotSizeFromOrigin(Vec3{Z: 2}))
	assert.Equal(t, "medium_shot", ShotSizeFromOrigin(Vec3{Z: 4}))
	assert.Equal(t, "wide_shot", ShotSizeFromOrigin(Vec3{Z: 9}))
}

func TestLightingQuality(t *testing.T) {
	// atan2(3, sqrt(9)) = 45 degrees.
	assert.Equal(t, "studio_lighting", LightingQuality(Vec3{Y: 3, Z: 3}))
	assert.Equal(t, "flat_lighting", LightingQuality(Vec3{Y: 0.5, Z: 5}))
	assert.Equal(t, "dramatic_lighting", LightingQuality(Vec3{Y: 10, Z: 1}))
	assert.Equal(t, "neutral", LightingQuality(Vec3{Y: 3, Z: 5}))
}

func TestFocalLengthFromFOV(t *testing.T) {
	assert.InDelta(t, 60.0, FocalLengthFromFOV(50), 0.001)
	assert.InDelta(t, 30.0, FocalLengthFromFOV(100), 0.001)
	// Clamp protects against degenerate fields of view.
	assert.InDelta(t, 3000.0, FocalLengthFromFOV(0), 0.001)
	assert.InDelta(t, 3000.0, FocalLengthFromFOV(-10), 0.001)
}

func TestTranslateCameraStateDefaults(t *testing.T) {
	m := TranslateCameraState(CameraState{}, nil)
	assert.Equal(t, "high_angle", m.Angle) // default camera sits at y=2
	assert.Equal(t, "medium_shot", m.ShotType)
	assert.Equal(t, "studio_lighting", m.Lighting)
	assert.Equal(t, 50.0, m.FOV)
}

func TestTranslateCameraStateExplicit(t *testing.T) {
	pos := Vec3{Y: 5}
	light := Vec3{Y: 10, Z: 1}
	m := TranslateCameraState(CameraState{Position: &pos, FOV: 35}, &light)
	assert.Equal(t, "birds_eye", m.Angle)
	assert.Equal(t, "medium_shot", m.ShotType)
	assert.Equal(t, "dramatic_lighting", m.Lighting)
	assert.Equal(t, 35.0, m.FOV)
}
