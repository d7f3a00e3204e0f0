package scene

// Scene presets pair a camera and lighting rig with matching generation
// parameters. Field values are fixed data carried over from the art
// direction catalog, not computed.

// PresetCinematicWide is an epic 2.35:1 establishing shot at golden hour.
func PresetCinematicWide(prompt string) Scene {
	s := New(prompt)
	s.Camera = CameraCinematic()
	s.Lighting = LightingGoldenHour()
	s.Width = 1920
	s.Height = 816 // 2.35:1 cinemascope
	s.Style = "cinematic"
	s.Mood = "epic"
	return s
}

// PresetPortrait is a vertical soft-light portrait.
func PresetPortrait(prompt string) Scene {
	s := New(prompt)
	s.Camera = CameraPortrait()
	s.Lighting = LightingSoftPortrait()
	s.Width = 768
	s.Height = 1024
	s.Style = "realistic"
	s.Mood = "intimate"
	return s
}

// PresetLandscape is a natural-light scenery shot.
func PresetLandscape(prompt string) Scene {
	s := New(prompt)
	s.Camera = CameraLandscape()
	s.Lighting = LightingNaturalDaylight()
	s.Width = 1920
	s.Height = 1080
	s.Style = "realistic"
	s.Mood = "peaceful"
	return s
}

// PresetNoir is a low-key monochrome film-noir scene.
func PresetNoir(prompt string) Scene {
	s := New(prompt)
	camera := DefaultCameraSettings()
	camera.Angle = "low_angle"
	camera.ShotType = "medium_shot"
	camera.FocalLength = 35.0
	camera.CompositionRule = "diagonal"
	s.Camera = camera
	s.Lighting = LightingDramaticNoir()
	s.Style = "cinematic"
	s.Mood = "mysterious"
	s.ColorPalette = "monochrome"
	return s
}

// PresetCyberpunk is a neon-soaked night exterior.
func PresetCyberpunk(prompt string) Scene {
	s := New(prompt)
	camera := DefaultCameraSettings()
	camera.Angle = "low_angle"
	camera.ShotType = "wide_shot"
	camera.FocalLength = 24.0
	camera.Vignette = 0.3
	s.Camera = camera
	s.Lighting = LightingCyberpunk()
	s.Style = "cinematic"
	s.Mood = "tense"
	s.ColorPalette = "neon"
	return s
}
