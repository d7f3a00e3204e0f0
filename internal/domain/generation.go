package domain

import "time"

// GenerationStatus enumerates the lifecycle states of a generation record.
type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusGenerating GenerationStatus = "generating"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// Generation is the persisted record of a single scene submission, from
// request through provider outcome.
type Generation struct {
	ID                   string
	UserID               string
	ProjectID            string
	Prompt               string
	NegativePrompt       string
	ImageURL             string
	ParametersJSON       []byte
	Seed                 *int64
	GenerationTime       *float64
	ProviderGenerationID string
	Status               GenerationStatus
	ErrorMessage         string
	SceneNumber          *int
	IsFavorite           bool
	CreatedAt            time.Time
	CompletedAt          *time.Time
}

// Terminal reports whether the record has reached a final state.
func (g *Generation) Terminal() bool {
	return g.Status == GenerationStatusCompleted || g.Status == GenerationStatusFailed
}
