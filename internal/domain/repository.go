package domain

import "context"

// GenerationFilter narrows history listings. Zero values mean "no filter";
// Limit defaults are applied by the repository.
type GenerationFilter struct {
	UserID    string
	ProjectID string
	Status    GenerationStatus
	Limit     int
	Offset    int
}

// GenerationRepository defines persistence for generation records.
type GenerationRepository interface {
	Create(ctx context.Context, g *Generation) error
	UpdateOutcome(ctx context.Context, g *Generation) error
	GetByID(ctx context.Context, id string) (*Generation, error)
	List(ctx context.Context, filter GenerationFilter) ([]Generation, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	Delete(ctx context.Context, id string) error
	CountToday(ctx context.Context, userID string) (int, error)
}
