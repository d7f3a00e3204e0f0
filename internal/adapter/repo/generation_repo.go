package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CeciG24/fibo-backend/internal/domain"
)

const defaultListLimit = 50

// GenerationRepositoryPG implements domain.GenerationRepository.
type GenerationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGenerationRepository creates a new generation repository backed by PostgreSQL.
func NewGenerationRepository(pool *pgxpool.Pool) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{pool: pool}
}

// Create inserts a new generation record.
func (r *GenerationRepositoryPG) Create(ctx context.Context, g *domain.Generation) error {
	query := `
INSERT INTO generations (id, user_id, project_id, prompt, negative_prompt, parameters_json, seed, status, scene_number)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := r.pool.Exec(ctx, query,
		g.ID,
		g.UserID,
		g.ProjectID,
		g.Prompt,
		g.NegativePrompt,
		nullableBytes(g.ParametersJSON),
		g.Seed,
		g.Status,
		g.SceneNumber,
	)
	return err
}

// UpdateOutcome persists the provider outcome for a record.
func (r *GenerationRepositoryPG) UpdateOutcome(ctx context.Context, g *domain.Generation) error {
	query := `
UPDATE generations
SET status = $2,
    image_url = $3,
    provider_generation_id = $4,
    seed = COALESCE($5, seed),
    generation_time = $6,
    error_message = $7,
    completed_at = $8
WHERE id = $1;
`
	_, err := r.pool.Exec(ctx, query,
		g.ID,
		g.Status,
		g.ImageURL,
		g.ProviderGenerationID,
		g.Seed,
		g.GenerationTime,
		g.ErrorMessage,
		g.CompletedAt,
	)
	return err
}

// GetByID fetches a generation by its identifier.
func (r *GenerationRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Generation, error) {
	query := `
SELECT id, user_id, project_id, prompt, negative_prompt, image_url, parameters_json, seed,
       generation_time, provider_generation_id, status, error_message, scene_number,
       is_favorite, created_at, completed_at
FROM generations
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	g, err := scanGeneration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

// List returns records matching the filter, newest first.
func (r *GenerationRepositoryPG) List(ctx context.Context, filter domain.GenerationFilter) ([]domain.Generation, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		clauses = append(clauses, fmt.Sprintf("project_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `
SELECT id, user_id, project_id, prompt, negative_prompt, image_url, parameters_json, seed,
       generation_time, provider_generation_id, status, error_message, scene_number,
       is_favorite, created_at, completed_at
FROM generations
`
	if len(clauses) > 0 {
		query += "WHERE " + strings.Join(clauses, " AND ") + "\n"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf("ORDER BY created_at DESC\nLIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	query += ";"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// SetFavorite toggles the favorite flag on a record.
func (r *GenerationRepositoryPG) SetFavorite(ctx context.Context, id string, favorite bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE generations SET is_favorite = $2 WHERE id = $1;`, id, favorite)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record.
func (r *GenerationRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM generations WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountToday counts a user's records created since UTC midnight. Used as the
// quota precondition input.
func (r *GenerationRepositoryPG) CountToday(ctx context.Context, userID string) (int, error) {
	query := `
SELECT COUNT(*)
FROM generations
WHERE user_id = $1
  AND created_at >= date_trunc('day', NOW() AT TIME ZONE 'utc');
`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanGeneration(row pgx.Row) (*domain.Generation, error) {
	var g domain.Generation
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.ProjectID,
		&g.Prompt,
		&g.NegativePrompt,
		&g.ImageURL,
		&g.ParametersJSON,
		&g.Seed,
		&g.GenerationTime,
		&g.ProviderGenerationID,
		&g.Status,
		&g.ErrorMessage,
		&g.SceneNumber,
		&g.IsFavorite,
		&g.CreatedAt,
		&g.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

func nullableBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
