package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const generationsSchema = `
CREATE TABLE IF NOT EXISTS generations (
    id                     UUID PRIMARY KEY,
    user_id                TEXT NOT NULL,
    project_id             TEXT NOT NULL DEFAULT '',
    prompt                 TEXT NOT NULL,
    negative_prompt        TEXT NOT NULL DEFAULT '',
    image_url              TEXT NOT NULL DEFAULT '',
    parameters_json        JSONB,
    seed                   BIGINT,
    generation_time        DOUBLE PRECISION,
    provider_generation_id TEXT NOT NULL DEFAULT '',
    status                 TEXT NOT NULL,
    error_message          TEXT NOT NULL DEFAULT '',
    scene_number           INT,
    is_favorite            BOOLEAN NOT NULL DEFAULT FALSE,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    completed_at           TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS generations_user_created_idx ON generations (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS generations_project_idx ON generations (project_id) WHERE project_id <> '';
`

// EnsureSchema creates the generations table if it does not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, generationsSchema)
	return err
}
