package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Ping(ctx context.Context) error
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS leaderboard_blobs (
		storage_key TEXT PRIMARY KEY,
		payload     JSONB NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Postgres keeps blobs in a JSONB column keyed by storage key.
type Postgres struct {
	pg PgPool
}

func NewPostgres(pg PgPool) *Postgres {
	return &Postgres{pg: pg}
}

// Migrate creates the blob table if it does not exist
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pg.Exec(ctx, postgresSchema)
	return err
}

func (s *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.pg.QueryRow(ctx,
		"SELECT payload FROM leaderboard_blobs WHERE storage_key = $1",
		key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO leaderboard_blobs (storage_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, key, value)
	return err
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.pg.Ping(ctx)
}
