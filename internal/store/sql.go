package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// dialect holds the statements that differ between SQL engines
type dialect struct {
	name   string
	schema string
	upsert string
}

var (
	mysqlDialect = dialect{
		name: BackendMySQL,
		schema: `CREATE TABLE IF NOT EXISTS leaderboard_blobs (
			storage_key VARCHAR(191) NOT NULL PRIMARY KEY,
			payload     LONGTEXT NOT NULL,
			updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		upsert: `INSERT INTO leaderboard_blobs (storage_key, payload) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE payload = VALUES(payload)`,
	}

	sqliteDialect = dialect{
		name: BackendSQLite,
		schema: `CREATE TABLE IF NOT EXISTS leaderboard_blobs (
			storage_key TEXT PRIMARY KEY,
			payload     TEXT NOT NULL,
			updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		upsert: `INSERT INTO leaderboard_blobs (storage_key, payload, updated_at) VALUES (?, ?, datetime('now'))
			ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
	}
)

// SQL stores blobs through database/sql. Used for MySQL and SQLite.
type SQL struct {
	db      *sql.DB
	dialect dialect
}

// NewMySQLStore wraps an open MySQL handle
func NewMySQLStore(db *sql.DB) *SQL {
	return &SQL{db: db, dialect: mysqlDialect}
}

// NewSQLiteStore wraps an open SQLite handle
func NewSQLiteStore(db *sql.DB) *SQL {
	return &SQL{db: db, dialect: sqliteDialect}
}

// Migrate creates the blob table if it does not exist
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("%s schema: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM leaderboard_blobs WHERE storage_key = ?",
		key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, string(value))
	return err
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
