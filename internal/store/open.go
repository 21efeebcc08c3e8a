package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mauimtb/leaderboard-api/internal/config"
)

// Open connects the backend named in cfg and returns it wrapped with metrics.
// The cleanup func releases connections and is safe to call once.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (BlobStore, func(), error) {
	log := logger.Sugar()

	var (
		s       BlobStore
		cleanup = func() {}
	)

	switch cfg.Backend {
	case BackendMemory:
		s = NewMemory()

	case BackendFile:
		s = NewFile(cfg.Dir)

	case BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		s = NewRedis(client)
		cleanup = func() { _ = client.Close() }

	case BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		pg := NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		s = pg
		cleanup = pool.Close

	case BackendMySQL:
		dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		db, err := sql.Open("mysql", dsn.FormatDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		my := NewMySQLStore(db)
		if err := my.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		s = my
		cleanup = func() { _ = db.Close() }

	case BackendSQLite:
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s = NewSQLiteStore(db)
		cleanup = func() { _ = db.Close() }

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	log.Infow("Blob store opened", "backend", cfg.Backend, "key", cfg.Key)
	return Observe(cfg.Backend, s), cleanup, nil
}

// OpenSQLite opens a SQLite database and creates the blob table. A single
// connection is kept so ":memory:" databases survive between calls.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := NewSQLiteStore(db).Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
