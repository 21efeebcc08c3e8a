package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mauimtb/leaderboard-api/internal/config"
	"github.com/mauimtb/leaderboard-api/internal/logic"
	"github.com/mauimtb/leaderboard-api/internal/store"
)

// Seeds the configured backend with the demo entries when it holds none.
// Exits non-zero if the seeded state could not be written.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	s, closeStore, err := store.Open(ctx, cfg.Storage, logger)
	if err != nil {
		sugar.Fatalw("Failed to open store", "backend", cfg.Storage.Backend, "error", err)
	}
	defer closeStore()

	lb := logic.NewLeaderboard(logic.LeaderboardConfig{
		Store:  s,
		Key:    cfg.Storage.Key,
		Logger: logger,
	})
	if err := lb.Init(ctx); err != nil {
		sugar.Fatalw("Seed failed", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key, "error", err)
	}

	sugar.Infow("Leaderboard ready",
		"backend", cfg.Storage.Backend,
		"key", cfg.Storage.Key,
		"entries", lb.State().Len(),
	)
}
