package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mauimtb/leaderboard-api/internal/config"
	"github.com/mauimtb/leaderboard-api/internal/logic"
	"github.com/mauimtb/leaderboard-api/internal/store"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "leaderboard",
		Usage: "ride-time leaderboard for the MMBA demo routes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to an optional YAML config file; env vars override it",
				EnvVars: []string{"LEADERBOARD_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			routesCommand(),
			showCommand(),
			seedCommand(),
			dumpCommand(),
		},
	}
}

// runtime bundles what every command needs after config is loaded
type runtime struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       store.BlobStore
	leaderboard *logic.Leaderboard
	closeStore  func()
}

func (rt *runtime) Close() {
	rt.closeStore()
	_ = rt.logger.Sync()
}

func setup(ctx context.Context, c *cli.Context) (*runtime, error) {
	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s, closeStore, err := store.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	lb := logic.NewLeaderboard(logic.LeaderboardConfig{
		Store:  s,
		Key:    cfg.Storage.Key,
		Logger: logger,
	})

	return &runtime{
		cfg:         cfg,
		logger:      logger,
		store:       s,
		leaderboard: lb,
		closeStore:  closeStore,
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
