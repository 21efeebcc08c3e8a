package handlers

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mauimtb/leaderboard-api/internal/logic"
)

// Pinger is satisfied by every blob store backend
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Leaderboard logic.LeaderboardService
	Store       Pinger
	Logger      *zap.Logger

	// CORS
	AllowedOrigins []string

	// Rate limiting; zero per-second disables the limiter
	RateLimitPerSecond int
	RateLimitBurst     int
}

type Handler struct {
	leaderboard    logic.LeaderboardService
	store          Pinger
	logger         *zap.SugaredLogger
	limiter        *rate.Limiter
	allowedOrigins []string
}

func New(cfg Config) *Handler {
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		leaderboard:    cfg.Leaderboard,
		store:          cfg.Store,
		logger:         logger.Sugar(),
		limiter:        rate.NewLimiter(limit, burst),
		allowedOrigins: cfg.AllowedOrigins,
	}
}
