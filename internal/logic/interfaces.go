package logic

import (
	"context"

	"github.com/mauimtb/leaderboard-api/internal/models"
)

// LeaderboardService is what the presentation adapters depend on
type LeaderboardService interface {
	Routes() []models.Route
	DefaultRouteID() string
	View(ctx context.Context, routeID string) models.LeaderboardView
}
