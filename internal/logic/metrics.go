package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	stateLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mmba_leaderboard_state_loads_total",
		Help: "Leaderboard state loads by outcome (ok, missing, corrupt, error)",
	}, []string{"result"})

	stateSeeds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mmba_leaderboard_seeds_total",
		Help: "Number of times the demo entry set was written to empty storage",
	})

	stateSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mmba_leaderboard_state_saves_total",
		Help: "Leaderboard state saves by outcome",
	}, []string{"result"})

	viewsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mmba_leaderboard_views_rendered_total",
		Help: "Number of per-route leaderboard views rendered",
	})
)
