package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires every endpoint onto a chi mux
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.RateLimitMiddleware)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/routes", h.GetRoutes)
			r.Get("/leaderboard", h.GetLeaderboard)
			r.Get("/leaderboard/{routeID}", h.GetLeaderboard)
		})

		r.Get("/leaderboard/table", h.GetLeaderboardTable)
		r.Get("/leaderboard/{routeID}/table", h.GetLeaderboardTable)
	})

	return r
}
