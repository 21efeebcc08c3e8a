package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mauimtb/leaderboard-api/internal/models"
)

// tableTemplate renders the rows exactly as the site's leaderboard <tbody>
// expects them.
var tableTemplate = template.Must(template.New("tbody").Parse(
	`<tbody id="lb-tbody">` +
		`{{range .}}{{if .IsPlaceholder}}` +
		`<tr><td colspan="4" style="text-align: center;">{{.Message}}</td></tr>` +
		`{{else}}` +
		`<tr><td>{{.Rank}}</td><td>{{.Rider}}</td><td>{{.Time}}</td><td>{{.Date}}</td></tr>` +
		`{{end}}{{end}}` +
		`</tbody>`))

// GetRoutes returns the route catalog for the selector
// @Summary List Routes
// @Tags Leaderboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Routes"
// @Router /routes [get]
func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"routes":  h.leaderboard.Routes(),
		"default": h.leaderboard.DefaultRouteID(),
	})
}

// GetLeaderboard returns the route preview and ranked rows for one route
// @Summary Route Leaderboard
// @Description Fastest times first. Unknown routes return a null route and the placeholder row.
// @Tags Leaderboard
// @Produce json
// @Param routeID path string false "Route id" default(haleakala-ridge)
// @Success 200 {object} models.LeaderboardView "Leaderboard view"
// @Router /leaderboard/{routeID} [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	view := h.view(r)
	if view.Route == nil {
		h.logger.Debugw("Leaderboard requested for unknown route", "route_id", view.RouteID)
	}
	h.jsonResponse(w, http.StatusOK, view)
}

// GetLeaderboardTable returns the table body as an HTML fragment
// @Summary Route Leaderboard Table
// @Tags Leaderboard
// @Produce html
// @Param routeID path string false "Route id"
// @Success 200 {string} string "HTML tbody fragment"
// @Failure 500 {object} map[string]string "Internal Error"
// @Router /leaderboard/{routeID}/table [get]
func (h *Handler) GetLeaderboardTable(w http.ResponseWriter, r *http.Request) {
	view := h.view(r)

	var buf bytes.Buffer
	if err := renderTableHTML(&buf, view.Rows); err != nil {
		h.logger.Errorw("Failed to render leaderboard table", "route_id", view.RouteID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Render failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) view(r *http.Request) models.LeaderboardView {
	routeID := chi.URLParam(r, "routeID")
	if routeID == "" {
		routeID = r.URL.Query().Get("route")
	}
	return h.leaderboard.View(r.Context(), routeID)
}

func renderTableHTML(buf *bytes.Buffer, rows []models.TableRow) error {
	return tableTemplate.Execute(buf, rows)
}
