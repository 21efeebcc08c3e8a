package logic

import (
	"sort"

	"github.com/mauimtb/leaderboard-api/internal/models"
)

// NoTimesMessage is the text of the placeholder row for an empty route
const NoTimesMessage = "No times yet"

// EntriesForRoute returns the entries recorded on routeID, fastest first.
// Equal times keep their stored order.
func EntriesForRoute(state models.LeaderboardState, routeID string) []models.Entry {
	entries := make([]models.Entry, 0)
	for _, e := range state.Entries {
		if e.RouteID == routeID {
			entries = append(entries, e)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeSeconds < entries[j].TimeSeconds
	})
	return entries
}

// RenderTable projects ranked entries into display rows. Ranks follow input
// order starting at 1.
func RenderTable(entries []models.Entry) []models.TableRow {
	if len(entries) == 0 {
		return []models.TableRow{{Message: NoTimesMessage}}
	}

	rows := make([]models.TableRow, 0, len(entries))
	for i, e := range entries {
		date := e.Date
		if date == "" {
			date = "-"
		}
		rows = append(rows, models.TableRow{
			Rank:  i + 1,
			Rider: e.Rider,
			Time:  FormatDuration(e.TimeSeconds),
			Date:  date,
		})
	}
	return rows
}
