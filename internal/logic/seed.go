package logic

import "github.com/mauimtb/leaderboard-api/internal/models"

type demoRide struct {
	routeID string
	rider   string
	time    string
	date    string
}

var demoRides = []demoRide{
	{"haleakala-ridge", "Kaleo M.", "00:42:30", "2025-06-10"},
	{"haleakala-ridge", "Jared G.", "00:44:12", "2025-06-18"},
	{"haleakala-ridge", "Malia K.", "00:47:05", "2025-06-22"},
	{"upcountry-flow", "Noa L.", "00:36:48", "2025-05-27"},
	{"upcountry-flow", "Keoni P.", "00:39:10", "2025-06-02"},
	{"upcountry-flow", "Siena R.", "00:41:22", "2025-06-03"},
	{"pine-trails-enduro", "Tane H.", "01:12:09", "2025-06-05"},
	{"pine-trails-enduro", "Luca F.", "01:10:33", "2025-06-13"},
	{"pine-trails-enduro", "Ava W.", "01:15:41", "2025-06-21"},
}

// DemoState builds the demo entry set, drawing a fresh id for each entry.
func DemoState(newID func() string) models.LeaderboardState {
	entries := make([]models.Entry, 0, len(demoRides))
	for _, d := range demoRides {
		entries = append(entries, models.Entry{
			ID:          newID(),
			RouteID:     d.routeID,
			Rider:       d.rider,
			TimeSeconds: ParseDuration(d.time),
			Date:        d.date,
		})
	}
	return models.LeaderboardState{Entries: entries}
}
