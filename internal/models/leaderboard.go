package models

// Route is a ride from the static catalog. Routes are never persisted.
type Route struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Link  string `json:"link"`
	Image string `json:"image"`
}

// Entry is one recorded ride time for one rider on one route
type Entry struct {
	ID          string `json:"id"`
	RouteID     string `json:"routeId"`
	Rider       string `json:"rider"`
	TimeSeconds int    `json:"timeSeconds"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD
}

// LeaderboardState is the whole persisted blob.
type LeaderboardState struct {
	Entries []Entry `json:"entries"`
}

// Len returns the number of stored entries.
func (s LeaderboardState) Len() int {
	return len(s.Entries)
}

// Clone returns a copy that shares no backing array with s.
func (s LeaderboardState) Clone() LeaderboardState {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	return LeaderboardState{Entries: entries}
}

// RoutePreview is the summary shown next to the table for the selected route.
type RoutePreview struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Alt   string `json:"alt"`
	Link  string `json:"link"`
}

// TableRow is one display-ready row. A placeholder row carries only Message.
type TableRow struct {
	Rank    int    `json:"rank,omitempty"`
	Rider   string `json:"rider,omitempty"`
	Time    string `json:"time,omitempty"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsPlaceholder reports whether the row stands in for an empty table.
func (r TableRow) IsPlaceholder() bool {
	return r.Message != ""
}

// LeaderboardView is what a presentation layer needs to draw one route.
type LeaderboardView struct {
	RouteID string        `json:"route_id"`
	Route   *RoutePreview `json:"route"`
	Rows    []TableRow    `json:"rows"`
}
