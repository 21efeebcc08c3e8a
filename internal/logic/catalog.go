package logic

import "github.com/mauimtb/leaderboard-api/internal/models"

// catalog is listed in display order; the first route is the default selection.
var catalog = []models.Route{
	{
		ID:    "haleakala-ridge",
		Name:  "Haleakalā Ridge Line",
		Link:  "https://www.komoot.com/tour/123456",
		Image: "https://images.unsplash.com/photo-1544966503-7cc0acf9f6c2?auto=format&fit=crop&w=1200&q=60",
	},
	{
		ID:    "upcountry-flow",
		Name:  "Upcountry Flow",
		Link:  "https://www.strava.com/routes/987654",
		Image: "https://images.unsplash.com/photo-1520975916090-3105956dac38?auto=format&fit=crop&w=1200&q=60",
	},
	{
		ID:    "pine-trails-enduro",
		Name:  "Pine Trails Enduro",
		Link:  "https://www.garmin.com/",
		Image: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?auto=format&fit=crop&w=1200&q=60",
	},
}

// Routes returns the route catalog in display order
func Routes() []models.Route {
	out := make([]models.Route, len(catalog))
	copy(out, catalog)
	return out
}

// DefaultRouteID is the route selected when the caller names none
func DefaultRouteID() string {
	return catalog[0].ID
}

// SelectRoute looks up a route preview. An unknown id reports false and the
// caller keeps whatever preview it already shows.
func SelectRoute(routeID string) (models.RoutePreview, bool) {
	for _, r := range catalog {
		if r.ID == routeID {
			return models.RoutePreview{
				ID:    r.ID,
				Name:  r.Name,
				Image: r.Image,
				Alt:   r.Name,
				Link:  r.Link,
			}, true
		}
	}
	return models.RoutePreview{}, false
}
