package pages

import (
	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/nav"
	"github.com/desertthunder/recipes/internal/query"
	"github.com/desertthunder/recipes/internal/services"
)

// List is a listing page.
type List struct {
	Kind    nav.Kind
	Heading string
	Path    string
	Key     query.Key
	Status  query.Status
	Entries []models.BookmarkEntry
	Err     error
}

// ListFor returns the listing shown for route, or false when the route is
// not a listing. Home shows the recent list. An empty search has no listing.
func ListFor(route nav.Route, count int) (List, bool) {
	var l List
	switch route.Kind {
	case nav.Home, nav.Recent:
		l = List{Kind: nav.Recent, Heading: "Recent", Path: services.RecentsPath(count)}
	case nav.Favorites:
		l = List{Kind: nav.Favorites, Heading: "Favorites", Path: services.FavoritesPath(count)}
	case nav.Search:
		if route.Term == "" {
			return List{}, false
		}
		l = List{Kind: nav.Search, Heading: "Search: " + route.Term, Path: services.SearchPath(route.Term)}
	default:
		return List{}, false
	}

	l.Key = query.ListKey(l.Path)
	return l, true
}

// WithResult fills the list from a cached result.
func (l List) WithResult(res query.Result) List {
	l.Status = res.Status
	l.Err = res.Err
	l.Entries = nil
	if entries, ok := res.Data.([]models.BookmarkEntry); ok {
		l.Entries = entries
	}
	return l
}

// Empty reports a loaded list without entries.
func (l List) Empty() bool {
	return l.Status == query.Success && len(l.Entries) == 0
}

// Target is where selecting an entry leads.
type Target struct {
	// Internal targets are app locations; others are external URLs.
	Internal bool
	Location string
}

// ClickTarget opens summarized entries in the app and everything else in
// the browser.
func ClickTarget(e models.BookmarkEntry) Target {
	if e.Summarized() {
		return Target{Internal: true, Location: nav.ShowPath(e.URL, "")}
	}
	return Target{Location: e.URL}
}
