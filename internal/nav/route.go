package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind names a page of the client.
type Kind int

const (
	Home Kind = iota
	Recent
	Favorites
	Search
	Add
	Show
	ShareTarget
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Home:
		return "home"
	case Recent:
		return "recent"
	case Favorites:
		return "favorites"
	case Search:
		return "search"
	case Add:
		return "add"
	case Show:
		return "show"
	case ShareTarget:
		return "share-target"
	default:
		return "not-found"
	}
}

const (
	HomePath      = "/"
	RecentPath    = "/recent"
	FavoritesPath = "/favorites"
	AddPath       = "/add"

	searchPrefix = "/search"
	showPrefix   = "/show/"
	sharePrefix  = "/share-target"
)

// Route is a parsed location.
type Route struct {
	Kind Kind

	// URL is the decoded target of a Show route.
	URL string
	// TitleHint is the optional decoded title of a Show route.
	TitleHint string
	// Term is the decoded query of a Search route.
	Term string
	// Share holds the raw query values of a ShareTarget route.
	Share url.Values

	// Path is the location the route was parsed from.
	Path string
}

// ShowPath builds /show/<url>, adding ?titleHint= when hint is set.
func ShowPath(target, hint string) string {
	p := showPrefix + EncodeComponent(target)
	if hint != "" {
		p += "?titleHint=" + EncodeComponent(hint)
	}
	return p
}

// SearchPath builds /search?q=<term>.
func SearchPath(term string) string {
	return searchPrefix + "?q=" + EncodeComponent(term)
}

// SharePath builds a /share-target location from share values.
func SharePath(values url.Values) string {
	if len(values) == 0 {
		return sharePrefix
	}
	return sharePrefix + "?" + values.Encode()
}

// Resolve maps free text typed into the navigation box to a location: the
// home page for empty text, the summary page for a URL and a search
// otherwise.
func Resolve(text string) string {
	switch {
	case text == "":
		return HomePath
	case IsURL(text):
		return ShowPath(text, "")
	default:
		return SearchPath(text)
	}
}

// ResolveShare maps the values of an incoming share to a location. The
// shared text is shown as is, with "title" as the title hint. Shares
// without text resolve to the home page.
func ResolveShare(values url.Values) string {
	text := values.Get("text")
	if text == "" {
		return HomePath
	}
	return ShowPath(text, values.Get("title"))
}

// Parse decodes a location produced by this package.
func Parse(location string) (Route, error) {
	if location == "" {
		location = HomePath
	}
	p, rawQuery, _ := strings.Cut(location, "?")
	r := Route{Path: location}

	switch {
	case p == HomePath:
		r.Kind = Home
	case p == RecentPath:
		r.Kind = Recent
	case p == FavoritesPath:
		r.Kind = Favorites
	case p == AddPath:
		r.Kind = Add
	case p == searchPrefix:
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return Route{}, fmt.Errorf("invalid search location %q: %w", location, err)
		}
		r.Kind = Search
		r.Term = q.Get("q")
	case p == sharePrefix:
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return Route{}, fmt.Errorf("invalid share location %q: %w", location, err)
		}
		r.Kind = ShareTarget
		r.Share = q
	case strings.HasPrefix(p, showPrefix):
		target, err := DecodeComponent(strings.TrimPrefix(p, showPrefix))
		if err != nil {
			return Route{}, fmt.Errorf("invalid show location %q: %w", location, err)
		}
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return Route{}, fmt.Errorf("invalid show location %q: %w", location, err)
		}
		r.Kind = Show
		r.URL = target
		r.TitleHint = q.Get("titleHint")
	default:
		r.Kind = NotFound
	}
	return r, nil
}
