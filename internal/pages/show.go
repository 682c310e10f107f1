package pages

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/nav"
	"github.com/desertthunder/recipes/internal/query"
)

// AppName prefixes every document title.
const AppName = "Recipes"

// ShowState is the state of the summary page.
type ShowState int

const (
	NoURL ShowState = iota
	Loading
	Failed
	NoSummary
	Summarized
)

func (s ShowState) String() string {
	switch s {
	case NoURL:
		return "no-url"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case NoSummary:
		return "no-summary"
	case Summarized:
		return "summarized"
	default:
		return fmt.Sprintf("ShowState(%d)", int(s))
	}
}

// Show is the summary page for one URL.
type Show struct {
	URL       string
	TitleHint string
	State     ShowState
	Summary   *models.Summary
	Raw       json.RawMessage
	Err       error
}

// ShowKey is the cache key a Show route reads.
func ShowKey(route nav.Route) query.Key {
	return query.RecipeKey(route.URL)
}

// NewShow derives the page from route and the cached result for [ShowKey].
func NewShow(route nav.Route, res query.Result) Show {
	s := Show{URL: route.URL, TitleHint: route.TitleHint}

	switch {
	case route.URL == "":
		s.State = NoURL
	case res.Status == query.Pending:
		s.State = Loading
	case res.Status == query.Error:
		s.State = Failed
		s.Err = res.Err
	default:
		s.State = NoSummary
		if sr, ok := res.Data.(*models.SummaryResult); ok && sr != nil {
			s.Raw = sr.Raw
			if sr.Summary.Valid() {
				s.Summary = sr.Summary
				s.State = Summarized
			}
		}
	}
	return s
}

// Title is the heading shown while the page has no summary of its own.
func (s Show) Title() string {
	switch {
	case s.Summary != nil && s.Summary.Title != "":
		return s.Summary.Title
	case s.TitleHint != "":
		return s.TitleHint
	default:
		return s.URL
	}
}

// DocumentTitle is the window title for the page.
func (s Show) DocumentTitle() string {
	if s.State == Summarized && s.Summary.Title != "" {
		return AppName + ": " + s.Summary.Title
	}
	return AppName
}

// Message is the status line for states without a summary body.
func (s Show) Message() string {
	switch s.State {
	case NoURL:
		return "Oops, no recipe here!"
	case Loading:
		return "Summarizing " + nav.Hostname(s.URL) + "…"
	case Failed:
		return ErrorText(s.Err)
	case NoSummary:
		return "No summary available for this page."
	default:
		return ""
	}
}

// ErrorText formats a failed read for display.
func ErrorText(err error) string {
	if err == nil {
		return "An error occurred"
	}
	return "An error occurred: " + err.Error()
}

// BoundaryText is shown when rendering a summary fails.
func BoundaryText(url string) string {
	return fmt.Sprintf("We weren't able to summarize %s.", url)
}

// DebugDump formats the raw response for the debug view.
func (s Show) DebugDump() string {
	if len(s.Raw) == 0 {
		return "(empty response)"
	}

	var v any
	if err := json.Unmarshal(s.Raw, &v); err != nil {
		return string(s.Raw)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(s.Raw)
	}
	return string(out)
}
