package ui

import (
	"github.com/desertthunder/recipes/internal/query"
)

// fetchedMsg carries the result of a cache read.
type fetchedMsg struct {
	key    query.Key
	result query.Result
}

// debouncedMsg fires once typing in the navigation box pauses. Only the
// message matching the latest edit generation navigates.
type debouncedMsg struct {
	gen   int
	value string
}

// loginMsg carries the ID token from an interactive sign-in.
type loginMsg struct {
	token string
	err   error
}

// statusMsg reports the outcome of a side effect such as copying or opening a link.
type statusMsg struct {
	text string
	err  error
}
