// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// Every screen is derived from the current [nav.Route] and the shared [query.Cache]:
//   - Home and Recent : recently summarized bookmarks
//   - Favorites : bookmarks marked as favorites
//   - Search : results for the term typed into the navigation box
//   - Add : enter a URL to summarize
//   - Show : the summary of one URL, with a raw JSON dump behind ctrl+q
//   - Share target : redirects to the shared link
//
// Typing into the navigation box (focused with /) navigates after a short pause, so a burst
// of keystrokes issues a single search. A 401 from any read switches to the sign-in screen.
//
// Reads run as tea.Cmds through the cache, which coalesces identical requests; the view only
// ever peeks at cached results.
package ui
