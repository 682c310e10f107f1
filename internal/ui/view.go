package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/recipes/internal/formatter"
	"github.com/desertthunder/recipes/internal/nav"
	"github.com/desertthunder/recipes/internal/pages"
	"github.com/desertthunder/recipes/internal/query"
)

const signInPrompt = "Please sign in with Google to continue"

// renderSummary draws a summarized recipe. It runs behind [Model.renderSummaryBody].
var renderSummary = func(s pages.Show) string {
	text := string(formatter.SummaryToText(s.URL, s.Summary))
	title, rest, _ := strings.Cut(text, "\n")
	host, body, _ := strings.Cut(rest, "\n")

	body = strings.Replace(body, "\nIngredients\n", "\n"+styles.heading.Render("Ingredients")+"\n", 1)
	body = strings.Replace(body, "\nMethod\n", "\n"+styles.heading.Render("Method")+"\n", 1)
	return fmt.Sprintf("%s\n%s\n%s", styles.heading.Render(title), styles.link.Render(host), body)
}

// View renders the header, navigation box, the current page and help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.nav.View())
	b.WriteString("\n\n")

	route := m.router.Current()
	var bindings []key.Binding
	switch {
	case m.signIn:
		b.WriteString(m.renderSignIn())
		bindings = []key.Binding{m.keys.signIn, m.keys.refresh, m.keys.quit}
	case route.Kind == nav.Show:
		b.WriteString(m.renderShow(route))
		bindings = []key.Binding{m.keys.back, m.keys.debug, m.keys.copyLink, m.keys.copyIngredients, m.keys.open, m.keys.quit}
	case route.Kind == nav.Add:
		b.WriteString(m.renderAdd())
		bindings = []key.Binding{m.keys.enter, m.keys.back}
	case route.Kind == nav.NotFound:
		b.WriteString(styles.warn.Render("Page not found: " + route.Path))
		bindings = []key.Binding{m.keys.back, m.keys.recent, m.keys.quit}
	default:
		b.WriteString(m.renderList(route))
		bindings = []key.Binding{m.keys.enter, m.keys.search, m.keys.recent, m.keys.favorites, m.keys.add, m.keys.refresh, m.keys.quit}
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(styles.help.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(bindings))
	return b.String()
}

func (m *Model) renderHeader() string {
	account := "signed out"
	if email := m.session.Email(); email != "" {
		account = email
	} else if m.session.Authenticated() {
		account = "signed in"
	}
	return fmt.Sprintf("%s  %s", styles.heading.Render(m.documentTitle()), styles.help.Render(account))
}

func (m *Model) renderSignIn() string {
	body := styles.warn.Render(signInPrompt)
	if m.signingIn {
		body += "\n\n" + styles.help.Render("Complete the sign-in in your browser.")
	}
	return body
}

func (m *Model) renderAdd() string {
	var b strings.Builder
	b.WriteString(styles.heading.Render("Add a recipe"))
	b.WriteString("\n\n")
	b.WriteString(m.add.View())
	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render(m.toast))
	}
	return b.String()
}

func (m *Model) renderList(route nav.Route) string {
	l, ok := pages.ListFor(route, m.listCount)
	if !ok {
		return styles.help.Render("Type / to search your recipes or paste a link.")
	}

	l = l.WithResult(m.cache.Peek(l.Key))
	switch {
	case l.Status == query.Pending:
		return styles.heading.Render(l.Heading) + "\n\n" + styles.help.Render("Loading…")
	case l.Status == query.Error:
		return styles.heading.Render(l.Heading) + "\n\n" + styles.err.Render(pages.ErrorText(l.Err))
	case l.Empty():
		return styles.heading.Render(l.Heading) + "\n\n" + styles.help.Render("Nothing here yet.")
	}
	return m.list.View()
}

func (m *Model) renderShow(route nav.Route) string {
	show := m.currentShow(route)
	if m.debug && (show.State == pages.Summarized || show.State == pages.NoSummary) {
		return show.DebugDump()
	}

	switch show.State {
	case pages.NoURL:
		return styles.warn.Render(show.Message())
	case pages.Loading:
		return styles.help.Render(show.Message()) + "\n" + styles.link.Render(show.URL)
	case pages.Failed:
		return styles.heading.Render(show.Title()) + "\n\n" + styles.err.Render(show.Message())
	case pages.NoSummary:
		return styles.heading.Render(show.Title()) + "\n\n" + styles.warn.Render(show.Message()) + "\n" + styles.link.Render(show.URL)
	default:
		return m.renderSummaryBody(show)
	}
}

// renderSummaryBody isolates summary rendering: a panic is logged and
// replaced by a notice so the header and navigation still draw.
func (m *Model) renderSummaryBody(show pages.Show) (out string) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("failed to render summary", "url", show.URL, "panic", r)
			out = styles.err.Render(pages.BoundaryText(show.URL))
		}
	}()
	return renderSummary(show)
}
