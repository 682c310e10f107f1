package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/formatter"
	"github.com/desertthunder/recipes/internal/nav"
	"github.com/desertthunder/recipes/internal/pages"
	"github.com/desertthunder/recipes/internal/query"
	"github.com/desertthunder/recipes/internal/services"
	"github.com/desertthunder/recipes/internal/session"
	"github.com/desertthunder/recipes/internal/shared"
	"github.com/desertthunder/recipes/internal/tasks"
)

const (
	defaultDebounce  = 500 * time.Millisecond
	defaultListCount = 10
)

// Options are the dependencies of a [Model].
type Options struct {
	Client  services.RecipeClient
	Cache   *query.Cache
	Session *session.Session
	Hits    *tasks.HitNotifier // When nil, hits are sent directly through Client
	Logger  *log.Logger

	Start     string        // Initial location (default: /)
	ListCount int           // Entries per listing (default: 10)
	Debounce  time.Duration // Pause before typed text navigates (default: 500ms)

	Login func(ctx context.Context) (string, error) // Interactive sign-in returning an ID token
	Open  func(url string) error                    // Defaults to shared.OpenBrowser
	Copy  func(text string) error                   // Defaults to the system clipboard
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	client    services.RecipeClient
	cache     *query.Cache
	router    *nav.Router
	session   *session.Session
	hits      *tasks.HitNotifier
	logger    *log.Logger
	listCount int
	debounce  time.Duration
	login     func(ctx context.Context) (string, error)
	open      func(url string) error
	copy      func(text string) error

	nav       textinput.Model
	add       textinput.Model
	list      list.Model
	listID    string
	listStamp time.Time
	help      help.Model
	keys      keyMap

	gen       int
	debug     bool
	signIn    bool
	signingIn bool
	toast     string
	status    string
	title     string
	width     int
	height    int
}

// NewModel creates a new TUI model positioned at opts.Start.
func NewModel(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:       ctx,
		client:    opts.Client,
		cache:     opts.Cache,
		router:    nav.NewRouter(opts.Start),
		session:   opts.Session,
		hits:      opts.Hits,
		logger:    opts.Logger,
		listCount: opts.ListCount,
		debounce:  opts.Debounce,
		login:     opts.Login,
		open:      opts.Open,
		copy:      opts.Copy,
		help:      help.New(),
		keys:      newKeyMap(),
		width:     80,
		height:    24,
	}

	if m.cache == nil {
		m.cache = query.New(query.Options{})
	}
	if m.session == nil {
		m.session = session.New(nil)
	}
	if m.logger == nil {
		m.logger = shared.NewLogger(io.Discard)
	}
	if m.listCount <= 0 {
		m.listCount = defaultListCount
	}
	if m.debounce <= 0 {
		m.debounce = defaultDebounce
	}
	if m.open == nil {
		m.open = shared.OpenBrowser
	}
	if m.copy == nil {
		m.copy = clipboard.WriteAll
	}

	m.nav = newInput("search or paste a link")
	m.add = newInput("https://")
	m.list = list.New(nil, list.NewDefaultDelegate(), m.width-4, m.height-10)
	m.list.SetFilteringEnabled(false)
	m.list.SetShowHelp(false)

	m.router.Subscribe(func(r nav.Route) {
		m.debug = false
		m.logger.Debug("navigate", "path", r.Path, "kind", r.Kind)
	})
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 2048
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Router exposes the navigation history.
func (m *Model) Router() *nav.Router {
	return m.router
}

// Init resolves the starting route and starts its read.
func (m *Model) Init() tea.Cmd {
	return m.enter(m.router.Current(), false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-10)
		m.nav.Width = msg.Width - 6
		m.add.Width = msg.Width - 6
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debouncedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.navigate(nav.Resolve(msg.value), true)

	case fetchedMsg:
		if msg.result.Status == query.Error {
			if errors.Is(msg.result.Err, shared.ErrUnauthorized) {
				m.requireSignIn()
				return m, m.windowTitle()
			}
			m.logger.Warn("read failed", "key", msg.key.String(), "error", msg.result.Err)
		}
		m.syncList()
		return m, m.windowTitle()

	case loginMsg:
		m.signingIn = false
		if msg.err != nil {
			m.status = pages.ErrorText(msg.err)
			return m, nil
		}
		if _, err := m.session.Login(m.ctx, msg.token); err != nil {
			m.status = pages.ErrorText(err)
			return m, nil
		}
		m.signIn = false
		m.status = "Signed in as " + m.session.Email()
		m.cache.Invalidate(query.NewKey())
		return m, tea.Batch(m.refresh(), m.windowTitle())

	case statusMsg:
		if msg.err != nil {
			m.status = pages.ErrorText(msg.err)
		} else {
			m.status = msg.text
		}
		return m, nil
	}

	if m.nav.Focused() {
		var cmd tea.Cmd
		m.nav, cmd = m.nav.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.nav.Focused() {
		return m.handleNavKeys(msg)
	}

	route := m.router.Current()
	if m.signIn {
		return m.handleSignInKeys(msg)
	}
	if route.Kind == nav.Add {
		return m.handleAddKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		return m, m.nav.Focus()
	case key.Matches(msg, m.keys.back):
		if r, ok := m.router.Back(); ok {
			return m, m.enter(r, false)
		}
		return m, nil
	case key.Matches(msg, m.keys.recent):
		return m, m.navigate(nav.RecentPath, false)
	case key.Matches(msg, m.keys.favorites):
		return m, m.navigate(nav.FavoritesPath, false)
	case key.Matches(msg, m.keys.add):
		return m, m.navigate(nav.AddPath, false)
	case key.Matches(msg, m.keys.refresh):
		m.invalidateCurrent()
		m.status = ""
		return m, m.refresh()
	}

	if route.Kind == nav.Show {
		return m.handleShowKeys(msg, route)
	}
	return m.handleListKeys(msg)
}

func (m *Model) handleNavKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.nav.Blur()
		return m, nil
	case tea.KeyEnter:
		m.gen++
		m.nav.Blur()
		return m, m.navigate(nav.Resolve(strings.TrimSpace(m.nav.Value())), true)
	}

	before := m.nav.Value()
	var cmd tea.Cmd
	m.nav, cmd = m.nav.Update(msg)
	if value := m.nav.Value(); value != before {
		m.gen++
		gen := m.gen
		value = strings.TrimSpace(value)
		cmd = tea.Batch(cmd, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debouncedMsg{gen: gen, value: value}
		}))
	}
	return m, cmd
}

func (m *Model) handleSignInKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.signIn):
		return m, m.startLogin()
	case key.Matches(msg, m.keys.refresh):
		m.signIn = false
		m.status = ""
		m.cache.Invalidate(query.NewKey())
		return m, m.refresh()
	}
	return m, nil
}

func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.add.Blur()
		if r, ok := m.router.Back(); ok {
			return m, m.enter(r, false)
		}
		return m, m.navigate(nav.HomePath, false)
	case tea.KeyEnter:
		target := strings.TrimSpace(m.add.Value())
		if !nav.IsURL(target) {
			m.toast = "Invalid URL"
			m.logger.Debug("rejected url", "error", fmt.Errorf("%w: %q", shared.ErrInvalidURL, target))
			return m, nil
		}
		m.add.Blur()
		return m, m.navigate(nav.ShowPath(target, ""), false)
	}

	m.toast = ""
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m *Model) handleShowKeys(msg tea.KeyMsg, route nav.Route) (tea.Model, tea.Cmd) {
	show := m.currentShow(route)

	switch {
	case key.Matches(msg, m.keys.debug):
		m.debug = !m.debug
		return m, nil
	case key.Matches(msg, m.keys.copyLink) && show.URL != "":
		return m, m.copyText(show.URL, "Copied link")
	case key.Matches(msg, m.keys.copyIngredients) && show.State == pages.Summarized:
		text := formatter.IngredientsToText(show.Summary)
		return m, m.copyText(text, fmt.Sprintf("Copied %d ingredients", len(show.Summary.Ingredients)))
	case key.Matches(msg, m.keys.open) && show.URL != "":
		return m, m.openExternal(show.URL)
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.enter) {
		item, ok := m.list.SelectedItem().(entryItem)
		if !ok {
			return m, nil
		}
		return m, m.click(item.entry.URL, pages.ClickTarget(item.entry))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// click follows the selection policy and records the hit without waiting on it.
func (m *Model) click(url string, target pages.Target) tea.Cmd {
	hit := m.sendHit(url)
	if target.Internal {
		return tea.Batch(hit, m.navigate(target.Location, false))
	}
	return tea.Batch(hit, m.openExternal(target.Location))
}

func (m *Model) sendHit(url string) tea.Cmd {
	if m.hits != nil {
		if !m.hits.Notify(url) {
			m.logger.Debug("hit dropped", "url", url)
		}
		return nil
	}
	if m.client == nil {
		return nil
	}
	return func() tea.Msg {
		if err := m.client.Hit(m.ctx, url); err != nil {
			m.logger.Warn("failed to record click", "url", url, "error", err)
		}
		return nil
	}
}

func (m *Model) openExternal(url string) tea.Cmd {
	return func() tea.Msg {
		if err := m.open(url); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Opened " + nav.Hostname(url)}
	}
}

func (m *Model) copyText(text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copy(text); err != nil {
			return statusMsg{err: fmt.Errorf("failed to copy: %w", err)}
		}
		return statusMsg{text: done}
	}
}

func (m *Model) startLogin() tea.Cmd {
	if m.signingIn {
		return nil
	}
	if m.login == nil {
		m.status = "Run `recipes auth login`, then press r."
		return nil
	}
	m.signingIn = true
	m.status = "Waiting for Google sign-in in your browser…"
	return func() tea.Msg {
		token, err := m.login(m.ctx)
		return loginMsg{token: token, err: err}
	}
}

// requireSignIn switches to the sign-in screen and drops every cached read
// so they are repeated with the new credential.
func (m *Model) requireSignIn() {
	if !m.signIn {
		m.logger.Info("sign-in required")
	}
	m.signIn = true
	m.nav.Blur()
	m.cache.Invalidate(query.NewKey())
}

// navigate moves to location. Consecutive searches typed into the navigation
// box replace each other so back skips the intermediate terms.
func (m *Model) navigate(location string, fromInput bool) tea.Cmd {
	cur := m.router.Current()
	if location == cur.Path {
		return m.refresh()
	}

	next, err := nav.Parse(location)
	if err != nil {
		m.status = pages.ErrorText(err)
		return nil
	}

	var route nav.Route
	if fromInput && cur.Kind == nav.Search && next.Kind == nav.Search {
		route, err = m.router.Replace(location)
	} else {
		route, err = m.router.Push(location)
	}
	if err != nil {
		m.status = pages.ErrorText(err)
		return nil
	}
	return m.enter(route, fromInput)
}

// enter prepares the screen for route after a location change.
func (m *Model) enter(route nav.Route, fromInput bool) tea.Cmd {
	if route.Kind == nav.ShareTarget {
		r, err := m.router.Replace(nav.ResolveShare(route.Share))
		if err != nil {
			m.status = pages.ErrorText(err)
			return nil
		}
		route = r
	}

	if !fromInput {
		switch route.Kind {
		case nav.Search:
			m.nav.SetValue(route.Term)
		case nav.Show:
			m.nav.SetValue(route.URL)
		default:
			m.nav.SetValue("")
		}
	}

	m.toast = ""
	m.status = ""
	var focus tea.Cmd
	if route.Kind == nav.Add {
		m.add.SetValue("")
		focus = m.add.Focus()
	}

	m.syncList()
	return tea.Batch(focus, m.refresh(), m.windowTitle())
}

// refresh starts the read for the current route when the cache has no
// usable entry and none is in flight.
func (m *Model) refresh() tea.Cmd {
	if m.client == nil {
		return nil
	}

	route := m.router.Current()
	if route.Kind == nav.Show {
		if route.URL == "" {
			return nil
		}
		key := pages.ShowKey(route)
		if !m.cache.NeedsFetch(key) {
			return nil
		}
		return m.fetch(key, func(ctx context.Context) (any, error) {
			res, err := m.client.Summarize(ctx, route.URL, route.TitleHint)
			if err != nil {
				return nil, err
			}
			return res, nil
		})
	}

	l, ok := pages.ListFor(route, m.listCount)
	if !ok || !m.cache.NeedsFetch(l.Key) {
		return nil
	}
	return m.fetch(l.Key, func(ctx context.Context) (any, error) {
		entries, err := m.client.List(ctx, l.Path)
		if err != nil {
			return nil, err
		}
		return entries, nil
	})
}

func (m *Model) fetch(key query.Key, load query.Loader) tea.Cmd {
	return func() tea.Msg {
		return fetchedMsg{key: key, result: m.cache.Fetch(m.ctx, key, load)}
	}
}

func (m *Model) invalidateCurrent() {
	route := m.router.Current()
	if route.Kind == nav.Show {
		m.cache.Invalidate(pages.ShowKey(route))
		return
	}
	if l, ok := pages.ListFor(route, m.listCount); ok {
		m.cache.Invalidate(l.Key)
	}
}

// syncList refills the list widget when the current listing changed.
func (m *Model) syncList() {
	l, ok := pages.ListFor(m.router.Current(), m.listCount)
	if !ok {
		return
	}

	res := m.cache.Peek(l.Key)
	id := l.Key.String()
	if id == m.listID && res.UpdatedAt.Equal(m.listStamp) {
		return
	}
	m.listID, m.listStamp = id, res.UpdatedAt

	l = l.WithResult(res)
	m.list.Title = l.Heading
	m.list.SetItems(entryItems(l.Entries))
	m.list.Select(0)
}

func (m *Model) currentShow(route nav.Route) pages.Show {
	return pages.NewShow(route, m.cache.Peek(pages.ShowKey(route)))
}

func (m *Model) documentTitle() string {
	route := m.router.Current()
	if m.signIn || route.Kind != nav.Show {
		return pages.AppName
	}
	return m.currentShow(route).DocumentTitle()
}

func (m *Model) windowTitle() tea.Cmd {
	t := m.documentTitle()
	if t == m.title {
		return nil
	}
	m.title = t
	return tea.SetWindowTitle(t)
}
