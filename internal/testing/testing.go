// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"slices"
	"sync"

	"github.com/desertthunder/recipes/internal/models"
)

// MockRecipeClient is a test double for services.RecipeClient. Responses are
// looked up by URL or list path; every call is recorded.
type MockRecipeClient struct {
	mu sync.Mutex

	Summaries map[string]*models.SummaryResult
	Lists     map[string][]models.BookmarkEntry
	// Errs fails calls for the given URL or list path.
	Errs map[string]error
	// Err fails every call when set.
	Err error

	summarizeCalls []string
	titleHints     []string
	listCalls      []string
	hitCalls       []string
}

// NewMockRecipeClient creates an empty [MockRecipeClient].
func NewMockRecipeClient() *MockRecipeClient {
	return &MockRecipeClient{
		Summaries: map[string]*models.SummaryResult{},
		Lists:     map[string][]models.BookmarkEntry{},
		Errs:      map[string]error{},
	}
}

func (m *MockRecipeClient) failure(key string) error {
	if m.Err != nil {
		return m.Err
	}
	return m.Errs[key]
}

func (m *MockRecipeClient) Summarize(_ context.Context, url, titleHint string) (*models.SummaryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.summarizeCalls = append(m.summarizeCalls, url)
	m.titleHints = append(m.titleHints, titleHint)
	if err := m.failure(url); err != nil {
		return nil, err
	}
	if res, ok := m.Summaries[url]; ok {
		return res, nil
	}
	return &models.SummaryResult{}, nil
}

func (m *MockRecipeClient) List(_ context.Context, path string) ([]models.BookmarkEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listCalls = append(m.listCalls, path)
	if err := m.failure(path); err != nil {
		return nil, err
	}
	return slices.Clone(m.Lists[path]), nil
}

func (m *MockRecipeClient) Hit(_ context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hitCalls = append(m.hitCalls, url)
	return m.failure(url)
}

// SummarizeCalls returns the URLs passed to Summarize, in order.
func (m *MockRecipeClient) SummarizeCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.summarizeCalls)
}

// TitleHints returns the title hints passed to Summarize, in order.
func (m *MockRecipeClient) TitleHints() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.titleHints)
}

// ListCalls returns the paths passed to List, in order.
func (m *MockRecipeClient) ListCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.listCalls)
}

// HitCalls returns the URLs passed to Hit, in order.
func (m *MockRecipeClient) HitCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.hitCalls)
}

// Summary builds a [models.SummaryResult] for a valid recipe.
func Summary(title string, ingredients, method []string) *models.SummaryResult {
	s := &models.Summary{Title: title, Ingredients: ingredients, Method: method}
	return &models.SummaryResult{Summary: s, Raw: []byte(`{"title":"` + title + `"}`)}
}

// StaticAuth is an Authenticator test double holding a fixed token.
type StaticAuth struct {
	mu      sync.Mutex
	token   string
	resets  []string
	failErr error
}

// NewStaticAuth creates a [StaticAuth] holding token.
func NewStaticAuth(token string) *StaticAuth {
	return &StaticAuth{token: token}
}

func (a *StaticAuth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *StaticAuth) Reset(reason string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.resets = append(a.resets, reason)
	return a.failErr
}

// Resets returns the reasons Reset was called with.
func (a *StaticAuth) Resets() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.resets)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
