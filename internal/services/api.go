package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/net/publicsuffix"
)

const defaultBaseURL = "http://localhost:9000"

// Authenticator supplies the bearer token and is told when the backend rejects it.
type Authenticator interface {
	Token() string
	Reset(reason string) error
}

// StatusError is returned for non-2xx responses other than 401.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: status %d", shared.ErrAPIRequest, e.StatusCode)
	}
	return fmt.Sprintf("%v: status %d: %s", shared.ErrAPIRequest, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return shared.ErrAPIRequest }

// APIService performs requests against the recipes backend.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	auth       Authenticator
	logger     *log.Logger
}

// APIOpts configures an [APIService].
type APIOpts struct {
	BaseURL string
	Client  *http.Client
	Auth    Authenticator
	Logger  *log.Logger
}

// NewHTTPClient builds the client used for backend calls. Its cookie jar
// scopes cookies by public suffix so a proxy session cookie set on the
// backend's domain is replayed.
func NewHTTPClient(timeout time.Duration) *http.Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return &http.Client{Timeout: timeout}
	}
	return &http.Client{Timeout: timeout, Jar: jar}
}

// NewAPIService creates a new API service instance for the recipes backend.
func NewAPIService(opts APIOpts) *APIService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &APIService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.Client,
		auth:       opts.Auth,
		logger:     opts.Logger,
	}
}

// BaseURL returns the backend root requests are sent to.
func (a *APIService) BaseURL() string { return a.baseURL }

// SetLogger replaces the request logger. Not safe to call while requests are in flight.
func (a *APIService) SetLogger(l *log.Logger) { a.logger = l }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns a [*StatusError] for non-2xx responses.
func (r *APIResponse) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{StatusCode: r.StatusCode, Body: strings.TrimSpace(string(r.Body))}
}

// Get performs a GET request to path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, data)
}

// Do sends one request. Only transport failures and 401 are returned as
// errors; callers inspect other statuses with [APIResponse.Err].
func (a *APIService) Do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.auth != nil {
		if token := a.auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrNetwork, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	a.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       raw,
	}

	var jsonData any
	if err := json.Unmarshal(raw, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	if resp.StatusCode == http.StatusUnauthorized {
		a.logger.Warn("backend rejected credentials", "path", path)
		if a.auth != nil {
			if err := a.auth.Reset("unauthorized"); err != nil {
				a.logger.Error("failed to reset session", "error", err)
			}
		}
		return apiResp, shared.ErrUnauthorized
	}

	return apiResp, nil
}

// GetJSON performs a GET and decodes a 2xx JSON body into out.
func (a *APIService) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := a.Get(ctx, path)
	if err != nil {
		return err
	}
	return decodeInto(resp, out)
}

func decodeInto(resp *APIResponse, out any) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	return nil
}

// IsUnauthorized reports whether err came from a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, shared.ErrUnauthorized)
}
