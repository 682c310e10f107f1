package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/oauth2"
)

func tokenServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad token request: %v", err)
		}
		if r.PostForm.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth", TokenURL: tokenURL},
		Scopes:       []string{"openid", "email"},
	}
}

func TestBasicRouter(t *testing.T) {
	t.Run("Handle filters methods", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Body.String() != "pong" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Middleware order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mw("first"), mw("second"))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if strings.Join(order, ",") != "first,second,handler" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("Logging records status", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)
		logger.SetLevel(log.DebugLevel)

		r := NewBasicRouter()
		r.Use(Logging(logger))
		r.Handle(http.MethodGet, "/teapot", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot?code=secret", nil))

		out := buf.String()
		if !strings.Contains(out, "status=418") {
			t.Errorf("expected status in log, got %q", out)
		}
		if strings.Contains(out, "secret") {
			t.Error("query string should not be logged")
		}
	})
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Extracts ID token", func(t *testing.T) {
		ts := tokenServer(t, `{"access_token":"at","token_type":"Bearer","expires_in":3600,"id_token":"the-id-token"}`)
		h := NewOAuthHandler(testConfig(ts.URL), "xyz")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=xyz&code=good-code", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		result := <-h.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected error: %v", result.Error())
		}
		if result.IDToken != "the-id-token" || result.Token.AccessToken != "at" {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Rejects state mismatch", func(t *testing.T) {
		h := NewOAuthHandler(testConfig("http://unused"), "expected")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=other&code=c", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if result := <-h.Result(); !errors.Is(result.Error(), shared.ErrStateMismatch) {
			t.Errorf("expected ErrStateMismatch, got %v", result.Error())
		}
	})

	t.Run("Reports denied consent", func(t *testing.T) {
		h := NewOAuthHandler(testConfig("http://unused"), "s")
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=s&error=access_denied", nil))

		if result := <-h.Result(); !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Missing ID token", func(t *testing.T) {
		ts := tokenServer(t, `{"access_token":"at","token_type":"Bearer"}`)
		h := NewOAuthHandler(testConfig(ts.URL), "s")
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=s&code=good-code", nil))

		if result := <-h.Result(); !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Only first callback counts", func(t *testing.T) {
		h := NewOAuthHandler(testConfig("http://unused"), "s")
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=bad", nil))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s&code=good-code", nil))
		if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "already processed") {
			t.Errorf("second callback should be rejected, got %d %q", rec.Code, rec.Body.String())
		}
	})
}

func TestLoginFlow(t *testing.T) {
	t.Run("Completes via callback", func(t *testing.T) {
		ts := tokenServer(t, `{"access_token":"at","token_type":"Bearer","id_token":"signed-in"}`)

		flow := &LoginFlow{
			Config:  testConfig(ts.URL),
			Addr:    "127.0.0.1:0",
			Timeout: 5 * time.Second,
			Open: func(authURL string) error {
				u, err := url.Parse(authURL)
				if err != nil {
					return err
				}
				q := u.Query()
				callback := q.Get("redirect_uri") + "?state=" + url.QueryEscape(q.Get("state")) + "&code=good-code"
				go func() {
					resp, err := http.Get(callback)
					if err == nil {
						resp.Body.Close()
					}
				}()
				return nil
			},
		}

		token, err := flow.Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "signed-in" {
			t.Errorf("expected id token, got %q", token)
		}
	})

	t.Run("Prompt receives consent URL", func(t *testing.T) {
		var prompted string
		ctx, cancel := context.WithCancel(context.Background())

		flow := &LoginFlow{
			Config: testConfig("http://unused"),
			Addr:   "127.0.0.1:0",
			Prompt: func(u string) { prompted = u },
			Open: func(string) error {
				cancel()
				return errors.New("no browser")
			},
		}

		if _, err := flow.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if !strings.HasPrefix(prompted, "https://accounts.example.com/auth?") {
			t.Errorf("unexpected prompt URL %q", prompted)
		}
	})

	t.Run("Times out", func(t *testing.T) {
		flow := &LoginFlow{
			Config:  testConfig("http://unused"),
			Addr:    "127.0.0.1:0",
			Timeout: 20 * time.Millisecond,
			Open:    func(string) error { return nil },
		}

		if _, err := flow.Run(context.Background()); !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("Requires client id", func(t *testing.T) {
		flow := &LoginFlow{Config: &oauth2.Config{}}
		if _, err := flow.Run(context.Background()); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("GoogleConfig", func(t *testing.T) {
		c := GoogleConfig(shared.AuthConfig{ClientID: "id", ClientSecret: "s", RedirectURI: "http://localhost:8085/callback"})
		if c.Endpoint.TokenURL == "" || c.RedirectURL != "http://localhost:8085/callback" {
			t.Errorf("unexpected config %+v", c)
		}
		if strings.Join(c.Scopes, " ") != "openid email" {
			t.Errorf("unexpected scopes %v", c.Scopes)
		}

		flow := &LoginFlow{Config: c}
		if addr, _ := flow.listenAddr(); addr != "localhost:8085" {
			t.Errorf("expected listen address from redirect URI, got %q", addr)
		}
	})
}
