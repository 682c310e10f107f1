package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleConfig builds the OAuth client requesting an ID token with the
// user's email.
func GoogleConfig(conf shared.AuthConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		RedirectURL:  conf.RedirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email"},
	}
}

// LoginFlow runs one interactive sign-in.
type LoginFlow struct {
	Config *oauth2.Config
	// Addr overrides the listen address derived from Config.RedirectURL.
	// When Config.RedirectURL is empty it is set from the listener.
	Addr string
	Open func(url string) error
	// Prompt receives the consent URL before the browser is opened so it can
	// be shown when no browser is available.
	Prompt  func(url string)
	Timeout time.Duration
	Logger  *log.Logger
}

// Run starts the callback server, opens the consent page and returns the ID
// token once the callback arrives.
func (f *LoginFlow) Run(ctx context.Context) (string, error) {
	if f.Config == nil || f.Config.ClientID == "" {
		return "", fmt.Errorf("%w: google client_id is not configured", shared.ErrMissingCredentials)
	}
	logger := f.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	open := f.Open
	if open == nil {
		open = shared.OpenBrowser
	}

	addr, err := f.listenAddr()
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	config := *f.Config
	if config.RedirectURL == "" {
		config.RedirectURL = "http://" + ln.Addr().String() + "/callback"
	}

	state := shared.GenerateID()
	handler := NewOAuthHandler(&config, state)
	router := NewBasicRouter()
	router.Use(Logging(logger))
	router.Handler(handler)

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting sign-in callback server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("error shutting down server", "error", err)
		}
	}()

	authURL := config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	if f.Prompt != nil {
		f.Prompt(authURL)
	}
	if err := open(authURL); err != nil {
		logger.Warn("failed to open browser automatically", "error", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return "", err
		}
		return result.IDToken, nil
	case err := <-serverErrors:
		return "", fmt.Errorf("server error: %w", err)
	case <-timer.C:
		return "", fmt.Errorf("%w: sign-in timed out after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *LoginFlow) listenAddr() (string, error) {
	if f.Addr != "" {
		return f.Addr, nil
	}
	u, err := url.Parse(f.Config.RedirectURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: redirect_uri %q", shared.ErrInvalidConfig, f.Config.RedirectURL)
	}
	return u.Host, nil
}
