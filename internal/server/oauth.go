package server

import (
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthResult is the outcome of one authorization callback.
type OAuthResult struct {
	Token   *oauth2.Token
	IDToken string
	err     error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler handles the authorization code callback on /callback.
type OAuthHandler struct {
	config      *oauth2.Config
	state       string
	resultChan  chan OAuthResult
	once        sync.Once
	mu          sync.Mutex
	callbackHit bool
}

// NewOAuthHandler creates a handler expecting state on the callback.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:     config,
		state:      state,
		resultChan: make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET /callback"}
}

var resultPage = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Recipes</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #faf7f2; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: {{if .OK}}#c2571a{{else}}#b3261e{{end}}; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Heading}}</h1>
        <p>{{.Detail}}</p>
    </div>
</body>
</html>
`))

type pageData struct {
	OK      bool
	Heading string
	Detail  string
}

func writePage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	resultPage.Execute(w, data)
}

// ServeHTTP validates the state, exchanges the code and reports the ID token.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	q := r.URL.Query()
	if q.Get("state") != h.state {
		h.Send(OAuthResult{err: shared.ErrStateMismatch})
		writePage(w, http.StatusBadRequest, pageData{Heading: "Sign-in failed", Detail: "Invalid state parameter."})
		return
	}

	code := q.Get("code")
	if code == "" {
		err := fmt.Errorf("%w: %s %s", shared.ErrAuthFailed, q.Get("error"), q.Get("error_description"))
		h.Send(OAuthResult{err: err})
		writePage(w, http.StatusBadRequest, pageData{Heading: "Sign-in failed", Detail: "Google did not authorize the request."})
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.Send(OAuthResult{err: fmt.Errorf("%w: token exchange failed: %v", shared.ErrAuthFailed, err)})
		writePage(w, http.StatusBadGateway, pageData{Heading: "Sign-in failed", Detail: "Token exchange failed."})
		return
	}

	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		h.Send(OAuthResult{Token: token, err: fmt.Errorf("%w: no id_token in response", shared.ErrAuthFailed)})
		writePage(w, http.StatusBadGateway, pageData{Heading: "Sign-in failed", Detail: "No ID token was issued."})
		return
	}

	h.Send(OAuthResult{Token: token, IDToken: idToken})
	writePage(w, http.StatusOK, pageData{OK: true, Heading: "Signed in", Detail: "You can close this window and return to the terminal."})
}

// Send delivers result once; later calls are ignored.
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result receives exactly one result and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}
