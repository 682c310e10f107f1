// Package server runs the short-lived local HTTP server used to sign in.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// [BasicRouter] uses [http.ServeMux] method patterns.
//
// # Google sign-in
//
// [OAuthHandler] implements the authorization code callback. It validates
// the state parameter, exchanges the code and extracts the Google ID token,
// which is the bearer token the recipes backend accepts. Only the first
// callback is processed.
//
// [LoginFlow] ties it together for the CLI and TUI: it listens on the
// redirect address, opens the consent page, waits for the callback or a
// timeout and shuts the server down again.
package server
