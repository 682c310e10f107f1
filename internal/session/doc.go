// Package session holds the signed-in user's bearer token.
//
// A [Session] is the single owner of authentication state for the process.
// The API client reads [Session.Token] before every request and calls
// [Session.Reset] when the backend answers 401, which clears the persisted
// credential and notifies subscribers so the UI can ask the user to sign in
// again. Tokens are Google ID tokens; their email and expiry are read from
// the unverified JWT claims for display and local expiry only. The backend
// remains the authority on validity.
package session
