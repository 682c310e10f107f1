// Package repositories implements SQLite persistence for the client.
//
// The only persisted entity is the signed-in [models.Credential]:
//   - [SessionRepository] : stores at most one credential and satisfies session.Store
package repositories
