package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/shared"
)

// SessionRepository persists the signed-in credential in the sessions table.
// Saving replaces any previous row, so at most one credential exists.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Load returns the most recent credential, or nil when none is stored.
func (r *SessionRepository) Load(ctx context.Context) (*models.Credential, error) {
	query := `
		SELECT id, token, email, expires_at, created_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		cred      models.Credential
		expiresAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&cred.ID, &cred.Token, &cred.Email, &expiresAt, &cred.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if expiresAt.Valid {
		cred.ExpiresAt = expiresAt.Time
	}
	return &cred, nil
}

// Save replaces the stored credential with cred.
func (r *SessionRepository) Save(ctx context.Context, cred models.Credential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if cred.ID == "" {
		cred.ID = shared.GenerateID()
	}
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = time.Now()
	}

	var expiresAt sql.NullTime
	if !cred.ExpiresAt.IsZero() {
		expiresAt = sql.NullTime{Time: cred.ExpiresAt, Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	query := `INSERT INTO sessions (id, token, email, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, cred.ID, cred.Token, cred.Email, expiresAt, cred.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

// Clear removes every stored credential.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
