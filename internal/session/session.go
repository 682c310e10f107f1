package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/shared"
)

// Store persists the credential between runs.
type Store interface {
	// Load returns the stored credential or nil when there is none.
	Load(ctx context.Context) (*models.Credential, error)
	Save(ctx context.Context, cred models.Credential) error
	Clear(ctx context.Context) error
}

// ResetHook is called with the reason after the session is cleared.
type ResetHook func(reason string)

// Session is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	cred  *models.Credential
	store Store
	hooks []ResetHook
	now   func() time.Time
}

// New creates an empty session backed by store. A nil store keeps the
// session in memory only.
func New(store Store) *Session {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Session{store: store, now: time.Now}
}

// Restore loads the persisted credential. An expired credential is cleared
// from the store and the session starts signed out.
func (s *Session) Restore(ctx context.Context) error {
	cred, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if cred == nil {
		return nil
	}

	if cred.Expired(s.now()) {
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
	return nil
}

// Login stores token as the active credential.
func (s *Session) Login(ctx context.Context, token string) (models.Credential, error) {
	cred := models.Credential{
		ID:        shared.GenerateID(),
		Token:     token,
		CreatedAt: s.now(),
	}
	if claims, ok := ParseClaims(token); ok {
		cred.Email = claims.Email
		cred.ExpiresAt = claims.ExpiresAt
	}

	if err := cred.Validate(); err != nil {
		return models.Credential{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if cred.Expired(s.now()) {
		return models.Credential{}, shared.ErrTokenExpired
	}

	if err := s.store.Save(ctx, cred); err != nil {
		return models.Credential{}, fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.cred = &cred
	s.mu.Unlock()
	return cred, nil
}

// Token returns the bearer token, or "" when signed out or expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil || s.cred.Expired(s.now()) {
		return ""
	}
	return s.cred.Token
}

// Authenticated reports whether a usable token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Credential returns a copy of the active credential.
func (s *Session) Credential() (models.Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return models.Credential{}, false
	}
	return *s.cred, true
}

// Email returns the signed-in user's email when the token carried one.
func (s *Session) Email() string {
	cred, _ := s.Credential()
	return cred.Email
}

// OnReset registers hook to run after every reset.
func (s *Session) OnReset(hook ResetHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}

// Reset signs the user out, clears the store and runs the reset hooks.
func (s *Session) Reset(reason string) error {
	s.mu.Lock()
	s.cred = nil
	hooks := append([]ResetHook(nil), s.hooks...)
	s.mu.Unlock()

	err := s.store.Clear(context.Background())
	for _, hook := range hooks {
		hook(reason)
	}
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential in process memory.
type MemoryStore struct {
	mu   sync.Mutex
	cred *models.Credential
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (*models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil, nil
	}
	cred := *m.cred
	return &cred, nil
}

func (m *MemoryStore) Save(_ context.Context, cred models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &cred
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	return nil
}

// ErrNoSession is returned by [Session.Require] when signed out.
var ErrNoSession = errors.New("not signed in")

// Require returns the token or an error wrapping [shared.ErrUnauthorized].
func (s *Session) Require() (string, error) {
	if t := s.Token(); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("%w: %w", shared.ErrUnauthorized, ErrNoSession)
}
