package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ctfarena/ctfarena/internal/model"
)

// State is the session lifecycle state
type State int

// Session states. The cycle Anonymous <-> Authenticated can repeat
// indefinitely within one process lifetime.
const (
	StateUninitialized State = iota
	StateChecking
	StateAnonymous
	StateAuthenticated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the slice of the backend client the session manager drives
type API interface {
	Register(ctx context.Context, email, username, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.LoginResult, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
}

// Manager owns the authenticated user for the process and the operations
// that change it. It is the only writer of the token store; every API call
// in flight reads it.
type Manager struct {
	api    API
	tokens *TokenStore
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	user  *model.User
}

// NewManager creates a session manager
func NewManager(api API, tokens *TokenStore, logger *slog.Logger) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		logger: logger,
		state:  StateUninitialized,
	}
}

// State returns the current session state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the authenticated user, or nil. The record is replaced
// wholesale on every fetch, never mutated in place.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Loading reports whether the initial auth check has not yet settled
func (m *Manager) Loading() bool {
	state := m.State()
	return state == StateUninitialized || state == StateChecking
}

// Token returns the currently held bearer token, or ""
func (m *Manager) Token() string {
	return m.tokens.Get()
}

// CheckAuth performs the startup auth check. A held token that the backend
// rejects is cleared before settling into Anonymous; this never returns an
// error because the app shell must come up regardless.
func (m *Manager) CheckAuth(ctx context.Context) {
	m.setState(StateChecking)

	if m.tokens.Get() == "" {
		m.setAnonymous()
		return
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("auth check failed, discarding stored token", slog.String("error", err.Error()))
		if err := m.tokens.Clear(ctx); err != nil {
			m.logger.Error("failed to clear token store", slog.String("error", err.Error()))
		}
		m.setAnonymous()
		return
	}

	m.setAuthenticated(user)
}

// Login authenticates and loads the user record
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if _, err := m.api.Login(ctx, email, password); err != nil {
		return err
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		return err
	}

	m.setAuthenticated(user)
	return nil
}

// Register creates an account and immediately logs it in using the
// backend's default-password convention, since registration alone returns
// no token. If that follow-up login fails the registration still counts:
// the user record is exposed without a token, and callers must treat that
// degraded state as valid.
func (m *Manager) Register(ctx context.Context, email, username string) error {
	registered, err := m.api.Register(ctx, email, username, "")
	if err != nil {
		return err
	}

	password := model.DefaultPassword(username, email)
	if _, err := m.api.Login(ctx, email, password); err != nil {
		m.logger.Warn("auto-login after registration failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		m.setAuthenticated(registered)
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("fetching user after registration failed", slog.String("error", err.Error()))
		m.setAuthenticated(registered)
		return nil
	}

	m.setAuthenticated(user)
	return nil
}

// Logout clears the session locally. Idempotent; takes local effect with
// no network round trip.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
	return nil
}

// RefreshUser re-fetches the current user without touching the token; used
// after a successful submission to pick up newly solved state. Returns nil
// when no token is held or the fetch fails; errors are logged, never
// propagated.
func (m *Manager) RefreshUser(ctx context.Context) *model.User {
	if m.tokens.Get() == "" {
		return nil
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Warn("user refresh failed", slog.String("error", err.Error()))
		return nil
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

func (m *Manager) setAuthenticated(user *model.User) {
	m.mu.Lock()
	m.user = user
	m.state = StateAuthenticated
	m.mu.Unlock()
}
