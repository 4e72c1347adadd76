package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ctfarena/ctfarena/internal/dependencies/clock"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Session represents an authenticated session
type Session struct {
	Token     string
	UserID    model.UserID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles registration, login and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a new user account. An empty password selects the
// platform's derived default for the username/email pair.
func (s *Service) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	if _, err := s.storage.GetAccountByEmail(ctx, email); err == nil {
		return nil, model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.storage.GetAccountByUsername(ctx, username); err == nil {
		return nil, model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if password == "" {
		password = model.DefaultPassword(username, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	account := &model.Account{
		User: model.User{
			ID:               model.UserID(generateID("u_")),
			Email:            email,
			Username:         username,
			Role:             model.RoleUser,
			SolvedChallenges: []model.ChallengeID{},
			CreatedAt:        now,
		},
		PasswordHash: string(hash),
		UpdatedAt:    now,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return &account.User, nil
}

// Login authenticates a user by email and creates a session
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	now := s.clock.Now()
	account.User.LastLogin = &now
	account.UpdatedAt = now
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	return s.createSession(account.User.ID), nil
}

// ValidateSession checks a session token and returns the current user record
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, model.ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidSession
	}

	// Read through to storage so score and solve updates are always fresh
	account, err := s.storage.GetAccount(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidSession
		}
		return nil, err
	}

	return &account.User, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// EnsureAdmin creates or promotes an admin account for bootstrap. Existing
// accounts keep their password; only the role is corrected.
func (s *Service) EnsureAdmin(ctx context.Context, email, username, password string) error {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		if account.User.Role == model.RoleAdmin {
			return nil
		}
		account.User.Role = model.RoleAdmin
		account.UpdatedAt = s.clock.Now()
		return s.storage.SaveAccount(ctx, account)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	user, err := s.Register(ctx, email, username, password)
	if err != nil {
		return err
	}

	account, err = s.storage.GetAccount(ctx, user.ID)
	if err != nil {
		return err
	}
	account.User.Role = model.RoleAdmin
	return s.storage.SaveAccount(ctx, account)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// createSession creates a new session for a user
func (s *Service) createSession(userID model.UserID) *Session {
	token := generateID("tok_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// generateID generates a random ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
