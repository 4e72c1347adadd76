package session

import (
	"context"
	"errors"
	"sync"

	"github.com/ctfarena/ctfarena/internal/keyval"
)

// Persistence keys for the bearer token. TokenKey is authoritative;
// LegacyTokenKey is kept in sync because older releases wrote only that key.
const (
	TokenKey       = "token"
	LegacyTokenKey = "auth_token"
)

// TokenStore is the single source of truth for the current bearer token
// within one client process, mirrored into persistent key-value storage
// under both legacy-compatible keys.
type TokenStore struct {
	mu    sync.RWMutex
	store keyval.Store
	token string
}

// NewTokenStore creates a token store over the given persistence backend.
// Call Initialize before use to load any persisted token.
func NewTokenStore(store keyval.Store) *TokenStore {
	return &TokenStore{store: store}
}

// Initialize loads the persisted token. The authoritative key is read
// first; if only the legacy key holds a value it is migrated forward once
// so both keys agree from here on.
func (t *TokenStore) Initialize(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	token, err := t.store.Get(ctx, TokenKey)
	if err == nil {
		t.token = token
		return nil
	}
	if !errors.Is(err, keyval.ErrNotFound) {
		return err
	}

	legacy, err := t.store.Get(ctx, LegacyTokenKey)
	if err != nil {
		if errors.Is(err, keyval.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := t.store.Set(ctx, TokenKey, legacy); err != nil {
		return err
	}

	t.token = legacy
	return nil
}

// Get returns the in-memory token. Never touches storage.
func (t *TokenStore) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Set stores the token in memory and writes it through to both
// persistence keys
func (t *TokenStore) Set(ctx context.Context, token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Set(ctx, TokenKey, token); err != nil {
		return err
	}
	if err := t.store.Set(ctx, LegacyTokenKey, token); err != nil {
		return err
	}

	t.token = token
	return nil
}

// Clear removes the token from memory and from both persistence keys.
// Safe to call when no token is held.
func (t *TokenStore) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Delete(ctx, TokenKey); err != nil {
		return err
	}
	if err := t.store.Delete(ctx, LegacyTokenKey); err != nil {
		return err
	}

	t.token = ""
	return nil
}
