package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ctfarena/ctfarena/internal/keyval"
	keyvalmemory "github.com/ctfarena/ctfarena/internal/keyval/memory"
)

type TokenStoreSuite struct {
	suite.Suite
	kv     keyval.Store
	tokens *TokenStore
	ctx    context.Context
}

func TestTokenStoreSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreSuite))
}

func (s *TokenStoreSuite) SetupTest() {
	s.kv = keyvalmemory.New()
	s.tokens = NewTokenStore(s.kv)
	s.ctx = context.Background()
}

func (s *TokenStoreSuite) TestInitializeWithNoStoredToken() {
	err := s.tokens.Initialize(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.tokens.Get())
}

func (s *TokenStoreSuite) TestInitializeReadsAuthoritativeKey() {
	_ = s.kv.Set(s.ctx, TokenKey, "tok_current")

	err := s.tokens.Initialize(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok_current", s.tokens.Get())
}

func (s *TokenStoreSuite) TestInitializeMigratesLegacyKey() {
	_ = s.kv.Set(s.ctx, LegacyTokenKey, "tok_legacy")

	err := s.tokens.Initialize(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok_legacy", s.tokens.Get())

	// Migration writes the legacy value forward under the authoritative key
	value, err := s.kv.Get(s.ctx, TokenKey)
	s.Require().NoError(err)
	s.Equal("tok_legacy", value)
}

func (s *TokenStoreSuite) TestInitializePrefersAuthoritativeKey() {
	_ = s.kv.Set(s.ctx, TokenKey, "tok_current")
	_ = s.kv.Set(s.ctx, LegacyTokenKey, "tok_legacy")

	err := s.tokens.Initialize(s.ctx)
	s.Require().NoError(err)
	s.Equal("tok_current", s.tokens.Get())
}

func (s *TokenStoreSuite) TestSetWritesBothKeys() {
	err := s.tokens.Set(s.ctx, "tok_new")
	s.Require().NoError(err)
	s.Equal("tok_new", s.tokens.Get())

	for _, key := range []string{TokenKey, LegacyTokenKey} {
		value, err := s.kv.Get(s.ctx, key)
		s.Require().NoError(err)
		s.Equal("tok_new", value, key)
	}
}

func (s *TokenStoreSuite) TestClearRemovesBothKeys() {
	_ = s.tokens.Set(s.ctx, "tok_gone")

	err := s.tokens.Clear(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.tokens.Get())

	for _, key := range []string{TokenKey, LegacyTokenKey} {
		_, err := s.kv.Get(s.ctx, key)
		s.ErrorIs(err, keyval.ErrNotFound, key)
	}
}

func (s *TokenStoreSuite) TestClearWhenEmptyIsIdempotent() {
	s.Require().NoError(s.tokens.Clear(s.ctx))
	s.Require().NoError(s.tokens.Clear(s.ctx))
	s.Empty(s.tokens.Get())
}
