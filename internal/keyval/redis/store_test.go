package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/ctfarena/ctfarena/internal/keyval"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StoreSuite) TestSetAndGet() {
	err := s.store.Set(s.ctx, "token", "tok_abc")
	s.Require().NoError(err)

	value, err := s.store.Get(s.ctx, "token")
	s.Require().NoError(err)
	s.Equal("tok_abc", value)
}

func (s *StoreSuite) TestGetMissingKey() {
	_, err := s.store.Get(s.ctx, "missing")
	s.ErrorIs(err, keyval.ErrNotFound)
}

func (s *StoreSuite) TestDelete() {
	_ = s.store.Set(s.ctx, "token", "tok_abc")

	err := s.store.Delete(s.ctx, "token")
	s.Require().NoError(err)

	_, err = s.store.Get(s.ctx, "token")
	s.ErrorIs(err, keyval.ErrNotFound)
}

func (s *StoreSuite) TestKeysAreNamespaced() {
	_ = s.store.Set(s.ctx, "token", "tok_abc")

	value, err := s.mini.Get("ctfarena:client:token")
	s.Require().NoError(err)
	s.Equal("tok_abc", value)
}
