package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ctfarena/ctfarena/internal/keyval"
)

// Key prefix for client-side persisted state
const keyPrefix = "ctfarena:client"

// Store is a Redis-backed implementation of the keyval store, for
// deployments where client state must survive across hosts
type Store struct {
	client *redis.Client
}

// New creates a Redis keyval store from a connection URL
func New(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

// NewWithClient creates a store with an existing client (for testing)
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ keyval.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, storeKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", keyval.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, storeKey(key), value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, storeKey(key)).Err()
}

func storeKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
