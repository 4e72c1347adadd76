package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ping checks connectivity to the Redis backend
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	key := accountKey(account.User.ID)

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, emailIndexKey(account.User.Email), string(account.User.ID), 0)
	pipe.Set(ctx, usernameIndexKey(account.User.Username), string(account.User.ID), 0)
	pipe.SAdd(ctx, accountsIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.UserID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.UserID(userIDStr))
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.UserID(userIDStr))
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return listAll[model.Account](ctx, s.client, accountsIndexKey())
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	data, err := json.Marshal(challenge)
	if err != nil {
		return err
	}

	key := challengeKey(challenge.ID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, challengesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	data, err := s.client.Get(ctx, challengeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var challenge model.Challenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (s *Storage) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	return listAll[model.Challenge](ctx, s.client, challengesIndexKey())
}

func (s *Storage) DeleteChallenge(ctx context.Context, id model.ChallengeID) error {
	key := challengeKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, challengesIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Ad operations

func (s *Storage) SaveAd(ctx context.Context, ad *model.Ad) error {
	data, err := json.Marshal(ad)
	if err != nil {
		return err
	}

	key := adKey(ad.AdID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, adsIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAd(ctx context.Context, id model.AdID) (*model.Ad, error) {
	data, err := s.client.Get(ctx, adKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAdNotFound
		}
		return nil, err
	}

	var ad model.Ad
	if err := json.Unmarshal(data, &ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *Storage) ListAds(ctx context.Context) ([]*model.Ad, error) {
	return listAll[model.Ad](ctx, s.client, adsIndexKey())
}

func (s *Storage) DeleteAd(ctx context.Context, id model.AdID) error {
	key := adKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, adsIndexKey(), key)
	_, err := pipe.Exec(ctx)
	return err
}

// Page visit operations

func (s *Storage) SaveVisit(ctx context.Context, visit *model.PageVisit) error {
	data, err := json.Marshal(visit)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, visitsKey(), data)
	if s.cfg.VisitTTL > 0 {
		pipe.Expire(ctx, visitsKey(), s.cfg.VisitTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListVisits(ctx context.Context) ([]*model.PageVisit, error) {
	values, err := s.client.LRange(ctx, visitsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	visits := make([]*model.PageVisit, 0, len(values))
	for _, val := range values {
		var visit model.PageVisit
		if err := json.Unmarshal([]byte(val), &visit); err != nil {
			continue // Skip invalid data
		}
		visits = append(visits, &visit)
	}
	return visits, nil
}

// listAll fetches every member of an index set with a single MGET
func listAll[T any](ctx context.Context, client *redis.Client, indexKey string) ([]*T, error) {
	keys, err := client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*T{}, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*T, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Entry deleted without index cleanup
		}
		var item T
		if err := json.Unmarshal([]byte(val.(string)), &item); err != nil {
			continue // Skip invalid data
		}
		items = append(items, &item)
	}
	return items, nil
}
