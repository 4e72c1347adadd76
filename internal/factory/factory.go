package factory

import (
	"errors"
	"io"

	"github.com/ctfarena/ctfarena/internal/dependencies/clock"
	"github.com/ctfarena/ctfarena/internal/services/ads"
	"github.com/ctfarena/ctfarena/internal/services/analytics"
	"github.com/ctfarena/ctfarena/internal/services/auth"
	"github.com/ctfarena/ctfarena/internal/services/challenge"
	"github.com/ctfarena/ctfarena/internal/services/leaderboard"
	"github.com/ctfarena/ctfarena/internal/storage"
	"github.com/ctfarena/ctfarena/internal/storage/memory"
	redisstorage "github.com/ctfarena/ctfarena/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService        *auth.Service
	ChallengeService   *challenge.Service
	LeaderboardService *leaderboard.Service
	AdsService         *ads.Service
	AnalyticsService   *analytics.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), authCfg), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config) *App {
	return &App{
		Storage:            store,
		Clock:              clk,
		AuthService:        auth.New(store, clk, authCfg),
		ChallengeService:   challenge.New(store, clk),
		LeaderboardService: leaderboard.New(store),
		AdsService:         ads.New(store),
		AnalyticsService:   analytics.New(store, clk),
	}
}

// Close releases storage resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
