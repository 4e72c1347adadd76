package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ctfarena/ctfarena/internal/api"
	"github.com/ctfarena/ctfarena/internal/factory"
	redisstorage "github.com/ctfarena/ctfarena/internal/storage/redis"
)

const defaultChallengesPath = "data/challenges.json"

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	// Seed the challenge catalog
	challengesPath := os.Getenv("CHALLENGES_PATH")
	if challengesPath == "" {
		challengesPath = defaultChallengesPath
	}
	if count, err := app.ChallengeService.LoadFromFile(context.Background(), challengesPath); err != nil {
		logger.Warn("could not load challenge seed",
			slog.String("path", challengesPath),
			slog.String("error", err.Error()))
	} else {
		logger.Info("challenge catalog loaded",
			slog.String("path", challengesPath),
			slog.Int("count", count))
	}

	// Bootstrap an admin account when configured
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		adminUsername := os.Getenv("ADMIN_USERNAME")
		if adminUsername == "" {
			adminUsername = "admin"
		}
		if err := app.AuthService.EnsureAdmin(context.Background(), adminEmail, adminUsername, os.Getenv("ADMIN_PASSWORD")); err != nil {
			logger.Error("failed to bootstrap admin account", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("admin account ready", slog.String("email", adminEmail))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Storage:            app.Storage,
		AuthService:        app.AuthService,
		ChallengeService:   app.ChallengeService,
		LeaderboardService: app.LeaderboardService,
		AdsService:         app.AdsService,
		AnalyticsService:   app.AnalyticsService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", raw))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
