package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ctfarena/ctfarena/internal/api/handler"
	apimiddleware "github.com/ctfarena/ctfarena/internal/api/middleware"
	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/middleware"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/services/ads"
	"github.com/ctfarena/ctfarena/internal/services/analytics"
	"github.com/ctfarena/ctfarena/internal/services/auth"
	"github.com/ctfarena/ctfarena/internal/services/challenge"
	"github.com/ctfarena/ctfarena/internal/services/leaderboard"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	Storage            storage.Storage
	AuthService        *auth.Service
	ChallengeService   *challenge.Service
	LeaderboardService *leaderboard.Service
	AdsService         *ads.Service
	AnalyticsService   *analytics.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	challengeHandler := handler.NewChallengeHandler(cfg.ChallengeService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	adsHandler := handler.NewAdsHandler(cfg.AdsService)
	analyticsHandler := handler.NewAnalyticsHandler(cfg.AnalyticsService)
	adminHandler := handler.NewAdminHandler(cfg.Storage, cfg.ChallengeService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := apimiddleware.OptionalAuth(cfg.AuthService)

	r.Use(apimiddleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Auth routes
	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authed := r.PathPrefix("/auth").Subrouter()
	authed.Use(authMiddleware)
	authed.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/verify-token", authHandler.VerifyToken).Methods(http.MethodGet)
	authed.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// Challenge routes. Listings are public with optional identity so the
	// solved markers light up for signed-in browsers.
	r.Handle("/challenges/",
		optionalAuthMiddleware(http.HandlerFunc(challengeHandler.List))).Methods(http.MethodGet)
	r.HandleFunc("/challenges/categories/list", challengeHandler.Categories).Methods(http.MethodGet)
	r.HandleFunc("/challenges/difficulties/list", challengeHandler.Difficulties).Methods(http.MethodGet)
	r.Handle("/challenges/{id}",
		optionalAuthMiddleware(http.HandlerFunc(challengeHandler.Get))).Methods(http.MethodGet)
	r.Handle("/challenges/{id}/submit",
		authMiddleware(http.HandlerFunc(challengeHandler.Submit))).Methods(http.MethodPost)

	// Leaderboard routes
	r.Handle("/leaderboard/",
		optionalAuthMiddleware(http.HandlerFunc(leaderboardHandler.Rankings))).Methods(http.MethodGet)
	r.Handle("/leaderboard/progress",
		authMiddleware(http.HandlerFunc(leaderboardHandler.Progress))).Methods(http.MethodGet)

	// Ad routes (public)
	r.HandleFunc("/ads/", adsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/ads/click/{id}", adsHandler.Click).Methods(http.MethodPost)

	// Analytics (anonymous visits allowed)
	r.Handle("/analytics/visits",
		optionalAuthMiddleware(http.HandlerFunc(analyticsHandler.TrackVisit))).Methods(http.MethodPost)

	// Admin routes
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.Use(apimiddleware.RequireAdmin)
	admin.HandleFunc("/users", adminHandler.Users).Methods(http.MethodGet)
	admin.HandleFunc("/challenges", adminHandler.Challenges).Methods(http.MethodGet)
	admin.HandleFunc("/challenges", adminHandler.CreateChallenge).Methods(http.MethodPost)
	admin.HandleFunc("/challenges/{id}", adminHandler.Challenge).Methods(http.MethodGet)
	admin.HandleFunc("/challenges/{id}", adminHandler.UpdateChallenge).Methods(http.MethodPatch)
	admin.HandleFunc("/challenges/{id}", adminHandler.DeleteChallenge).Methods(http.MethodDelete)

	adminAds := r.PathPrefix("/ads/admin").Subrouter()
	adminAds.Use(authMiddleware)
	adminAds.Use(apimiddleware.RequireAdmin)
	adminAds.HandleFunc("/list", adsHandler.AdminList).Methods(http.MethodGet)
	adminAds.HandleFunc("/create", adsHandler.AdminCreate).Methods(http.MethodPost)
	adminAds.HandleFunc("/{id}", adsHandler.AdminUpdate).Methods(http.MethodPut)
	adminAds.HandleFunc("/{id}", adsHandler.AdminDelete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	r.HandleFunc("/health", healthHandler(cfg.Storage)).Methods(http.MethodGet)

	return r
}

// pinger is implemented by storage backends with a real connection to check
type pinger interface {
	Ping(ctx context.Context) error
}

func healthHandler(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "connected"
		if p, ok := store.(pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				database = "unavailable"
			}
		}

		response.JSON(w, http.StatusOK, model.HealthStatus{
			Status:   "healthy",
			Database: database,
		})
	}
}
