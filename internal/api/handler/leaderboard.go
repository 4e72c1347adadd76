package handler

import (
	"net/http"
	"strconv"

	"github.com/ctfarena/ctfarena/internal/api/middleware"
	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/services/leaderboard"
)

// DefaultLeaderboardLimit caps the rankings page when no limit is given
const DefaultLeaderboardLimit = 50

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Rankings handles GET /leaderboard/
func (h *LeaderboardHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	result, err := h.leaderboardService.Rankings(r.Context(), middleware.GetUser(r.Context()), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Progress handles GET /leaderboard/progress
func (h *LeaderboardHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	progress, err := h.leaderboardService.Progress(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, progress)
}
