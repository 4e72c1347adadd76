package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ctfarena/ctfarena/internal/api/middleware"
	"github.com/ctfarena/ctfarena/internal/api/request"
	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/services/challenge"
)

// ChallengeHandler handles the public challenge endpoints
type ChallengeHandler struct {
	challengeService *challenge.Service
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService *challenge.Service) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

// List handles GET /challenges/
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := challenge.Filters{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}

	challenges, err := h.challengeService.List(r.Context(), middleware.GetUser(r.Context()), filters)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, challenges)
}

// Get handles GET /challenges/{id}
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ChallengeID(mux.Vars(r)["id"])

	c, err := h.challengeService.Get(r.Context(), middleware.GetUser(r.Context()), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// Submit handles POST /challenges/{id}/submit
func (h *ChallengeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.ChallengeID(mux.Vars(r)["id"])

	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.challengeService.Submit(r.Context(), user.ID, id, req.SubmissionData)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Categories handles GET /challenges/categories/list
func (h *ChallengeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.challengeService.Categories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

// Difficulties handles GET /challenges/difficulties/list
func (h *ChallengeHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	difficulties, err := h.challengeService.Difficulties(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"difficulties": difficulties})
}
