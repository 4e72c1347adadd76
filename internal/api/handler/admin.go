package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/services/challenge"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// AdminHandler handles the admin surface: user listing and challenge
// management with full verifier config
type AdminHandler struct {
	storage          storage.Storage
	challengeService *challenge.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(storage storage.Storage, challengeService *challenge.Service) *AdminHandler {
	return &AdminHandler{
		storage:          storage,
		challengeService: challengeService,
	}
}

// Users handles GET /admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.storage.ListAccounts(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	users := make([]model.User, 0, len(accounts))
	for _, account := range accounts {
		users = append(users, account.User)
	}

	response.JSON(w, http.StatusOK, users)
}

// Challenges handles GET /admin/challenges
func (h *AdminHandler) Challenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.AdminList(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, challenges)
}

// Challenge handles GET /admin/challenges/{id}
func (h *AdminHandler) Challenge(w http.ResponseWriter, r *http.Request) {
	id := model.ChallengeID(mux.Vars(r)["id"])

	c, err := h.challengeService.AdminGet(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// CreateChallenge handles POST /admin/challenges
func (h *AdminHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var c model.Challenge
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if c.Title == "" {
		WriteError(w, NewInvalidRequestError("title is required"))
		return
	}

	created, err := h.challengeService.Create(r.Context(), &c)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, created)
}

// UpdateChallenge handles PATCH /admin/challenges/{id}. The body is a
// partial patch keyed by wire field names.
func (h *AdminHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id := model.ChallengeID(mux.Vars(r)["id"])

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.challengeService.Update(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// DeleteChallenge handles DELETE /admin/challenges/{id}
func (h *AdminHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id := model.ChallengeID(mux.Vars(r)["id"])

	if err := h.challengeService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Challenge deleted")
}
