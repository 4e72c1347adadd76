package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/services/ads"
)

// AdsHandler handles ad serving, click tracking and ad administration
type AdsHandler struct {
	adsService *ads.Service
}

// NewAdsHandler creates a new ads handler
func NewAdsHandler(adsService *ads.Service) *AdsHandler {
	return &AdsHandler{
		adsService: adsService,
	}
}

// List handles GET /ads/
func (h *AdsHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.adsService.Active(r.Context(), r.URL.Query().Get("position"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Click handles POST /ads/click/{id}
func (h *AdsHandler) Click(w http.ResponseWriter, r *http.Request) {
	id := model.AdID(mux.Vars(r)["id"])

	if err := h.adsService.Click(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Click recorded")
}

// AdminList handles GET /ads/admin/list
func (h *AdsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	result, err := h.adsService.AdminList(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// AdminCreate handles POST /ads/admin/create. This endpoint takes its
// parameters from the query string rather than a JSON body; the browser
// client depends on that.
func (h *AdsHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	content := r.URL.Query().Get("content")

	if position == "" {
		WriteError(w, NewInvalidRequestError("position is required"))
		return
	}
	if content == "" {
		WriteError(w, NewInvalidRequestError("content is required"))
		return
	}

	if _, err := h.adsService.Create(r.Context(), position, content, true); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Ad created")
}

// AdminUpdate handles PUT /ads/admin/{id}
func (h *AdsHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := model.AdID(mux.Vars(r)["id"])

	var ad model.Ad
	if err := json.NewDecoder(r.Body).Decode(&ad); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := h.adsService.Update(r.Context(), id, ad.Position, ad.Content, ad.IsActive); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Ad updated")
}

// AdminDelete handles DELETE /ads/admin/{id}
func (h *AdsHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := model.AdID(mux.Vars(r)["id"])

	if err := h.adsService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Ad deleted")
}
