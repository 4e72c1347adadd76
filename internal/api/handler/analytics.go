package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/ctfarena/ctfarena/internal/api/middleware"
	"github.com/ctfarena/ctfarena/internal/api/request"
	"github.com/ctfarena/ctfarena/internal/api/response"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/services/analytics"
)

// AnalyticsHandler handles page-view tracking
type AnalyticsHandler struct {
	analyticsService *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// TrackVisit handles POST /analytics/visits. Clients send a placeholder IP;
// the real address is taken from the connection.
func (h *AnalyticsHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req request.TrackVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Page == "" {
		WriteError(w, NewInvalidRequestError("page is required"))
		return
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	var userID model.UserID
	if user := middleware.GetUser(r.Context()); user != nil {
		userID = user.ID
	}

	if _, err := h.analyticsService.RecordVisit(r.Context(), req.Page, userAgent, clientIP(r), userID); err != nil {
		WriteError(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Visit recorded")
}

// clientIP resolves the caller's address, preferring proxy headers
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
