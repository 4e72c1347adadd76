package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ctfarena/ctfarena/internal/model"
)

// ErrorResponse is the wire shape of every error the backend emits. The
// browser client surfaces Detail verbatim, so messages here are user-facing.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// httpError combines an HTTP status code with a detail message
type httpError struct {
	status int
	detail string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.detail
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Detail: he.detail})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, "User not found"}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusBadRequest, "Email already registered"}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusBadRequest, "Username already taken"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, "Incorrect email or password"}
	case errors.Is(err, model.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, "Could not validate credentials"}
	case errors.Is(err, model.ErrChallengeNotFound):
		return &httpError{http.StatusNotFound, "Challenge not found"}
	case errors.Is(err, model.ErrChallengeInactive):
		return &httpError{http.StatusBadRequest, "Challenge is not active"}
	case errors.Is(err, model.ErrMissingFlag):
		return &httpError{http.StatusBadRequest, "Flag is required"}
	case errors.Is(err, model.ErrAdNotFound):
		return &httpError{http.StatusNotFound, "Ad not found"}

	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Not authenticated"}
}

// NewForbiddenError creates a forbidden error for non-admin callers
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, "Admin access required"}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
