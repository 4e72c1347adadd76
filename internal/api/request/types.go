package request

import "github.com/ctfarena/ctfarena/internal/model"

// RegisterRequest is the request body for registering a user. Password is
// optional; the backend derives a provisional one when it is omitted.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitRequest is the request body for a flag submission
type SubmitRequest struct {
	ChallengeID    model.ChallengeID `json:"challenge_id"`
	SubmissionData map[string]any    `json:"submission_data"`
}

// TrackVisitRequest is the request body for recording a page view
type TrackVisitRequest struct {
	Page      string `json:"page"`
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
}
