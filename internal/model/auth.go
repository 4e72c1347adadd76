package model

import "strings"

// LoginResult is the backend's response to a successful login
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenVerification is the backend's response to a token check
type TokenVerification struct {
	Valid  bool   `json:"valid"`
	UserID UserID `json:"user_id"`
	Role   string `json:"role"`
}

// HealthStatus is the backend's health report
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Message is a generic acknowledgement payload
type Message struct {
	Message string `json:"message"`
}

// DefaultPassword derives the provisional password the backend assigns when
// a registration omits one: ctf_{username}_{local part of email}. The client
// relies on this convention to log a fresh registration in; if the backend
// ever changes it, registration degrades to a user without a session token.
func DefaultPassword(username, email string) string {
	local, _, _ := strings.Cut(email, "@")
	return "ctf_" + username + "_" + local
}
