package model

import "time"

// UserID identifies a platform user
type UserID string

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the wire representation of a platform user, as served by the
// backend and consumed by the client
type User struct {
	ID               UserID        `json:"id"`
	Email            string        `json:"email"`
	Username         string        `json:"username"`
	Role             string        `json:"role"`
	Score            int           `json:"score"`
	SolvedChallenges []ChallengeID `json:"solved_challenges"`
	CreatedAt        time.Time     `json:"created_at"`
	LastLogin        *time.Time    `json:"last_login,omitempty"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasSolved reports whether the user has solved the given challenge
func (u *User) HasSolved(id ChallengeID) bool {
	for _, solved := range u.SolvedChallenges {
		if solved == id {
			return true
		}
	}
	return false
}

// Account is the backend-side record for a user, pairing the public user
// data with credentials. Never sent over the wire.
type Account struct {
	User         User
	PasswordHash string
	UpdatedAt    time.Time
}
