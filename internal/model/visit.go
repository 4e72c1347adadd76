package model

import "time"

// PageVisit is a single recorded page view
type PageVisit struct {
	ID        string    `json:"id"`
	Page      string    `json:"page"`
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
	UserID    UserID    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
