package model

// AdID identifies an ad record
type AdID string

// Ad positions
const (
	AdPositionTop    = "top"
	AdPositionBottom = "bottom"
	AdPositionLeft   = "left"
	AdPositionRight  = "right"
)

// Ad is a display-ad record. Content is an opaque HTML snippet the platform
// passes through untouched.
type Ad struct {
	AdID     AdID   `json:"ad_id"`
	Position string `json:"position"`
	Content  string `json:"content"`
	IsActive bool   `json:"is_active"`
	Clicks   int    `json:"clicks,omitempty"`
}
