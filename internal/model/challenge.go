package model

import "time"

// ChallengeID identifies a challenge
type ChallengeID string

// Challenge difficulties
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Challenge is a CTF challenge as served by the backend. BackendConfig holds
// verifier-side data (including the flag) and is only populated on admin
// endpoints; everywhere else it is stripped before the challenge goes over
// the wire.
type Challenge struct {
	ID               ChallengeID    `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Category         string         `json:"category"`
	Description      string         `json:"description"`
	Intro            string         `json:"intro,omitempty"`
	PlayInstructions string         `json:"play_instructions,omitempty"`
	Points           int            `json:"points"`
	Difficulty       string         `json:"difficulty"`
	IsActive         bool           `json:"is_active"`
	FrontendHint     string         `json:"frontend_hint,omitempty"`
	FrontendConfig   map[string]any `json:"frontend_config"`
	CreatedAt        time.Time      `json:"created_at"`
	SolveCount       int            `json:"solve_count"`
	IsSolved         bool           `json:"is_solved"`
	BackendConfig    map[string]any `json:"backend_config,omitempty"`
}

// Flag returns the expected flag from the backend config, or "" if none is
// configured
func (c *Challenge) Flag() string {
	if c.BackendConfig == nil {
		return ""
	}
	flag, _ := c.BackendConfig["flag"].(string)
	return flag
}

// SubmissionResult is the outcome of a flag submission. An incorrect flag is
// a normal result with Success false, not an error.
type SubmissionResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Flag         string `json:"flag,omitempty"`
	PointsEarned int    `json:"points_earned,omitempty"`
}
