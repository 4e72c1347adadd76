package model

// LeaderboardEntry is one ranked row of the leaderboard
type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	Username           string  `json:"username"`
	Score              int     `json:"score"`
	SolvedChallenges   int     `json:"solved_challenges"`
	ProgressPercentage float64 `json:"progress_percentage"`
	IsCurrentUser      bool    `json:"is_current_user"`
}

// Leaderboard is the full leaderboard response. CurrentUserRank is only set
// when the caller is authenticated and ranked.
type Leaderboard struct {
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
	TotalUsers      int                `json:"total_users"`
	CurrentUserRank *int               `json:"current_user_rank,omitempty"`
}

// Progress summarizes one user's completion state
type Progress struct {
	UserID             UserID  `json:"user_id"`
	TotalChallenges    int     `json:"total_challenges"`
	SolvedChallenges   int     `json:"solved_challenges"`
	TotalScore         int     `json:"total_score"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
