package client

import (
	"context"
	"fmt"

	"github.com/ctfarena/ctfarena/internal/model"
)

// DefaultLeaderboardLimit is used when no limit is given
const DefaultLeaderboardLimit = 50

// Leaderboard fetches the ranked leaderboard. A non-positive limit falls
// back to the default.
func (c *Client) Leaderboard(ctx context.Context, limit int) (*model.Leaderboard, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	var result model.Leaderboard
	if err := c.get(ctx, fmt.Sprintf("/leaderboard/?limit=%d", limit), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Progress fetches the authenticated user's completion summary
func (c *Client) Progress(ctx context.Context) (*model.Progress, error) {
	var result model.Progress
	if err := c.get(ctx, "/leaderboard/progress", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
