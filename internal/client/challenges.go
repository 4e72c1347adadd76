package client

import (
	"context"
	"net/url"

	"github.com/ctfarena/ctfarena/internal/model"
)

// ChallengeFilters narrows a challenge listing. Zero values mean no filter.
type ChallengeFilters struct {
	Category   string
	Difficulty string
}

type submitRequest struct {
	ChallengeID    model.ChallengeID `json:"challenge_id"`
	SubmissionData map[string]any    `json:"submission_data"`
}

// Challenges lists challenges. This is a public endpoint: the listing must
// render for anonymous visitors even when a stale token is held, so a 401
// triggers one retry without credentials.
func (c *Client) Challenges(ctx context.Context, filters ChallengeFilters) ([]model.Challenge, error) {
	params := url.Values{}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.Difficulty != "" {
		params.Set("difficulty", filters.Difficulty)
	}

	path := "/challenges/"
	if query := params.Encode(); query != "" {
		path += "?" + query
	}

	var challenges []model.Challenge
	if err := c.getPublic(ctx, path, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// Challenge fetches a single challenge by id
func (c *Client) Challenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := c.get(ctx, "/challenges/"+url.PathEscape(string(id)), &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// SubmitChallenge submits a solution attempt. The submission map carries
// whatever the challenge's verifier expects, at minimum a "flag" entry; the
// client does not validate it, runtime validation is the backend's job.
// A wrong flag resolves normally with Success false.
func (c *Client) SubmitChallenge(ctx context.Context, id model.ChallengeID, submission map[string]any) (*model.SubmissionResult, error) {
	var result model.SubmissionResult
	req := submitRequest{ChallengeID: id, SubmissionData: submission}
	if err := c.post(ctx, "/challenges/"+url.PathEscape(string(id))+"/submit", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChallengeCategories lists the known challenge categories
func (c *Client) ChallengeCategories(ctx context.Context) ([]string, error) {
	var result struct {
		Categories []string `json:"categories"`
	}
	if err := c.get(ctx, "/challenges/categories/list", &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// ChallengeDifficulties lists the known difficulty levels
func (c *Client) ChallengeDifficulties(ctx context.Context) ([]string, error) {
	var result struct {
		Difficulties []string `json:"difficulties"`
	}
	if err := c.get(ctx, "/challenges/difficulties/list", &result); err != nil {
		return nil, err
	}
	return result.Difficulties, nil
}
