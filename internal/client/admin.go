package client

import (
	"context"
	"net/url"

	"github.com/ctfarena/ctfarena/internal/model"
)

// Admin methods require a token whose account holds the admin role; the
// backend answers 401/403 otherwise.

// AdminUsers lists all users
func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminChallenges lists all challenges including backend config
func (c *Client) AdminChallenges(ctx context.Context) ([]model.Challenge, error) {
	var challenges []model.Challenge
	if err := c.get(ctx, "/admin/challenges", &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// AdminChallenge fetches one challenge including backend config
func (c *Client) AdminChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	var challenge model.Challenge
	if err := c.get(ctx, "/admin/challenges/"+url.PathEscape(string(id)), &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// CreateAdminChallenge creates a challenge
func (c *Client) CreateAdminChallenge(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	var created model.Challenge
	if err := c.post(ctx, "/admin/challenges", challenge, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAdminChallenge applies a partial update to a challenge. The patch
// holds only the fields to change, keyed by their wire names.
func (c *Client) UpdateAdminChallenge(ctx context.Context, id model.ChallengeID, patch map[string]any) (*model.Challenge, error) {
	var updated model.Challenge
	if err := c.patch(ctx, "/admin/challenges/"+url.PathEscape(string(id)), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAdminChallenge removes a challenge
func (c *Client) DeleteAdminChallenge(ctx context.Context, id model.ChallengeID) error {
	var result model.Message
	return c.delete(ctx, "/admin/challenges/"+url.PathEscape(string(id)), &result)
}

// AdminAds lists the full ad inventory
func (c *Client) AdminAds(ctx context.Context) ([]model.Ad, error) {
	var ads []model.Ad
	if err := c.get(ctx, "/ads/admin/list", &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// CreateAdminAd creates an ad. The backend takes this one as query
// parameters rather than a JSON body.
func (c *Client) CreateAdminAd(ctx context.Context, position, content string) error {
	params := url.Values{}
	params.Set("position", position)
	params.Set("content", content)

	var result model.Message
	return c.post(ctx, "/ads/admin/create?"+params.Encode(), nil, &result)
}

// UpdateAdminAd replaces an ad record
func (c *Client) UpdateAdminAd(ctx context.Context, id model.AdID, ad *model.Ad) error {
	var result model.Message
	return c.put(ctx, "/ads/admin/"+url.PathEscape(string(id)), ad, &result)
}

// DeleteAdminAd removes an ad
func (c *Client) DeleteAdminAd(ctx context.Context, id model.AdID) error {
	var result model.Message
	return c.delete(ctx, "/ads/admin/"+url.PathEscape(string(id)), &result)
}
