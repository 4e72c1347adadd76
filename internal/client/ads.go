package client

import (
	"context"
	"net/url"

	"github.com/ctfarena/ctfarena/internal/model"
)

// Ads lists active ads, optionally filtered to one position
func (c *Client) Ads(ctx context.Context, position string) ([]model.Ad, error) {
	path := "/ads/"
	if position != "" {
		path += "?position=" + url.QueryEscape(position)
	}

	var ads []model.Ad
	if err := c.get(ctx, path, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// ClickAd records a click on an ad
func (c *Client) ClickAd(ctx context.Context, id model.AdID) error {
	var result model.Message
	return c.post(ctx, "/ads/click/"+url.PathEscape(string(id)), nil, &result)
}
