package client

import (
	"context"

	"github.com/ctfarena/ctfarena/internal/model"
)

// Health checks backend liveness
func (c *Client) Health(ctx context.Context) (*model.HealthStatus, error) {
	var result model.HealthStatus
	if err := c.get(ctx, "/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
