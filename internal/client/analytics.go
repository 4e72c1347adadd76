package client

import "context"

type visitRequest struct {
	Page      string `json:"page"`
	UserAgent string `json:"user_agent"`
	IP        string `json:"ip"`
}

// TrackPageView records a page visit. The IP is left for the backend to
// detect.
func (c *Client) TrackPageView(ctx context.Context, page string) error {
	req := visitRequest{
		Page:      page,
		UserAgent: c.userAgent,
		IP:        "client",
	}
	return c.post(ctx, "/analytics/visits", req, nil)
}
