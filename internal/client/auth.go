package client

import (
	"context"

	"github.com/ctfarena/ctfarena/internal/model"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. Password may be empty, in which case the
// backend assigns its default provisional password. No session token is
// issued; callers that want one must follow up with Login.
func (c *Client) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	var user model.User
	req := registerRequest{Email: email, Username: username, Password: password}
	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates with email and password and stores the resulting
// bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	var result model.LoginResult
	req := loginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", req, &result); err != nil {
		return nil, err
	}

	if err := c.tokens.Set(ctx, result.AccessToken); err != nil {
		return nil, err
	}

	return &result, nil
}

// CurrentUser fetches the authenticated user's record
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyToken checks the held token against the backend
func (c *Client) VerifyToken(ctx context.Context) (*model.TokenVerification, error) {
	var result model.TokenVerification
	if err := c.get(ctx, "/auth/verify-token", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout discards the held token. Purely local; the backend is not called.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.Clear(ctx)
}
