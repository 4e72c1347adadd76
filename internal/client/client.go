package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the local-development backend address
const DefaultBaseURL = "http://localhost:8000"

const defaultUserAgent = "ctfarena-client/1.0"

// TokenStore is the client's view of the session token. The transport only
// ever reads it; Set is driven by Login and Clear by Logout.
type TokenStore interface {
	Get() string
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Client is an HTTP client for the CTF platform backend
type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header sent on every request
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new API client. The backend has no timeout contract, so the
// default HTTP client sets none; cancellation is the caller's context.
func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request against the backend. Public endpoints are retried
// exactly once without the bearer token when the authenticated attempt fails
// with 401 or a transport error, so stale credentials never break anonymous
// reads. The token store itself is never mutated here.
func (c *Client) do(ctx context.Context, method, path string, body, result any, public bool) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = data
	}

	token := c.tokens.Get()

	resp, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		if !public || token == "" {
			return err
		}
		resp, err = c.send(ctx, method, path, payload, "")
		if err != nil {
			return err
		}
	} else if resp.StatusCode == http.StatusUnauthorized && public && token != "" {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		resp, err = c.send(ctx, method, path, payload, "")
		if err != nil {
			return err
		}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// send issues a single HTTP call with the standard headers
func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// apiError shapes a non-2xx response into an APIError, preferring the
// backend's structured detail field
func apiError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	return &APIError{Status: status, Detail: payload.Detail}
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result, false)
}

func (c *Client) getPublic(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result, true)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result, false)
}

func (c *Client) patch(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPatch, path, body, result, false)
}

func (c *Client) put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result, false)
}

func (c *Client) delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result, false)
}
