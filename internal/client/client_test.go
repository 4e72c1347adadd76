package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	keyvalmemory "github.com/ctfarena/ctfarena/internal/keyval/memory"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/session"
)

type ClientSuite struct {
	suite.Suite
	ctx    context.Context
	tokens *session.TokenStore
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.tokens = session.NewTokenStore(keyvalmemory.New())
}

func (s *ClientSuite) newClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	s.T().Cleanup(server.Close)
	return New(server.URL, s.tokens), server
}

// Public-endpoint retry behavior

func (s *ClientSuite) TestPublicEndpointRetriesWithoutAuthOn401() {
	_ = s.tokens.Set(s.ctx, "stale-token")

	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Invalid token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "5"}]`))
	}))

	challenges, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().NoError(err)
	s.Require().Len(challenges, 1)
	s.Equal(model.ChallengeID("5"), challenges[0].ID)
}

func (s *ClientSuite) TestPublicEndpointRetryIsBounded() {
	_ = s.tokens.Set(s.ctx, "stale-token")

	var calls atomic.Int32
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Invalid token"}`))
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().Error(err)
	s.Equal(int32(2), calls.Load(), "original call plus exactly one retry")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusUnauthorized, apiErr.Status)
	s.Equal("Invalid token", apiErr.Detail)
}

func (s *ClientSuite) TestPublicEndpointWithoutTokenDoesNotRetry() {
	var calls atomic.Int32
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().Error(err)
	s.Equal(int32(1), calls.Load())
}

func (s *ClientSuite) TestAuthenticatedEndpointDoesNotRetryOn401() {
	_ = s.tokens.Set(s.ctx, "expired-token")

	var calls atomic.Int32
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Token expired"}`))
	}))

	_, err := c.CurrentUser(s.ctx)
	s.Require().Error(err)
	s.Equal(int32(1), calls.Load())
	s.Equal("Token expired", err.Error())
}

func (s *ClientSuite) TestPublicEndpointNon401FailureDoesNotRetry() {
	_ = s.tokens.Set(s.ctx, "some-token")

	var calls atomic.Int32
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().Error(err)
	s.Equal(int32(1), calls.Load())
}

func (s *ClientSuite) TestRetryDoesNotMutateTokenStore() {
	_ = s.tokens.Set(s.ctx, "stale-token")

	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().NoError(err)
	s.Equal("stale-token", s.tokens.Get(), "transport must not touch the token store")
}

// Network-failure retry

type failingAuthTransport struct {
	inner http.RoundTripper
	calls atomic.Int32
}

func (t *failingAuthTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls.Add(1)
	if r.Header.Get("Authorization") != "" {
		return nil, errors.New("connection reset")
	}
	return t.inner.RoundTrip(r)
}

func (s *ClientSuite) TestPublicEndpointRetriesOnNetworkFailure() {
	_ = s.tokens.Set(s.ctx, "some-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "9"}]`))
	}))
	s.T().Cleanup(server.Close)

	transport := &failingAuthTransport{inner: http.DefaultTransport}
	c := New(server.URL, s.tokens, WithHTTPClient(&http.Client{Transport: transport}))

	challenges, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().NoError(err)
	s.Require().Len(challenges, 1)
	s.Equal(model.ChallengeID("9"), challenges[0].ID)
	s.Equal(int32(2), transport.calls.Load())
}

func (s *ClientSuite) TestAuthenticatedEndpointPropagatesNetworkFailure() {
	_ = s.tokens.Set(s.ctx, "some-token")

	transport := &failingAuthTransport{inner: http.DefaultTransport}
	c := New("http://unreachable.invalid", s.tokens, WithHTTPClient(&http.Client{Transport: transport}))

	_, err := c.CurrentUser(s.ctx)
	s.Require().Error(err)
	s.Equal(int32(1), transport.calls.Load())

	var apiErr *APIError
	s.False(errors.As(err, &apiErr), "network errors are not API errors")
}

// Error taxonomy

func (s *ClientSuite) TestStructuredDetailIsSurfacedVerbatim() {
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Challenge not found"}`))
	}))

	_, err := c.Challenge(s.ctx, "999")
	s.Require().Error(err)

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusNotFound, apiErr.Status)
	s.Equal("Challenge not found", err.Error())
}

func (s *ClientSuite) TestUnparseableErrorBodyFallsBackToGenericMessage() {
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))

	_, err := c.CurrentUser(s.ctx)
	s.Require().Error(err)
	s.Equal("HTTP error! status: 502", err.Error())
}

func (s *ClientSuite) TestWrongFlagIsNotAnError() {
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "message": "Incorrect flag. Try again!"}`))
	}))

	result, err := c.SubmitChallenge(s.ctx, "3", map[string]any{"flag": "CTF{wrong}"})
	s.Require().NoError(err)
	s.False(result.Success)
	s.Equal("Incorrect flag. Try again!", result.Message)
}

// Headers and token lifecycle

func (s *ClientSuite) TestBearerTokenAttachedWhenHeld() {
	_ = s.tokens.Set(s.ctx, "tok_123")

	var gotAuth, gotContentType string
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))

	_, err := c.CurrentUser(s.ctx)
	s.Require().NoError(err)
	s.Equal("Bearer tok_123", gotAuth)
	s.Equal("application/json", gotContentType)
}

func (s *ClientSuite) TestNoAuthorizationHeaderWithoutToken() {
	var gotAuth string
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{})
	s.Require().NoError(err)
	s.Empty(gotAuth)
}

func (s *ClientSuite) TestLoginStoresToken() {
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token": "T1", "token_type": "bearer"}`))
	}))

	result, err := c.Login(s.ctx, "a@b.com", "x")
	s.Require().NoError(err)
	s.Equal("T1", result.AccessToken)
	s.Equal("T1", s.tokens.Get())
}

func (s *ClientSuite) TestLogoutClearsToken() {
	_ = s.tokens.Set(s.ctx, "tok_123")

	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Fail("logout must not call the backend")
	}))

	err := c.Logout(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.tokens.Get())
}

// Resource method shapes

func (s *ClientSuite) TestChallengesFilterQuery() {
	var gotQuery string
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.Challenges(s.ctx, ChallengeFilters{Category: "web", Difficulty: "Easy"})
	s.Require().NoError(err)
	s.Equal("category=web&difficulty=Easy", gotQuery)
}

func (s *ClientSuite) TestSubmitChallengeBody() {
	var got submitRequest
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success": true, "message": "ok"}`))
	}))

	_, err := c.SubmitChallenge(s.ctx, "7", map[string]any{"flag": "CTF{x}"})
	s.Require().NoError(err)
	s.Equal(model.ChallengeID("7"), got.ChallengeID)
	s.Equal("CTF{x}", got.SubmissionData["flag"])
}

func (s *ClientSuite) TestLeaderboardDefaultLimit() {
	var gotQuery string
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"leaderboard": [], "total_users": 0}`))
	}))

	_, err := c.Leaderboard(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("limit=50", gotQuery)
}

func (s *ClientSuite) TestCreateAdminAdUsesQueryParameters() {
	var gotQuery, gotBody string
	c, _ := s.newClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		body, _ := json.Marshal(r.ContentLength)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"message": "created"}`))
	}))

	err := c.CreateAdminAd(s.ctx, "top", "<b>buy now</b>")
	s.Require().NoError(err)
	s.Contains(gotQuery, "position=top")
	s.Contains(gotQuery, "content=%3Cb%3Ebuy+now%3C%2Fb%3E")
	s.Equal("0", gotBody, "ad creation sends no JSON body")
}
