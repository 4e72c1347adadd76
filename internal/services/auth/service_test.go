package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ctfarena/ctfarena/internal/dependencies/mocks"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.Equal("alice@example.com", user.Email)
	s.Equal("alice", user.Username)
	s.Equal(model.RoleUser, user.Role)
	s.NotNil(user.SolvedChallenges)
	s.Empty(user.SolvedChallenges)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	user, _ := s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	account, err := s.storage.GetAccount(s.ctx, user.ID)
	s.Require().NoError(err)
	s.NotEmpty(account.PasswordHash)
	s.NotEqual("password123", account.PasswordHash)
}

func (s *ServiceSuite) TestRegisterWithEmptyPasswordUsesDerivedDefault() {
	_, err := s.service.Register(s.ctx, "bob@example.com", "bob", "")
	s.Require().NoError(err)

	// The derived default password must authenticate
	session, err := s.service.Login(s.ctx, "bob@example.com", model.DefaultPassword("bob", "bob@example.com"))
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestRegisterFailsIfEmailExists() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	_, err := s.service.Register(s.ctx, "alice@example.com", "alice2", "different")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	_, err := s.service.Register(s.ctx, "other@example.com", "alice", "different")
	s.ErrorIs(err, model.ErrUsernameExists)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	session, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	_, err := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginRecordsLastLogin() {
	user, _ := s.service.Register(s.ctx, "alice@example.com", "alice", "password123")

	s.clock.Advance(time.Hour)
	_, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)

	account, err := s.storage.GetAccount(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(account.User.LastLogin)
	s.Equal(s.clock.Now(), *account.User.LastLogin)
}

// ValidateSession tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	registered, _ := s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	user, err := s.service.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
}

func (s *ServiceSuite) TestValidateSessionFailsWithInvalidToken() {
	_, err := s.service.ValidateSession(s.ctx, "invalid_token")
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionFailsWhenExpired() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	// Advance time past expiration
	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionReadsThroughToStorage() {
	registered, _ := s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	// Mutate the stored account behind the service's back
	account, _ := s.storage.GetAccount(s.ctx, registered.ID)
	account.User.Score = 500
	_ = s.storage.SaveAccount(s.ctx, account)

	user, err := s.service.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(500, user.Score)
}

// InvalidateSession tests

func (s *ServiceSuite) TestInvalidateSessionRemovesSession() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSessionNoopForUnknownToken() {
	// Should not panic
	s.service.InvalidateSession("unknown_token")
}

// EnsureAdmin tests

func (s *ServiceSuite) TestEnsureAdminCreatesAccount() {
	err := s.service.EnsureAdmin(s.ctx, "admin@example.com", "admin", "adminpass")
	s.Require().NoError(err)

	account, err := s.storage.GetAccountByEmail(s.ctx, "admin@example.com")
	s.Require().NoError(err)
	s.Equal(model.RoleAdmin, account.User.Role)

	session, err := s.service.Login(s.ctx, "admin@example.com", "adminpass")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)
}

func (s *ServiceSuite) TestEnsureAdminPromotesExistingAccount() {
	_, _ = s.service.Register(s.ctx, "admin@example.com", "admin", "original")

	err := s.service.EnsureAdmin(s.ctx, "admin@example.com", "admin", "ignored")
	s.Require().NoError(err)

	account, _ := s.storage.GetAccountByEmail(s.ctx, "admin@example.com")
	s.Equal(model.RoleAdmin, account.User.Role)

	// Original password still works
	_, err = s.service.Login(s.ctx, "admin@example.com", "original")
	s.NoError(err)
}

func (s *ServiceSuite) TestEnsureAdminIsIdempotent() {
	s.Require().NoError(s.service.EnsureAdmin(s.ctx, "admin@example.com", "admin", "adminpass"))
	s.Require().NoError(s.service.EnsureAdmin(s.ctx, "admin@example.com", "admin", "adminpass"))
}

// CleanExpiredSessions tests

func (s *ServiceSuite) TestCleanExpiredSessionsRemovesExpired() {
	_, _ = s.service.Register(s.ctx, "alice@example.com", "alice", "password123")
	session1, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	// Advance time so session1 expires
	s.clock.Advance(25 * time.Hour)

	session2, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	s.service.CleanExpiredSessions()

	_, err := s.service.ValidateSession(s.ctx, session1.Token)
	s.ErrorIs(err, model.ErrInvalidSession)

	_, err = s.service.ValidateSession(s.ctx, session2.Token)
	s.NoError(err)
}
