package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedUser(id model.UserID, score int, createdAt time.Time, solved ...model.ChallengeID) *model.User {
	account := &model.Account{
		User: model.User{
			ID:               id,
			Email:            string(id) + "@example.com",
			Username:         string(id),
			Score:            score,
			SolvedChallenges: append([]model.ChallengeID{}, solved...),
			CreatedAt:        createdAt,
		},
	}
	_ = s.storage.SaveAccount(s.ctx, account)
	return &account.User
}

func (s *ServiceSuite) seedChallenges(n int) {
	for i := 0; i < n; i++ {
		_ = s.storage.SaveChallenge(s.ctx, &model.Challenge{
			ID:       model.ChallengeID(rune('a' + i)),
			IsActive: true,
		})
	}
}

func (s *ServiceSuite) TestRankingsOrderedByScore() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedUser("low", 50, base)
	s.seedUser("high", 300, base)
	s.seedUser("mid", 100, base)

	result, err := s.service.Rankings(s.ctx, nil, 50)
	s.Require().NoError(err)

	s.Require().Len(result.Leaderboard, 3)
	s.Equal("high", result.Leaderboard[0].Username)
	s.Equal("mid", result.Leaderboard[1].Username)
	s.Equal("low", result.Leaderboard[2].Username)
	s.Equal(1, result.Leaderboard[0].Rank)
	s.Equal(3, result.Leaderboard[2].Rank)
	s.Equal(3, result.TotalUsers)
}

func (s *ServiceSuite) TestRankingsTieBreaksByAccountAge() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedUser("newer", 100, base.Add(time.Hour))
	s.seedUser("older", 100, base)

	result, err := s.service.Rankings(s.ctx, nil, 50)
	s.Require().NoError(err)

	s.Equal("older", result.Leaderboard[0].Username)
	s.Equal("newer", result.Leaderboard[1].Username)
}

func (s *ServiceSuite) TestRankingsRespectsLimit() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.seedUser(model.UserID(rune('a'+i)), 100-i, base)
	}

	result, err := s.service.Rankings(s.ctx, nil, 3)
	s.Require().NoError(err)

	s.Len(result.Leaderboard, 3)
	s.Equal(5, result.TotalUsers)
}

func (s *ServiceSuite) TestRankingsMarksCurrentUser() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedUser("other", 200, base)
	me := s.seedUser("me", 100, base)

	result, err := s.service.Rankings(s.ctx, me, 50)
	s.Require().NoError(err)

	s.Require().NotNil(result.CurrentUserRank)
	s.Equal(2, *result.CurrentUserRank)
	s.False(result.Leaderboard[0].IsCurrentUser)
	s.True(result.Leaderboard[1].IsCurrentUser)
}

func (s *ServiceSuite) TestRankingsFindsCurrentUserBeyondLimit() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.seedUser(model.UserID(rune('a'+i)), 100-i, base)
	}
	me := s.seedUser("me", 1, base)

	result, err := s.service.Rankings(s.ctx, me, 3)
	s.Require().NoError(err)

	s.Len(result.Leaderboard, 3)
	s.Require().NotNil(result.CurrentUserRank)
	s.Equal(6, *result.CurrentUserRank)
}

func (s *ServiceSuite) TestRankingsAnonymousHasNoCurrentRank() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedUser("a", 100, base)

	result, err := s.service.Rankings(s.ctx, nil, 50)
	s.Require().NoError(err)
	s.Nil(result.CurrentUserRank)
}

func (s *ServiceSuite) TestRankingsComputesProgressPercentage() {
	s.seedChallenges(4)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seedUser("a", 100, base, "a", "b")

	result, err := s.service.Rankings(s.ctx, nil, 50)
	s.Require().NoError(err)

	s.Equal(2, result.Leaderboard[0].SolvedChallenges)
	s.InDelta(50.0, result.Leaderboard[0].ProgressPercentage, 0.001)
}

func (s *ServiceSuite) TestRankingsEmpty() {
	result, err := s.service.Rankings(s.ctx, nil, 50)
	s.Require().NoError(err)
	s.Empty(result.Leaderboard)
	s.Equal(0, result.TotalUsers)
	s.Nil(result.CurrentUserRank)
}

func (s *ServiceSuite) TestProgress() {
	s.seedChallenges(4)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	me := s.seedUser("me", 300, base, "a", "b", "c")

	progress, err := s.service.Progress(s.ctx, me)
	s.Require().NoError(err)

	s.Equal(model.UserID("me"), progress.UserID)
	s.Equal(4, progress.TotalChallenges)
	s.Equal(3, progress.SolvedChallenges)
	s.Equal(300, progress.TotalScore)
	s.InDelta(75.0, progress.ProgressPercentage, 0.001)
}

func (s *ServiceSuite) TestProgressWithNoChallenges() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	me := s.seedUser("me", 0, base)

	progress, err := s.service.Progress(s.ctx, me)
	s.Require().NoError(err)
	s.Equal(0.0, progress.ProgressPercentage)
}
