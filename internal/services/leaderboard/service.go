package leaderboard

import (
	"context"
	"sort"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Service computes leaderboard rankings and per-user progress
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Rankings returns the top users ranked by score. Ties break by account age,
// older accounts first. CurrentUserRank is set when the caller is one of the
// ranked users, even if they fall outside the returned page.
func (s *Service) Rankings(ctx context.Context, currentUser *model.User, limit int) (*model.Leaderboard, error) {
	accounts, err := s.storage.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	totalChallenges, err := s.countActiveChallenges(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].User.Score != accounts[j].User.Score {
			return accounts[i].User.Score > accounts[j].User.Score
		}
		return accounts[i].User.CreatedAt.Before(accounts[j].User.CreatedAt)
	})

	result := &model.Leaderboard{
		Leaderboard: make([]model.LeaderboardEntry, 0, min(limit, len(accounts))),
		TotalUsers:  len(accounts),
	}

	for i, account := range accounts {
		rank := i + 1
		isCurrent := currentUser != nil && account.User.ID == currentUser.ID
		if isCurrent {
			r := rank
			result.CurrentUserRank = &r
		}

		if rank > limit {
			if result.CurrentUserRank != nil {
				break
			}
			continue
		}

		result.Leaderboard = append(result.Leaderboard, model.LeaderboardEntry{
			Rank:               rank,
			Username:           account.User.Username,
			Score:              account.User.Score,
			SolvedChallenges:   len(account.User.SolvedChallenges),
			ProgressPercentage: percentage(len(account.User.SolvedChallenges), totalChallenges),
			IsCurrentUser:      isCurrent,
		})
	}

	return result, nil
}

// Progress summarizes the given user's completion state
func (s *Service) Progress(ctx context.Context, user *model.User) (*model.Progress, error) {
	totalChallenges, err := s.countActiveChallenges(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Progress{
		UserID:             user.ID,
		TotalChallenges:    totalChallenges,
		SolvedChallenges:   len(user.SolvedChallenges),
		TotalScore:         user.Score,
		ProgressPercentage: percentage(len(user.SolvedChallenges), totalChallenges),
	}, nil
}

func (s *Service) countActiveChallenges(ctx context.Context) (int, error) {
	challenges, err := s.storage.ListChallenges(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, c := range challenges {
		if c.IsActive {
			count++
		}
	}
	return count, nil
}

func percentage(solved, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(solved) / float64(total) * 100
}
