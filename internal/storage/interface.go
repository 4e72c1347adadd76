package storage

import (
	"context"

	"github.com/ctfarena/ctfarena/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.UserID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)

	// Challenge operations
	SaveChallenge(ctx context.Context, challenge *model.Challenge) error
	GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error)
	ListChallenges(ctx context.Context) ([]*model.Challenge, error)
	DeleteChallenge(ctx context.Context, id model.ChallengeID) error

	// Ad operations
	SaveAd(ctx context.Context, ad *model.Ad) error
	GetAd(ctx context.Context, id model.AdID) (*model.Ad, error)
	ListAds(ctx context.Context) ([]*model.Ad, error)
	DeleteAd(ctx context.Context, id model.AdID) error

	// Page visit operations
	SaveVisit(ctx context.Context, visit *model.PageVisit) error
	ListVisits(ctx context.Context) ([]*model.PageVisit, error)
}
