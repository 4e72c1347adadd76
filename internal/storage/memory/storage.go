package memory

import (
	"context"
	"sync"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.UserID]*model.Account
	emailIndex    map[string]model.UserID
	usernameIndex map[string]model.UserID
	challenges    map[model.ChallengeID]*model.Challenge
	ads           map[model.AdID]*model.Ad
	visits        []*model.PageVisit
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.UserID]*model.Account),
		emailIndex:    make(map[string]model.UserID),
		usernameIndex: make(map[string]model.UserID),
		challenges:    make(map[model.ChallengeID]*model.Challenge),
		ads:           make(map[model.AdID]*model.Ad),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.User.ID] = account
	s.emailIndex[account.User.Email] = account.User.ID
	s.usernameIndex[account.User.Username] = account.User.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.UserID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return account, nil
}

func (s *Storage) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]*model.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// Challenge operations

func (s *Storage) SaveChallenge(ctx context.Context, challenge *model.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[challenge.ID] = challenge
	return nil
}

func (s *Storage) GetChallenge(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[id]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return challenge, nil
}

func (s *Storage) ListChallenges(ctx context.Context) ([]*model.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenges := make([]*model.Challenge, 0, len(s.challenges))
	for _, challenge := range s.challenges {
		challenges = append(challenges, challenge)
	}
	return challenges, nil
}

func (s *Storage) DeleteChallenge(ctx context.Context, id model.ChallengeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, id)
	return nil
}

// Ad operations

func (s *Storage) SaveAd(ctx context.Context, ad *model.Ad) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ads[ad.AdID] = ad
	return nil
}

func (s *Storage) GetAd(ctx context.Context, id model.AdID) (*model.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ad, ok := s.ads[id]
	if !ok {
		return nil, model.ErrAdNotFound
	}
	return ad, nil
}

func (s *Storage) ListAds(ctx context.Context) ([]*model.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ads := make([]*model.Ad, 0, len(s.ads))
	for _, ad := range s.ads {
		ads = append(ads, ad)
	}
	return ads, nil
}

func (s *Storage) DeleteAd(ctx context.Context, id model.AdID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ads, id)
	return nil
}

// Page visit operations

func (s *Storage) SaveVisit(ctx context.Context, visit *model.PageVisit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, visit)
	return nil
}

func (s *Storage) ListVisits(ctx context.Context) ([]*model.PageVisit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visits := make([]*model.PageVisit, len(s.visits))
	copy(visits, s.visits)
	return visits, nil
}
