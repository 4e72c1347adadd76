package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ctfarena/ctfarena/internal/dependencies/clock"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Filters narrows a challenge listing. Zero values mean no filter.
type Filters struct {
	Category   string
	Difficulty string
}

// Service manages the challenge catalog and flag submissions
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new challenge service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// List returns active challenges matching the filters, ordered by points then
// title. Verifier-side config is stripped; IsSolved reflects the given user,
// or stays false for anonymous callers.
func (s *Service) List(ctx context.Context, user *model.User, filters Filters) ([]*model.Challenge, error) {
	all, err := s.storage.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	challenges := make([]*model.Challenge, 0, len(all))
	for _, c := range all {
		if !c.IsActive {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(c.Category, filters.Category) {
			continue
		}
		if filters.Difficulty != "" && !strings.EqualFold(c.Difficulty, filters.Difficulty) {
			continue
		}
		challenges = append(challenges, s.publicView(c, user))
	}

	sort.Slice(challenges, func(i, j int) bool {
		if challenges[i].Points != challenges[j].Points {
			return challenges[i].Points < challenges[j].Points
		}
		return challenges[i].Title < challenges[j].Title
	})

	return challenges, nil
}

// Get returns a single active challenge with verifier config stripped
func (s *Service) Get(ctx context.Context, user *model.User, id model.ChallengeID) (*model.Challenge, error) {
	challenge, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	if !challenge.IsActive {
		return nil, model.ErrChallengeNotFound
	}
	return s.publicView(challenge, user), nil
}

// Submit verifies a flag submission against the challenge's expected flag.
// An incorrect flag is a normal result, not an error. Re-solving an already
// solved challenge acknowledges success but awards no points.
func (s *Service) Submit(ctx context.Context, userID model.UserID, id model.ChallengeID, submission map[string]any) (*model.SubmissionResult, error) {
	challenge, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}
	if !challenge.IsActive {
		return nil, model.ErrChallengeInactive
	}

	flag, ok := submission["flag"].(string)
	if !ok || flag == "" {
		return nil, model.ErrMissingFlag
	}

	account, err := s.storage.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	if account.User.HasSolved(id) {
		return &model.SubmissionResult{
			Success: true,
			Message: "Challenge already solved",
		}, nil
	}

	if flag != challenge.Flag() {
		return &model.SubmissionResult{
			Success: false,
			Message: "Incorrect flag. Try again!",
		}, nil
	}

	account.User.SolvedChallenges = append(account.User.SolvedChallenges, id)
	account.User.Score += challenge.Points
	account.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	challenge.SolveCount++
	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}

	return &model.SubmissionResult{
		Success:      true,
		Message:      fmt.Sprintf("Correct! You earned %d points.", challenge.Points),
		Flag:         flag,
		PointsEarned: challenge.Points,
	}, nil
}

// Categories returns the distinct categories across active challenges, sorted
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(c *model.Challenge) string { return c.Category })
}

// Difficulties returns the distinct difficulty levels across active
// challenges, sorted
func (s *Service) Difficulties(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, func(c *model.Challenge) string { return c.Difficulty })
}

func (s *Service) distinct(ctx context.Context, key func(*model.Challenge) string) ([]string, error) {
	challenges, err := s.storage.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, c := range challenges {
		if !c.IsActive {
			continue
		}
		v := key(c)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	sort.Strings(values)
	return values, nil
}

// Admin operations: these see and return the full challenge record including
// verifier-side config, and ignore the active flag.

// AdminList returns every challenge, active or not
func (s *Service) AdminList(ctx context.Context) ([]*model.Challenge, error) {
	challenges, err := s.storage.ListChallenges(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(challenges, func(i, j int) bool {
		if challenges[i].Points != challenges[j].Points {
			return challenges[i].Points < challenges[j].Points
		}
		return challenges[i].Title < challenges[j].Title
	})
	return challenges, nil
}

// AdminGet returns one challenge with full config
func (s *Service) AdminGet(ctx context.Context, id model.ChallengeID) (*model.Challenge, error) {
	return s.storage.GetChallenge(ctx, id)
}

// Create adds a new challenge to the catalog
func (s *Service) Create(ctx context.Context, challenge *model.Challenge) (*model.Challenge, error) {
	if challenge.ID == "" {
		challenge.ID = model.ChallengeID(slugify(challenge.Title))
	}

	if _, err := s.storage.GetChallenge(ctx, challenge.ID); err == nil {
		return nil, fmt.Errorf("challenge %q already exists", challenge.ID)
	} else if !errors.Is(err, model.ErrChallengeNotFound) {
		return nil, err
	}

	if challenge.Slug == "" {
		challenge.Slug = slugify(challenge.Title)
	}
	challenge.CreatedAt = s.clock.Now()
	challenge.SolveCount = 0

	if err := s.storage.SaveChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Update applies a partial update. Only keys present in the patch change.
func (s *Service) Update(ctx context.Context, id model.ChallengeID, patch map[string]any) (*model.Challenge, error) {
	challenge, err := s.storage.GetChallenge(ctx, id)
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so patch keys line up with wire field names
	base, err := json.Marshal(challenge)
	if err != nil {
		return nil, err
	}
	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	var updated model.Challenge
	if err := json.Unmarshal(data, &updated); err != nil {
		return nil, err
	}
	updated.ID = challenge.ID
	updated.CreatedAt = challenge.CreatedAt

	if err := s.storage.SaveChallenge(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a challenge from the catalog
func (s *Service) Delete(ctx context.Context, id model.ChallengeID) error {
	if _, err := s.storage.GetChallenge(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteChallenge(ctx, id)
}

// LoadFromFile seeds the catalog from a JSON file of challenge records.
// Existing challenges with the same ID are overwritten.
func (s *Service) LoadFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var challenges []*model.Challenge
	if err := json.Unmarshal(data, &challenges); err != nil {
		return 0, fmt.Errorf("parsing challenge seed %s: %w", path, err)
	}

	for _, c := range challenges {
		if c.Slug == "" {
			c.Slug = slugify(c.Title)
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = s.clock.Now()
		}
		if err := s.storage.SaveChallenge(ctx, c); err != nil {
			return 0, err
		}
	}
	return len(challenges), nil
}

// publicView copies a challenge with verifier config stripped and the solved
// marker set for the viewing user
func (s *Service) publicView(c *model.Challenge, user *model.User) *model.Challenge {
	view := *c
	view.BackendConfig = nil
	view.IsSolved = user != nil && user.HasSolved(c.ID)
	return &view
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	return strings.Trim(slug, "-")
}
