package analytics

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/ctfarena/ctfarena/internal/dependencies/clock"
	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Service records page-view analytics
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a new analytics service
func New(storage storage.Storage, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
	}
}

// RecordVisit stores one page view. UserID may be empty for anonymous views.
func (s *Service) RecordVisit(ctx context.Context, page, userAgent, ip string, userID model.UserID) (*model.PageVisit, error) {
	visit := &model.PageVisit{
		ID:        generateID("v_"),
		Page:      page,
		UserAgent: userAgent,
		IP:        ip,
		UserID:    userID,
		Timestamp: s.clock.Now(),
	}

	if err := s.storage.SaveVisit(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// Visits returns all recorded page views in arrival order
func (s *Service) Visits(ctx context.Context) ([]*model.PageVisit, error) {
	return s.storage.ListVisits(ctx)
}

func generateID(prefix string) string {
	b := make([]byte, 9)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
