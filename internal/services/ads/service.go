package ads

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sort"
	"strings"

	"github.com/ctfarena/ctfarena/internal/model"
	"github.com/ctfarena/ctfarena/internal/storage"
)

// Service manages display ads and click tracking
type Service struct {
	storage storage.Storage
}

// New creates a new ads service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Active returns active ads, optionally limited to one position
func (s *Service) Active(ctx context.Context, position string) ([]*model.Ad, error) {
	all, err := s.storage.ListAds(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*model.Ad, 0, len(all))
	for _, ad := range all {
		if !ad.IsActive {
			continue
		}
		if position != "" && !strings.EqualFold(ad.Position, position) {
			continue
		}
		active = append(active, ad)
	}

	sort.Slice(active, func(i, j int) bool { return active[i].AdID < active[j].AdID })
	return active, nil
}

// Click records a click against an ad
func (s *Service) Click(ctx context.Context, id model.AdID) error {
	ad, err := s.storage.GetAd(ctx, id)
	if err != nil {
		return err
	}

	ad.Clicks++
	return s.storage.SaveAd(ctx, ad)
}

// Admin operations

// AdminList returns every ad, active or not
func (s *Service) AdminList(ctx context.Context) ([]*model.Ad, error) {
	ads, err := s.storage.ListAds(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(ads, func(i, j int) bool { return ads[i].AdID < ads[j].AdID })
	return ads, nil
}

// Create adds a new ad
func (s *Service) Create(ctx context.Context, position, content string, isActive bool) (*model.Ad, error) {
	ad := &model.Ad{
		AdID:     model.AdID(generateID("ad_")),
		Position: position,
		Content:  content,
		IsActive: isActive,
	}

	if err := s.storage.SaveAd(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Update replaces an ad's mutable fields, preserving its click count
func (s *Service) Update(ctx context.Context, id model.AdID, position, content string, isActive bool) (*model.Ad, error) {
	ad, err := s.storage.GetAd(ctx, id)
	if err != nil {
		return nil, err
	}

	ad.Position = position
	ad.Content = content
	ad.IsActive = isActive

	if err := s.storage.SaveAd(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete removes an ad
func (s *Service) Delete(ctx context.Context, id model.AdID) error {
	if _, err := s.storage.GetAd(ctx, id); err != nil {
		return err
	}
	return s.storage.DeleteAd(ctx, id)
}

func generateID(prefix string) string {
	b := make([]byte, 9)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
