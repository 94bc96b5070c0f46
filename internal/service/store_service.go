package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"storeratings/internal/repository"
)

// OwnerDashboard is the store owner's view of their own feedback.
type OwnerDashboard struct {
	AverageRating decimal.Decimal          `json:"average_rating"`
	TotalRatings  int64                    `json:"total_ratings"`
	Ratings       []repository.RaterRating `json:"ratings"`
}

// StoreService covers the store browse for normal users and the feedback
// views for store owners.
type StoreService interface {
	BrowseStores(ctx context.Context, userID uint, params repository.ListParams) (Page[repository.StoreWithUserRating], error)
	OwnerDashboard(ctx context.Context, storeID uint) (OwnerDashboard, error)
	OwnerRatings(ctx context.Context, storeID uint, params repository.ListParams) (Page[repository.RaterRating], error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) StoreService {
	return &storeService{storeRepo: storeRepo, ratingRepo: ratingRepo}
}

// BrowseStores lists stores with the caller's own rating joined per row.
func (s *storeService) BrowseStores(ctx context.Context, userID uint, params repository.ListParams) (Page[repository.StoreWithUserRating], error) {
	stores, total, err := s.storeRepo.ListWithUserRating(ctx, params, userID)
	if err != nil {
		return Page[repository.StoreWithUserRating]{}, fmt.Errorf("list stores: %w", err)
	}
	return newPage(stores, total, params), nil
}

// OwnerDashboard returns the live average, the rating count and the recent
// ratings with raters for the owner's store.
func (s *storeService) OwnerDashboard(ctx context.Context, storeID uint) (OwnerDashboard, error) {
	avg, err := s.ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return OwnerDashboard{}, fmt.Errorf("average for store: %w", err)
	}
	ratings, total, err := s.ratingRepo.ListByStoreWithRater(ctx, storeID, repository.ListParams{SortOrder: "DESC"})
	if err != nil {
		return OwnerDashboard{}, fmt.Errorf("list ratings: %w", err)
	}
	return OwnerDashboard{
		AverageRating: avg,
		TotalRatings:  total,
		Ratings:       ratings,
	}, nil
}

// OwnerRatings pages through the store's ratings joined with rater details.
func (s *storeService) OwnerRatings(ctx context.Context, storeID uint, params repository.ListParams) (Page[repository.RaterRating], error) {
	ratings, total, err := s.ratingRepo.ListByStoreWithRater(ctx, storeID, params)
	if err != nil {
		return Page[repository.RaterRating]{}, fmt.Errorf("list ratings: %w", err)
	}
	return newPage(ratings, total, params), nil
}
