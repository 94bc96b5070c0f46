package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"storeratings/internal/errors"
	"storeratings/internal/repository"
	"storeratings/internal/validation"
)

// dbTimeout bounds each persistence round-trip. The transaction rolls back on
// timeout, so the rating write and the average update are never observed
// half-applied.
const dbTimeout = 5 * time.Second

// SubmitResult reports whether a submission created a new rating or updated
// the caller's prior one.
type SubmitResult struct {
	Created bool
}

// RatingService is the rating upsert plus store-average recomputation.
type RatingService interface {
	SubmitRating(ctx context.Context, userID, storeID uint, value string) (SubmitResult, error)
	UpdateRating(ctx context.Context, userID, storeID uint, value string) error
	MyRatings(ctx context.Context, userID uint) ([]repository.OwnRating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
	// Mutex map for per-store serialization of average recomputation.
	storeMutexes sync.Map
}

// NewRatingService creates a new rating service.
func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

// getMutex returns the mutex for a specific store ID. Different stores have
// different mutexes and never block each other.
func (s *ratingService) getMutex(storeID uint) *sync.Mutex {
	value, _ := s.storeMutexes.LoadOrStore(storeID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

// SubmitRating validates the value, confirms the store exists, then creates
// or updates the caller's rating and recomputes the store average as one
// atomic unit.
func (s *ratingService) SubmitRating(ctx context.Context, userID, storeID uint, value string) (SubmitResult, error) {
	rating, err := validation.Rating(value)
	if err != nil {
		return SubmitResult{}, errors.NewValidation(err)
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return SubmitResult{}, translateStoreErr(err)
	}

	mutex := s.getMutex(storeID)
	mutex.Lock()
	defer mutex.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	created, err := s.ratingRepo.Upsert(opCtx, userID, storeID, rating)
	if err != nil {
		return SubmitResult{}, translateSubmitErr(err)
	}
	return SubmitResult{Created: created}, nil
}

// UpdateRating is the update-only entry: it fails with a not-found error when
// the caller has no prior rating for the store.
func (s *ratingService) UpdateRating(ctx context.Context, userID, storeID uint, value string) error {
	rating, err := validation.Rating(value)
	if err != nil {
		return errors.NewValidation(err)
	}

	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return translateStoreErr(err)
	}

	if _, err := s.ratingRepo.FindByUserAndStore(ctx, userID, storeID); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRatingNotFound
		}
		return fmt.Errorf("find rating: %w", err)
	}

	mutex := s.getMutex(storeID)
	mutex.Lock()
	defer mutex.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.ratingRepo.UpdateExisting(opCtx, userID, storeID, rating); err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRatingNotFound
		}
		return translateSubmitErr(err)
	}
	return nil
}

// MyRatings lists the caller's ratings with the rated stores joined.
func (s *ratingService) MyRatings(ctx context.Context, userID uint) ([]repository.OwnRating, error) {
	opCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	return s.ratingRepo.ListByUserWithStore(opCtx, userID)
}

func translateStoreErr(err error) error {
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrStoreNotFound
	}
	return fmt.Errorf("find store: %w", err)
}

func translateSubmitErr(err error) error {
	switch {
	case goerrors.Is(err, gorm.ErrRecordNotFound):
		return errors.ErrStoreNotFound
	case goerrors.Is(err, context.DeadlineExceeded):
		return errors.ErrUnavailable
	default:
		return fmt.Errorf("submit rating: %w", err)
	}
}
