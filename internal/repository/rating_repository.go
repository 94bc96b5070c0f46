package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storeratings/internal/model"
)

// Columns rating listings can be sorted by.
var ratingSortColumns = []string{"rating", "created_at"}

// RaterRating is a rating row joined with the rater shown to store owners.
type RaterRating struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// OwnRating is a rating row joined with the rated store, shown to the rater.
type OwnRating struct {
	ID           uint      `json:"id"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`
	StoreID      uint      `json:"store_id"`
	StoreName    string    `json:"store_name"`
	StoreAddress string    `json:"store_address"`
}

// RatingRepository defines rating persistence operations. Upsert and
// UpdateExisting are the atomic recompute-and-write primitives: the rating
// write and the store average update commit together or not at all.
type RatingRepository interface {
	FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error)
	Upsert(ctx context.Context, userID, storeID uint, value int) (created bool, err error)
	UpdateExisting(ctx context.Context, userID, storeID uint, value int) error
	AverageForStore(ctx context.Context, storeID uint) (decimal.Decimal, error)
	ListByStoreWithRater(ctx context.Context, storeID uint, params ListParams) ([]RaterRating, int64, error)
	ListByUserWithStore(ctx context.Context, userID uint) ([]OwnRating, error)
	CountByStore(ctx context.Context, storeID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository builds a GORM-backed repository.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Upsert creates or updates the caller's rating for a store and recomputes
// the store's average inside one transaction. The store row is locked for the
// duration, so concurrent submissions for the same store serialize while
// other stores stay unaffected. Returns whether a new rating row was created.
func (r *ratingRepository) Upsert(ctx context.Context, userID, storeID uint, value int) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store model.Store
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&store, storeID).Error; err != nil {
			return err
		}

		var existing model.Rating
		err := tx.Where("user_id = ? AND store_id = ?", userID, storeID).
			First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("rating", value).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating := model.Rating{UserID: userID, StoreID: storeID, Rating: value}
			if err := tx.Create(&rating).Error; err != nil {
				// A concurrent first-time submission won the unique index;
				// resolve the conflict by updating in place.
				if !errors.Is(err, gorm.ErrDuplicatedKey) {
					return err
				}
				if err := tx.Model(&model.Rating{}).
					Where("user_id = ? AND store_id = ?", userID, storeID).
					Update("rating", value).Error; err != nil {
					return err
				}
			} else {
				created = true
			}
		default:
			return err
		}

		return recomputeAverage(tx, storeID)
	})
	return created, err
}

// UpdateExisting updates the caller's prior rating or fails with
// gorm.ErrRecordNotFound when none exists. Same atomic unit as Upsert.
func (r *ratingRepository) UpdateExisting(ctx context.Context, userID, storeID uint, value int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store model.Store
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&store, storeID).Error; err != nil {
			return err
		}

		var existing model.Rating
		if err := tx.Where("user_id = ? AND store_id = ?", userID, storeID).
			First(&existing).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Update("rating", value).Error; err != nil {
			return err
		}

		return recomputeAverage(tx, storeID)
	})
}

// recomputeAverage materializes round(mean(ratings), 1) onto the store row.
// The caller holds the store row lock.
func recomputeAverage(tx *gorm.DB, storeID uint) error {
	var avg decimal.Decimal
	row := tx.Model(&model.Rating{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(ROUND(AVG(rating), 1), 0)").
		Row()
	if err := row.Scan(&avg); err != nil {
		return err
	}
	return tx.Model(&model.Store{}).
		Where("id = ?", storeID).
		Update("average_rating", avg).Error
}

// AverageForStore returns the current rounded mean without touching the
// materialized column.
func (r *ratingRepository) AverageForStore(ctx context.Context, storeID uint) (decimal.Decimal, error) {
	var avg decimal.Decimal
	row := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(ROUND(AVG(rating), 1), 0)").
		Row()
	if err := row.Scan(&avg); err != nil {
		return decimal.Zero, err
	}
	return avg, nil
}

// ListByStoreWithRater returns one page of a store's ratings joined with the
// rater's public fields, newest first by default.
func (r *ratingRepository) ListByStoreWithRater(ctx context.Context, storeID uint, params ListParams) ([]RaterRating, int64, error) {
	params = params.normalized(ratingSortColumns, "created_at")

	filtered := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.Rating{}).
			Where("ratings.store_id = ?", storeID)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []RaterRating
	q := filtered().
		Select("ratings.id, ratings.rating, ratings.created_at, users.id AS user_id, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = ratings.user_id")
	q = applyOrder(q, params, "ratings").Limit(params.Limit).Offset(params.Offset())
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByUserWithStore returns all of a user's ratings joined with the rated
// stores.
func (r *ratingRepository) ListByUserWithStore(ctx context.Context, userID uint) ([]OwnRating, error) {
	var rows []OwnRating
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("ratings.user_id = ?", userID).
		Select("ratings.id, ratings.rating, ratings.created_at, stores.id AS store_id, stores.name AS store_name, stores.address AS store_address").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Order("ratings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ratingRepository) CountByStore(ctx context.Context, storeID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("store_id = ?", storeID).
		Count(&total).Error
	return total, err
}

func (r *ratingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&total).Error
	return total, err
}
