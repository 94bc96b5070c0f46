package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storeratings/internal/model"
)

// Columns stores can be searched and sorted by.
var (
	storeSearchColumns = []string{"name", "email", "address"}
	storeSortColumns   = []string{"name", "email", "address", "average_rating", "created_at"}
)

// StoreWithUserRating is a store row joined with the requesting user's own
// rating, if any.
type StoreWithUserRating struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	AverageRating decimal.Decimal `json:"average_rating"`
	UserRating    *int            `json:"user_rating"`
}

// StoreRepository defines store persistence operations.
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id uint) (*model.Store, error)
	FindByEmail(ctx context.Context, email string) (*model.Store, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	List(ctx context.Context, params ListParams) ([]model.Store, int64, error)
	ListWithUserRating(ctx context.Context, params ListParams, userID uint) ([]StoreWithUserRating, int64, error)
	Count(ctx context.Context) (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository builds a GORM-backed repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepository) FindByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByEmail(ctx context.Context, email string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).
		Where("id = ?", id).
		Update("password", hash).Error
}

// List returns one page of stores matching params plus the pre-pagination
// match count.
func (r *storeRepository) List(ctx context.Context, params ListParams) ([]model.Store, int64, error) {
	params = params.normalized(storeSortColumns, "name")

	filtered := func() *gorm.DB {
		return applySearch(r.db.WithContext(ctx).Model(&model.Store{}), params.Search, storeSearchColumns)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stores []model.Store
	q := applyOrder(filtered(), params, "stores").Limit(params.Limit).Offset(params.Offset())
	if err := q.Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// ListWithUserRating is the normal-user store browse: each row carries the
// caller's own rating for that store when one exists.
func (r *storeRepository) ListWithUserRating(ctx context.Context, params ListParams, userID uint) ([]StoreWithUserRating, int64, error) {
	params = params.normalized(storeSortColumns, "name")

	filtered := func() *gorm.DB {
		return applySearch(r.db.WithContext(ctx).Model(&model.Store{}), params.Search, storeSearchColumns)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []StoreWithUserRating
	q := filtered().
		Select("stores.id, stores.name, stores.address, stores.average_rating, ratings.rating AS user_rating").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id AND ratings.user_id = ?", userID)
	q = applyOrder(q, params, "stores").Limit(params.Limit).Offset(params.Offset())
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *storeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).Count(&total).Error
	return total, err
}
