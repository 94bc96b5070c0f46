package repository

import (
	"context"

	"gorm.io/gorm"

	"storeratings/internal/model"
)

// Columns users can be searched and sorted by.
var (
	userSearchColumns = []string{"name", "email", "address", "role"}
	userSortColumns   = []string{"name", "email", "address", "role", "created_at"}
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	List(ctx context.Context, params ListParams) ([]model.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hash).Error
}

// List returns one page of users matching params plus the pre-pagination
// match count.
func (r *userRepository) List(ctx context.Context, params ListParams) ([]model.User, int64, error) {
	params = params.normalized(userSortColumns, "name")

	filtered := func() *gorm.DB {
		return applySearch(r.db.WithContext(ctx).Model(&model.User{}), params.Search, userSearchColumns)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	q := applyOrder(filtered(), params, "users").Limit(params.Limit).Offset(params.Offset())
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error
	return total, err
}
