package service

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storeratings/internal/auth"
	"storeratings/internal/cache"
	"storeratings/internal/errors"
	"storeratings/internal/model"
	"storeratings/internal/repository"
	"storeratings/internal/validation"
)

const (
	dashboardCacheKey = "admin:dashboard"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardStats are the platform-wide counts on the admin dashboard.
type DashboardStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalStores  int64 `json:"total_stores"`
	TotalRatings int64 `json:"total_ratings"`
}

// AdminService covers the system_admin operations: account creation and the
// user/store listings.
type AdminService interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	CreateUser(ctx context.Context, name, email, password, address, role string) (*model.User, error)
	CreateStore(ctx context.Context, name, email, password, address string) (*model.Store, error)
	ListUsers(ctx context.Context, params repository.ListParams) (Page[model.User], error)
	ListStores(ctx context.Context, params repository.ListParams) (Page[model.Store], error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetStore(ctx context.Context, id uint) (*model.Store, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	cache      *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository, cache *cache.Client) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
	}
}

// Dashboard returns the entity counts, cached briefly since they are shown on
// every admin page load.
func (s *adminService) Dashboard(ctx context.Context) (DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached DashboardStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	var stats DashboardStats
	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalStores, err = s.storeRepo.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count stores: %w", err)
	}
	if stats.TotalRatings, err = s.ratingRepo.Count(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("count ratings: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return stats, nil
}

// CreateUser creates a user with an admin-chosen role. Only the two user
// roles are assignable here; store owners exist as Store rows.
func (s *adminService) CreateUser(ctx context.Context, name, email, password, address, role string) (*model.User, error) {
	if err := validateAccountFields(name, email, password, address); err != nil {
		return nil, err
	}
	if role != model.RoleSystemAdmin && role != model.RoleNormalUser {
		return nil, errors.NewValidation(fmt.Errorf("invalid role"))
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrEmailTaken
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Address:  address,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return user, nil
}

// CreateStore registers a store with its login identity. The average starts
// at zero until the first rating arrives.
func (s *adminService) CreateStore(ctx context.Context, name, email, password, address string) (*model.Store, error) {
	if err := validateAccountFields(name, email, password, address); err != nil {
		return nil, err
	}

	if _, err := s.storeRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrEmailTaken
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check store existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	store := &model.Store{
		Name:     name,
		Email:    email,
		Password: hashed,
		Address:  address,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create store: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return store, nil
}

func (s *adminService) ListUsers(ctx context.Context, params repository.ListParams) (Page[model.User], error) {
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return Page[model.User]{}, fmt.Errorf("list users: %w", err)
	}
	return newPage(users, total, params), nil
}

func (s *adminService) ListStores(ctx context.Context, params repository.ListParams) (Page[model.Store], error) {
	stores, total, err := s.storeRepo.List(ctx, params)
	if err != nil {
		return Page[model.Store]{}, fmt.Errorf("list stores: %w", err)
	}
	return newPage(stores, total, params), nil
}

func (s *adminService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *adminService) GetStore(ctx context.Context, id uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return store, nil
}

func validateAccountFields(name, email, password, address string) error {
	if err := validation.Name(name); err != nil {
		return errors.NewValidation(err)
	}
	if err := validation.Email(email); err != nil {
		return errors.NewValidation(err)
	}
	if err := validation.Password(password); err != nil {
		return errors.NewValidation(err)
	}
	if err := validation.Address(address); err != nil {
		return errors.NewValidation(err)
	}
	return nil
}
