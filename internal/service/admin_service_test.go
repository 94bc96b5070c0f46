package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storeratings/internal/auth"
	"storeratings/internal/errors"
	"storeratings/internal/model"
	"storeratings/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, params repository.ListParams) ([]model.User, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

const (
	validName     = "Jonathan Maxwell Strange"
	validPassword = "Abcdef1!"
	validAddress  = "12 Hanover Square, London"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		address   string
		role      string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:      "name too short",
			userName:  "Short Name",
			email:     "a@b.com",
			password:  validPassword,
			address:   validAddress,
			role:      model.RoleNormalUser,
			setupMock: func(m *MockUserRepository) {},
			wantErr:   &errors.ValidationError{},
		},
		{
			name:      "password missing special character",
			userName:  validName,
			email:     "a@b.com",
			password:  "Abcdefg1",
			address:   validAddress,
			role:      model.RoleNormalUser,
			setupMock: func(m *MockUserRepository) {},
			wantErr:   &errors.ValidationError{},
		},
		{
			name:      "store_owner is not an assignable user role",
			userName:  validName,
			email:     "a@b.com",
			password:  validPassword,
			address:   validAddress,
			role:      model.RoleStoreOwner,
			setupMock: func(m *MockUserRepository) {},
			wantErr:   &errors.ValidationError{},
		},
		{
			name:     "email already registered",
			userName: validName,
			email:    "taken@b.com",
			password: validPassword,
			address:  validAddress,
			role:     model.RoleNormalUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@b.com").
					Return(&model.User{ID: 1, Email: "taken@b.com"}, nil)
			},
			wantErr: errors.ErrEmailTaken,
		},
		{
			name:     "duplicate key on insert maps to conflict",
			userName: validName,
			email:    "raced@b.com",
			password: validPassword,
			address:  validAddress,
			role:     model.RoleNormalUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "raced@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: errors.ErrEmailTaken,
		},
		{
			name:     "success as system_admin",
			userName: validName,
			email:    "admin2@b.com",
			password: validPassword,
			address:  validAddress,
			role:     model.RoleSystemAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "admin2@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			svc := NewAdminService(mockUsers, new(MockStoreRepository), new(MockRatingRepository), nil)
			user, err := svc.CreateUser(context.Background(), tt.userName, tt.email, tt.password, tt.address, tt.role)

			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.role, user.Role)
				// The stored password is a hash, never the plaintext.
				assert.NotEqual(t, tt.password, user.Password)
				assert.True(t, auth.CheckPassword(tt.password, user.Password))
			} else if _, ok := tt.wantErr.(*errors.ValidationError); ok {
				var got *errors.ValidationError
				assert.ErrorAs(t, err, &got)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			mockUsers.AssertExpectations(t)
		})
	}
}

func TestCreateStoreStartsWithZeroAverage(t *testing.T) {
	mockStores := new(MockStoreRepository)
	mockStores.On("FindByEmail", mock.Anything, "shop@b.com").Return(nil, gorm.ErrRecordNotFound)
	mockStores.On("Create", mock.Anything, mock.AnythingOfType("*model.Store")).Return(nil)

	svc := NewAdminService(new(MockUserRepository), mockStores, new(MockRatingRepository), nil)
	store, err := svc.CreateStore(context.Background(), validName, "shop@b.com", validPassword, validAddress)

	require.NoError(t, err)
	assert.True(t, store.AverageRating.IsZero())
	mockStores.AssertExpectations(t)
}

func TestListUsersPagination(t *testing.T) {
	users := make([]model.User, 10)
	params := repository.ListParams{Page: 1, Limit: 10}

	mockUsers := new(MockUserRepository)
	mockUsers.On("List", mock.Anything, params).Return(users, int64(25), nil)

	svc := NewAdminService(mockUsers, new(MockStoreRepository), new(MockRatingRepository), nil)
	page, err := svc.ListUsers(context.Background(), params)

	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(25), page.TotalCount)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	mockUsers.AssertExpectations(t)
}

func TestDashboardCountsWithoutCache(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockStores := new(MockStoreRepository)
	mockRatings := new(MockRatingRepository)
	mockUsers.On("Count", mock.Anything).Return(int64(3), nil)
	mockStores.On("Count", mock.Anything).Return(int64(2), nil)
	mockRatings.On("Count", mock.Anything).Return(int64(7), nil)

	// A nil cache client degrades to recomputing every call.
	svc := NewAdminService(mockUsers, mockStores, mockRatings, nil)
	stats, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DashboardStats{TotalUsers: 3, TotalStores: 2, TotalRatings: 7}, stats)
}

func TestGetUserNotFound(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewAdminService(mockUsers, new(MockStoreRepository), new(MockRatingRepository), nil)
	_, err := svc.GetUser(context.Background(), 99)

	assert.ErrorIs(t, err, errors.ErrUserNotFound)
}
