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
)

func newTestAuthService(users *MockUserRepository, stores *MockStoreRepository) AuthService {
	return NewAuthService(users, stores, auth.NewJWTService("test-secret"), auth.NewRevoker(nil))
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		password  string
		address   string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:      "invalid email",
			userName:  validName,
			email:     "not-an-email",
			password:  validPassword,
			address:   validAddress,
			setupMock: func(m *MockUserRepository) {},
			wantErr:   &errors.ValidationError{},
		},
		{
			name:      "password without uppercase",
			userName:  validName,
			email:     "a@b.com",
			password:  "abcdef1!",
			address:   validAddress,
			setupMock: func(m *MockUserRepository) {},
			wantErr:   &errors.ValidationError{},
		},
		{
			name:     "email already registered",
			userName: validName,
			email:    "taken@b.com",
			password: validPassword,
			address:  validAddress,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@b.com").
					Return(&model.User{ID: 1, Email: "taken@b.com"}, nil)
			},
			wantErr: errors.ErrEmailTaken,
		},
		{
			name:     "success",
			userName: validName,
			email:    "new@b.com",
			password: validPassword,
			address:  validAddress,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@b.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			svc := newTestAuthService(mockUsers, new(MockStoreRepository))
			user, token, err := svc.Signup(context.Background(), tt.userName, tt.email, tt.password, tt.address)

			if tt.wantErr == nil {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, token)
				// Self-signup never grants anything above normal_user.
				assert.Equal(t, model.RoleNormalUser, user.Role)
				assert.NotEqual(t, tt.password, user.Password)
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

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword(validPassword)
	require.NoError(t, err)

	user := &model.User{ID: 1, Name: validName, Email: "u@b.com", Password: hash, Role: model.RoleNormalUser}
	store := &model.Store{ID: 2, Name: validName, Email: "s@b.com", Password: hash}

	tests := []struct {
		name      string
		email     string
		password  string
		userType  string
		setupMock func(*MockUserRepository, *MockStoreRepository)
		wantType  string
		wantRole  string
		wantErr   error
	}{
		{
			name:     "user login",
			email:    "u@b.com",
			password: validPassword,
			userType: auth.TypeUser,
			setupMock: func(mu *MockUserRepository, ms *MockStoreRepository) {
				mu.On("FindByEmail", mock.Anything, "u@b.com").Return(user, nil)
			},
			wantType: auth.TypeUser,
			wantRole: model.RoleNormalUser,
		},
		{
			name:     "store login gets the store_owner role",
			email:    "s@b.com",
			password: validPassword,
			userType: auth.TypeStore,
			setupMock: func(mu *MockUserRepository, ms *MockStoreRepository) {
				ms.On("FindByEmail", mock.Anything, "s@b.com").Return(store, nil)
			},
			wantType: auth.TypeStore,
			wantRole: model.RoleStoreOwner,
		},
		{
			name:     "unknown email",
			email:    "nobody@b.com",
			password: validPassword,
			userType: auth.TypeUser,
			setupMock: func(mu *MockUserRepository, ms *MockStoreRepository) {
				mu.On("FindByEmail", mock.Anything, "nobody@b.com").Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "u@b.com",
			password: "Wrong1!pass",
			userType: auth.TypeUser,
			setupMock: func(mu *MockUserRepository, ms *MockStoreRepository) {
				mu.On("FindByEmail", mock.Anything, "u@b.com").Return(user, nil)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name:      "unknown user type",
			email:     "u@b.com",
			password:  validPassword,
			userType:  "robot",
			setupMock: func(mu *MockUserRepository, ms *MockStoreRepository) {},
			wantErr:   &errors.ValidationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockStores := new(MockStoreRepository)
			tt.setupMock(mockUsers, mockStores)

			svc := newTestAuthService(mockUsers, mockStores)
			token, profile, err := svc.Login(context.Background(), tt.email, tt.password, tt.userType)

			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, profile)
				assert.Equal(t, tt.wantType, profile.UserType)
				assert.Equal(t, tt.wantRole, profile.Role)
			} else if _, ok := tt.wantErr.(*errors.ValidationError); ok {
				var got *errors.ValidationError
				assert.ErrorAs(t, err, &got)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			}
			mockUsers.AssertExpectations(t)
			mockStores.AssertExpectations(t)
		})
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	// The same error comes back whether the email is unknown or the password
	// is wrong, so callers cannot probe which emails are registered.
	hash, err := auth.HashPassword(validPassword)
	require.NoError(t, err)

	mockUsers := new(MockUserRepository)
	mockUsers.On("FindByEmail", mock.Anything, "known@b.com").
		Return(&model.User{ID: 1, Email: "known@b.com", Password: hash}, nil)
	mockUsers.On("FindByEmail", mock.Anything, "unknown@b.com").
		Return(nil, gorm.ErrRecordNotFound)

	svc := newTestAuthService(mockUsers, new(MockStoreRepository))

	_, _, errKnown := svc.Login(context.Background(), "known@b.com", "Wrong1!pass", auth.TypeUser)
	_, _, errUnknown := svc.Login(context.Background(), "unknown@b.com", "Wrong1!pass", auth.TypeUser)

	assert.Equal(t, errKnown, errUnknown)
}

func TestChangePassword(t *testing.T) {
	hash, err := auth.HashPassword(validPassword)
	require.NoError(t, err)
	user := &model.User{ID: 1, Email: "u@b.com", Password: hash}

	tests := []struct {
		name        string
		current     string
		newPassword string
		setupMock   func(*MockUserRepository)
		wantErr     error
	}{
		{
			name:        "new password fails validation",
			current:     validPassword,
			newPassword: "weak",
			setupMock:   func(m *MockUserRepository) {},
			wantErr:     &errors.ValidationError{},
		},
		{
			name:        "current password wrong",
			current:     "Wrong1!pass",
			newPassword: "Newpass1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name:        "success",
			current:     validPassword,
			newPassword: "Newpass1!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(user, nil)
				m.On("UpdatePassword", mock.Anything, uint(1), mock.AnythingOfType("string")).Return(nil)
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			svc := newTestAuthService(mockUsers, new(MockStoreRepository))
			identity, err := auth.NewIdentity(&auth.Claims{ID: 1, Email: "u@b.com", Type: auth.TypeUser, Role: model.RoleNormalUser})
			require.NoError(t, err)
			err = svc.ChangePassword(context.Background(), identity, tt.current, tt.newPassword)

			if tt.wantErr == nil {
				require.NoError(t, err)
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
