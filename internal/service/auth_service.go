package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storeratings/internal/auth"
	"storeratings/internal/errors"
	"storeratings/internal/model"
	"storeratings/internal/repository"
	"storeratings/internal/validation"
)

// Profile is the identity summary returned alongside a token.
type Profile struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	UserType string `json:"user_type"`
}

// AuthService handles signup, login and password changes for both user and
// store identities.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, address string) (*model.User, string, error)
	Login(ctx context.Context, email, password, userType string) (string, *Profile, error)
	ChangePassword(ctx context.Context, identity auth.Identity, current, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	jwtService *auth.JWTService
	revoker    *auth.Revoker
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, jwtService *auth.JWTService, revoker *auth.Revoker) AuthService {
	return &authService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtService: jwtService,
		revoker:    revoker,
	}
}

// Signup registers a normal user and returns the created user with a session
// token. All field validation happens before any write.
func (s *authService) Signup(ctx context.Context, name, email, password, address string) (*model.User, string, error) {
	if err := validation.Name(name); err != nil {
		return nil, "", errors.NewValidation(err)
	}
	if err := validation.Email(email); err != nil {
		return nil, "", errors.NewValidation(err)
	}
	if err := validation.Password(password); err != nil {
		return nil, "", errors.NewValidation(err)
	}
	if err := validation.Address(address); err != nil {
		return nil, "", errors.NewValidation(err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Address:  address,
		Role:     model.RoleNormalUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(auth.TypeUser, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates either a user or a store identity, per userType. The
// failure reason never distinguishes unknown email from wrong password.
func (s *authService) Login(ctx context.Context, email, password, userType string) (string, *Profile, error) {
	switch userType {
	case auth.TypeUser:
		user, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil || !auth.CheckPassword(password, user.Password) {
			return "", nil, errors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(auth.TypeUser, user.ID, user.Email, user.Role)
		if err != nil {
			return "", nil, fmt.Errorf("generate token: %w", err)
		}
		return token, &Profile{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			UserType: auth.TypeUser,
		}, nil
	case auth.TypeStore:
		store, err := s.storeRepo.FindByEmail(ctx, email)
		if err != nil || !auth.CheckPassword(password, store.Password) {
			return "", nil, errors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(auth.TypeStore, store.ID, store.Email, "")
		if err != nil {
			return "", nil, fmt.Errorf("generate token: %w", err)
		}
		return token, &Profile{
			ID:       store.ID,
			Name:     store.Name,
			Email:    store.Email,
			Role:     model.RoleStoreOwner,
			UserType: auth.TypeStore,
		}, nil
	default:
		return "", nil, errors.NewValidation(fmt.Errorf("invalid user type"))
	}
}

// ChangePassword verifies the current password, validates and stores the new
// one, then marks older tokens as revoked.
func (s *authService) ChangePassword(ctx context.Context, identity auth.Identity, current, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return errors.NewValidation(err)
	}

	var storedHash string
	switch identity.Type {
	case auth.TypeUser:
		user, err := s.userRepo.FindByID(ctx, identity.ID)
		if err != nil {
			return errors.ErrUserNotFound
		}
		storedHash = user.Password
	case auth.TypeStore:
		store, err := s.storeRepo.FindByID(ctx, identity.ID)
		if err != nil {
			return errors.ErrStoreNotFound
		}
		storedHash = store.Password
	default:
		return errors.ErrInvalidToken
	}

	if !auth.CheckPassword(current, storedHash) {
		return errors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if identity.Type == auth.TypeUser {
		err = s.userRepo.UpdatePassword(ctx, identity.ID, hashed)
	} else {
		err = s.storeRepo.UpdatePassword(ctx, identity.ID, hashed)
	}
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	_ = s.revoker.MarkPasswordChanged(ctx, identity.Type, identity.ID)
	return nil
}
