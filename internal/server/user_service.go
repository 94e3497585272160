package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/scholariq/scholariq/internal/config"
	"github.com/scholariq/scholariq/internal/db"
	"github.com/scholariq/scholariq/internal/types"
)

// UserStore is the subset of db.DB the user service needs, narrowed for
// testability.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (*db.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, upd db.UserProfileUpdate) (*db.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

// UserService provides business logic for account and profile operations
type UserService struct {
	db             UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             store,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser converts db.User to types.User, excluding the password hash
func toAPIUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Nationality:        u.Nationality,
		CGPA:               u.CGPA,
		CurrentDegree:      u.CurrentDegree,
		Major:              u.Major,
		Specialization:     u.Specialization,
		GraduationYear:     u.GraduationYear,
		TargetCountry:      u.TargetCountry,
		TargetDegree:       u.TargetDegree,
		EnglishProficiency: u.EnglishProficiency,
		ResearchExperience: u.ResearchExperience,
		EmailNotifications: u.EmailNotifications,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

// Register creates a new user account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.db.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.db.CreateUser(ctx, req.Email, passwordHash, req.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toAPIUser(user), nil
}

// Login authenticates a user and returns their profile
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Same generic error whether the account is missing or the password is
	// wrong.
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	if err := s.db.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return toAPIUser(user), nil
}

// GetProfile returns the profile of an existing user
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return toAPIUser(user), nil
}

// UpdateProfile applies a partial academic profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.User, error) {
	user, err := s.db.UpdateUserProfile(ctx, userID, db.UserProfileUpdate{
		FullName:           req.FullName,
		Nationality:        req.Nationality,
		CGPA:               req.CGPA,
		CurrentDegree:      req.CurrentDegree,
		Major:              req.Major,
		Specialization:     req.Specialization,
		GraduationYear:     req.GraduationYear,
		TargetCountry:      req.TargetCountry,
		TargetDegree:       req.TargetDegree,
		EnglishProficiency: req.EnglishProficiency,
		ResearchExperience: req.ResearchExperience,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return toAPIUser(user), nil
}

// UpdatePassword updates a user's password
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, user.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.db.UpdateUserPassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
