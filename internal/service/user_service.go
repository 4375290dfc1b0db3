package service

import (
	"context"
	"errors"
	"log/slog"

	"splitledger/internal/auth"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// UserService handles account registration, login and profile management.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *UserService {
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns the user with a signed token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	slog.Info("Register request", "username", username)

	if username == "" || email == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, username, email, password)
	if err != nil {
		slog.Error("Registration failed", "username", username, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates by email and password and returns the user with a
// signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// GetProfile returns the user's own account record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

// UpdateProfile changes the user's username and/or email. Empty fields are
// left untouched. Uniqueness violations surface as auth.ErrAccountExists.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, email string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEntry) {
			return nil, auth.ErrAccountExists
		}
		return nil, err
	}

	slog.Info("Profile updated", "user_id", userID)
	return user, nil
}
