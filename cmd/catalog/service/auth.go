package service

import (
	"context"
	"fmt"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login. Passwords are stored as
// bcrypt hashes; login outcomes are otherwise identical to a plaintext
// comparison.
type AuthService struct {
	users *repository.UserRepository
	log   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, log *logger.Logger) *AuthService {
	return &AuthService{
		users: users,
		log:   log,
	}
}

// Register creates a new account with the "user" role
func (s *AuthService) Register(ctx context.Context, username, password, email string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		Role:         "user",
	}

	created, ok, err := s.users.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, ErrConflict
	}

	s.log.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login verifies credentials and returns the matching user
func (s *AuthService) Login(username, password string) (models.User, error) {
	user, ok := s.users.FindByUsername(username)
	if !ok {
		return models.User{}, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrBadCredentials
	}

	return user, nil
}
