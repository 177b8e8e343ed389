// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"weighttrack/internal/domain"
)

// AccountService handles account creation and credential checks.
type AccountService struct {
	users domain.UserRepository
	cost  int
	log   *zap.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(users domain.UserRepository, log *zap.Logger) *AccountService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{
		users: users,
		cost:  bcrypt.DefaultCost,
		log:   log,
	}
}

// WithHashCost sets the bcrypt cost used for new accounts.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.cost = cost
	return s
}

func credentials(username, password string) (string, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", "", fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	return username, password, nil
}

// CreateAccount registers a new user. The username is checked before the
// insert; the repository's uniqueness constraint still catches races.
func (s *AccountService) CreateAccount(ctx context.Context, username, password string) (*domain.User, error) {
	username, password, err := credentials(username, password)
	if err != nil {
		return nil, err
	}

	_, err = s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}
	s.log.Info("account created", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
	return u, nil
}

// VerifyCredentials reports whether a user with exactly this username and
// password exists. An unknown user and a wrong password are both false.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Login(ctx, username, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return false, nil
	default:
		return false, err
	}
}

// Login verifies credentials and returns the matching user.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	username, password, err := credentials(username, password)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// UserID resolves a username to its id.
func (s *AccountService) UserID(ctx context.Context, username string) (int64, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// Count returns the number of registered accounts.
func (s *AccountService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}
