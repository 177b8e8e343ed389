// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
)

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	// GoalWeight is nil until the user sets a goal.
	GoalWeight *float64
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	// Create stores a new user. It returns ErrUsernameTaken when the
	// username already exists.
	Create(ctx context.Context, username, passwordHash string) (*User, error)
	// GetByUsername returns ErrUserNotFound when no row matches.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByID returns ErrUserNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*User, error)
	Count(ctx context.Context) (int, error)

	// SetGoalWeight overwrites any previous goal.
	SetGoalWeight(ctx context.Context, userID int64, goal float64) error
	// GoalWeight returns ErrGoalNotSet when the user exists without a goal.
	GoalWeight(ctx context.Context, userID int64) (float64, error)
}
