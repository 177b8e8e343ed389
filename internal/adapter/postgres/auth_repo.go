package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"weighttrack/internal/domain"
)

var _ domain.UserRepository = (*DB)(nil)

const userColumns = "id, username, password, goal_weight"

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u    domain.User
		goal sql.NullFloat64
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &goal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if goal.Valid {
		u.GoalWeight = &goal.Float64
	}
	return &u, nil
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	u, err := scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING "+userColumns,
		username, passwordHash,
	))
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// SetGoalWeight overwrites the user's goal weight.
func (d *DB) SetGoalWeight(ctx context.Context, userID int64, goal float64) error {
	res, err := d.sql.ExecContext(ctx, "UPDATE users SET goal_weight = $1 WHERE id = $2", goal, userID)
	if err != nil {
		return err
	}
	return rowsMatched(res, domain.ErrUserNotFound)
}

// GoalWeight returns the user's goal weight.
func (d *DB) GoalWeight(ctx context.Context, userID int64) (float64, error) {
	u, err := d.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if u.GoalWeight == nil {
		return 0, domain.ErrGoalNotSet
	}
	return *u.GoalWeight, nil
}
