package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"weighttrack/internal/domain"
)

type userModel struct {
	ID         int64    `gorm:"column:id;primaryKey;autoIncrement"`
	Username   string   `gorm:"column:username;size:191;uniqueIndex;not null"`
	Password   string   `gorm:"column:password;size:255;not null"`
	GoalWeight *float64 `gorm:"column:goal_weight"`
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		GoalWeight:   m.GoalWeight,
	}
}

var _ domain.UserRepository = (*DB)(nil)

// Create inserts a new user.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	m := userModel{Username: username, Password: passwordHash}
	if err := d.gorm.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return m.toDomain(), nil
}

// GetByUsername retrieves a user by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.findUser(ctx, "username = ?", username)
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.findUser(ctx, "id = ?", id)
}

func (d *DB) findUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m userModel
	if err := d.gorm.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return m.toDomain(), nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int64
	err := d.gorm.WithContext(ctx).Model(&userModel{}).Count(&n).Error
	return int(n), err
}

// SetGoalWeight overwrites the user's goal weight.
func (d *DB) SetGoalWeight(ctx context.Context, userID int64, goal float64) error {
	res := d.gorm.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Update("goal_weight", goal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
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
