package app_test

import (
	"context"

	"weighttrack/internal/domain"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
	setGoalFn       func(ctx context.Context, userID int64, goal float64) error
	goalFn          func(ctx context.Context, userID int64) (float64, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockUserRepo) SetGoalWeight(ctx context.Context, userID int64, goal float64) error {
	if m.setGoalFn != nil {
		return m.setGoalFn(ctx, userID, goal)
	}
	return nil
}

func (m *mockUserRepo) GoalWeight(ctx context.Context, userID int64) (float64, error) {
	if m.goalFn != nil {
		return m.goalFn(ctx, userID)
	}
	return 0, domain.ErrGoalNotSet
}

type mockWeightRepo struct {
	addFn    func(ctx context.Context, userID int64, day string, v float64) (int64, error)
	getFn    func(ctx context.Context, id int64) (*domain.WeightEntry, error)
	listFn   func(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error)
	updateFn func(ctx context.Context, id int64, v float64) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockWeightRepo) AddWeight(ctx context.Context, userID int64, day string, v float64) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, day, v)
	}
	return 1, nil
}

func (m *mockWeightRepo) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrEntryNotFound
}

func (m *mockWeightRepo) ListRecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) UpdateWeight(ctx context.Context, id int64, v float64) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, v)
	}
	return nil
}

func (m *mockWeightRepo) DeleteWeight(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockNotifier struct {
	err  error
	sent []string
}

func (m *mockNotifier) Notify(_ context.Context, to, message string) error {
	m.sent = append(m.sent, to+": "+message)
	return m.err
}
