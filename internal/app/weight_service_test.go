package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 12, 0, 0, 0, time.Local)
}

func TestRecordWeight_Validation(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{}, nil, nil)

	tests := []struct {
		name  string
		day   string
		value float64
	}{
		{"zero value", "2024-01-01", 0},
		{"negative value", "2024-01-01", -5},
		{"bad day", "01/01/2024", 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordWeightOn(context.Background(), 1, tc.day, tc.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordWeight_StampsToday(t *testing.T) {
	var gotDay string
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, day string, _ float64) (int64, error) {
			gotDay = day
			return 9, nil
		},
	}
	svc := app.NewWeightService(repo, nil, nil).WithClock(fixedClock)

	res, err := svc.RecordWeight(context.Background(), 1, 80)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", gotDay)
	assert.Equal(t, int64(9), res.Entry.ID)
	assert.False(t, res.GoalReached)
}

func TestRecordWeight_GoalReached(t *testing.T) {
	n := &mockNotifier{}
	goals := app.NewGoalService(goalRepo(180), domain.GoalExact, n, "123456789", nil)
	svc := app.NewWeightService(&mockWeightRepo{}, goals, nil).WithClock(fixedClock)

	res, err := svc.RecordWeight(context.Background(), 1, 180)
	require.NoError(t, err)
	assert.True(t, res.GoalReached)
	assert.Len(t, n.sent, 1)
}

func TestRecordWeight_GoalLookupFailureKeepsEntry(t *testing.T) {
	users := &mockUserRepo{
		goalFn: func(context.Context, int64) (float64, error) { return 0, errors.New("db down") },
	}
	goals := app.NewGoalService(users, domain.GoalExact, nil, "", nil)
	svc := app.NewWeightService(&mockWeightRepo{}, goals, nil)

	res, err := svc.RecordWeight(context.Background(), 1, 180)
	require.NoError(t, err)
	assert.False(t, res.GoalReached)
}

func TestRecordWeight_RepoError(t *testing.T) {
	repo := &mockWeightRepo{
		addFn: func(context.Context, int64, string, float64) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	svc := app.NewWeightService(repo, nil, nil)
	_, err := svc.RecordWeight(context.Background(), 1, 80)
	assert.Error(t, err)
}

func TestListRecent_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockWeightRepo{
		listFn: func(_ context.Context, _ int64, limit int) ([]domain.WeightEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := app.NewWeightService(repo, nil, nil)

	for in, want := range map[int]int{0: 10, -3: 10, 5: 5, 10: 10, 50: 10} {
		_, err := svc.ListRecent(context.Background(), 1, in)
		require.NoError(t, err)
		assert.Equal(t, want, gotLimit, "limit %d", in)
	}
}

func TestUpdateWeight(t *testing.T) {
	repo := &mockWeightRepo{
		updateFn: func(_ context.Context, id int64, _ float64) error {
			if id != 1 {
				return domain.ErrEntryNotFound
			}
			return nil
		},
	}
	svc := app.NewWeightService(repo, nil, nil)

	assert.NoError(t, svc.UpdateWeight(context.Background(), 1, 70))
	assert.ErrorIs(t, svc.UpdateWeight(context.Background(), 2, 70), domain.ErrEntryNotFound)
	assert.ErrorIs(t, svc.UpdateWeight(context.Background(), 1, -70), domain.ErrInvalidInput)
}

func TestOwnWeight_RejectsOtherUsers(t *testing.T) {
	var deleted, updated bool
	repo := &mockWeightRepo{
		getFn: func(_ context.Context, id int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{ID: id, UserID: 1}, nil
		},
		updateFn: func(context.Context, int64, float64) error { updated = true; return nil },
		deleteFn: func(context.Context, int64) error { deleted = true; return nil },
	}
	svc := app.NewWeightService(repo, nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateOwnWeight(ctx, 2, 5, 70), domain.ErrEntryNotFound)
	assert.ErrorIs(t, svc.DeleteOwnWeight(ctx, 2, 5), domain.ErrEntryNotFound)
	assert.False(t, updated)
	assert.False(t, deleted)

	require.NoError(t, svc.UpdateOwnWeight(ctx, 1, 5, 70))
	require.NoError(t, svc.DeleteOwnWeight(ctx, 1, 5))
	assert.True(t, updated)
	assert.True(t, deleted)
}
