package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weighttrack/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo  domain.WeightRepository
	goals *GoalService
	now   func() time.Time
	log   *zap.Logger
}

// NewWeightService creates a WeightService backed by the given repository.
// goals may be nil, in which case no goal check runs after recording.
func NewWeightService(repo domain.WeightRepository, goals *GoalService, log *zap.Logger) *WeightService {
	if log == nil {
		log = zap.NewNop()
	}
	return &WeightService{repo: repo, goals: goals, now: time.Now, log: log}
}

// WithClock replaces the clock used to stamp new entries.
func (s *WeightService) WithClock(now func() time.Time) *WeightService {
	s.now = now
	return s
}

// RecordResult is the outcome of recording a weight.
type RecordResult struct {
	Entry       domain.WeightEntry `json:"entry"`
	GoalReached bool               `json:"goalReached"`
}

// Today returns the local calendar day new entries are stamped with.
func (s *WeightService) Today() string {
	return s.now().In(time.Local).Format(domain.DayLayout)
}

// RecordWeight stores a measurement dated today.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, value float64) (*RecordResult, error) {
	return s.RecordWeightOn(ctx, userID, s.Today(), value)
}

// RecordWeightOn stores a measurement for the given YYYY-MM-DD day and then
// checks it against the user's goal.
func (s *WeightService) RecordWeightOn(ctx context.Context, userID int64, day string, value float64) (*RecordResult, error) {
	if err := validWeight(value); err != nil {
		return nil, err
	}
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	id, err := s.repo.AddWeight(ctx, userID, day, value)
	if err != nil {
		return nil, err
	}
	res := &RecordResult{Entry: domain.WeightEntry{ID: id, UserID: userID, Day: day, Value: value}}
	s.log.Debug("weight recorded", zap.Int64("user_id", userID), zap.Int64("weight_id", id), zap.String("day", day))

	if s.goals == nil {
		return res, nil
	}
	reached, err := s.goals.Check(ctx, userID, value)
	if err != nil {
		// The entry is already stored; a failed lookup only skips the check.
		s.log.Warn("goal check failed", zap.Int64("user_id", userID), zap.Error(err))
		return res, nil
	}
	res.GoalReached = reached
	return res, nil
}

// ListRecent returns the user's most recent entries. limit is clamped to
// [1, domain.RecentLimit]; zero or negative selects the maximum.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	if limit <= 0 || limit > domain.RecentLimit {
		limit = domain.RecentLimit
	}
	return s.repo.ListRecentWeights(ctx, userID, limit)
}

// UpdateWeight replaces the value of an entry.
func (s *WeightService) UpdateWeight(ctx context.Context, id int64, value float64) error {
	if err := validWeight(value); err != nil {
		return err
	}
	return s.repo.UpdateWeight(ctx, id, value)
}

// DeleteWeight removes an entry.
func (s *WeightService) DeleteWeight(ctx context.Context, id int64) error {
	return s.repo.DeleteWeight(ctx, id)
}

// UpdateOwnWeight is UpdateWeight restricted to entries owned by userID.
// Other users' entries report domain.ErrEntryNotFound.
func (s *WeightService) UpdateOwnWeight(ctx context.Context, userID, id int64, value float64) error {
	if err := validWeight(value); err != nil {
		return err
	}
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.UpdateWeight(ctx, id, value)
}

// DeleteOwnWeight is DeleteWeight restricted to entries owned by userID.
func (s *WeightService) DeleteOwnWeight(ctx context.Context, userID, id int64) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteWeight(ctx, id)
}

func (s *WeightService) checkOwner(ctx context.Context, userID, id int64) error {
	e, err := s.repo.GetWeight(ctx, id)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return domain.ErrEntryNotFound
	}
	return nil
}
