package app

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"weighttrack/internal/domain"
)

// GoalService manages goal weights and goal-reached notifications.
type GoalService struct {
	users    domain.UserRepository
	rule     domain.GoalRule
	notifier domain.Notifier
	phone    string
	log      *zap.Logger
}

// NewGoalService creates a GoalService. notifier may be nil.
func NewGoalService(users domain.UserRepository, rule domain.GoalRule, notifier domain.Notifier, phone string, log *zap.Logger) *GoalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalService{users: users, rule: rule, notifier: notifier, phone: phone, log: log}
}

func validWeight(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", domain.ErrInvalidInput)
	}
	return nil
}

// SetGoal overwrites the user's goal weight.
func (s *GoalService) SetGoal(ctx context.Context, userID int64, goal float64) error {
	if err := validWeight(goal); err != nil {
		return err
	}
	return s.users.SetGoalWeight(ctx, userID, goal)
}

// Goal returns the user's goal weight or domain.ErrGoalNotSet.
func (s *GoalService) Goal(ctx context.Context, userID int64) (float64, error) {
	return s.users.GoalWeight(ctx, userID)
}

// Check compares a newly recorded weight against the user's goal and sends
// the congratulation message when the goal rule is met. A missing goal is
// not an error. Notification failures are logged, not returned.
func (s *GoalService) Check(ctx context.Context, userID int64, weight float64) (bool, error) {
	goal, err := s.users.GoalWeight(ctx, userID)
	if errors.Is(err, domain.ErrGoalNotSet) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !s.rule.Reached(weight, goal) {
		return false, nil
	}

	s.log.Info("goal weight reached",
		zap.Int64("user_id", userID),
		zap.Float64("weight", weight),
		zap.Float64("goal", goal),
		zap.String("rule", string(s.rule)),
	)
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, s.phone, domain.GoalMessage); err != nil {
			s.log.Warn("goal notification failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return true, nil
}
