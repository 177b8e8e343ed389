package domain

import (
	"context"
	"fmt"
)

// GoalMessage is the text sent when a user reaches their goal weight.
const GoalMessage = "Congratulations! You've reached your goal weight!"

// GoalRule decides whether a recorded weight counts as reaching the goal.
type GoalRule string

const (
	// GoalExact fires only when the weight equals the goal exactly.
	GoalExact GoalRule = "exact"
	// GoalAtOrBelow fires when the weight is at or under the goal.
	GoalAtOrBelow GoalRule = "at-or-below"
)

// ParseGoalRule accepts the names of the known rules.
func ParseGoalRule(s string) (GoalRule, error) {
	switch r := GoalRule(s); r {
	case GoalExact, GoalAtOrBelow:
		return r, nil
	}
	return "", fmt.Errorf("unknown goal rule %q", s)
}

// Reached reports whether weight satisfies goal under the rule.
func (r GoalRule) Reached(weight, goal float64) bool {
	if r == GoalAtOrBelow {
		return weight <= goal
	}
	return weight == goal
}

// Notifier is the port for the congratulation message channel.
type Notifier interface {
	Notify(ctx context.Context, to, message string) error
}
