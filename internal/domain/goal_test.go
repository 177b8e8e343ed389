package domain_test

import (
	"testing"

	"weighttrack/internal/domain"
)

func TestGoalRuleReached(t *testing.T) {
	tests := []struct {
		name   string
		rule   domain.GoalRule
		weight float64
		goal   float64
		want   bool
	}{
		{"exact equal", domain.GoalExact, 180.0, 180.0, true},
		{"exact below", domain.GoalExact, 179.9, 180.0, false},
		{"exact above", domain.GoalExact, 180.1, 180.0, false},
		{"at-or-below equal", domain.GoalAtOrBelow, 180.0, 180.0, true},
		{"at-or-below under", domain.GoalAtOrBelow, 175.0, 180.0, true},
		{"at-or-below over", domain.GoalAtOrBelow, 181.0, 180.0, false},
		{"zero value rule is exact", domain.GoalRule(""), 180.0, 180.0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rule.Reached(tc.weight, tc.goal); got != tc.want {
				t.Errorf("%q.Reached(%v, %v) = %v; want %v", tc.rule, tc.weight, tc.goal, got, tc.want)
			}
		})
	}
}

func TestParseGoalRule(t *testing.T) {
	for _, s := range []string{"exact", "at-or-below"} {
		if _, err := domain.ParseGoalRule(s); err != nil {
			t.Errorf("ParseGoalRule(%q): %v", s, err)
		}
	}
	if _, err := domain.ParseGoalRule("close-enough"); err == nil {
		t.Error("expected error for unknown rule")
	}
}
