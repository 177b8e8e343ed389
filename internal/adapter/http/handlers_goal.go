package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"weighttrack/internal/domain"
)

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		goal, err := s.goals.Goal(ctx, user.ID)
		if errors.Is(err, domain.ErrGoalNotSet) {
			writeJSON(w, http.StatusOK, map[string]any{"set": false, "goal": nil})
			return
		}
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"set": true, "goal": goal})

	case http.MethodPut:
		var body struct {
			Goal *float64 `json:"goal"`
		}
		if err := parseJSON(r, &body); err != nil {
			s.fail(w, err)
			return
		}
		if body.Goal == nil {
			s.fail(w, fmt.Errorf("%w: goal is required", domain.ErrInvalidInput))
			return
		}
		if err := s.goals.SetGoal(ctx, user.ID, *body.Goal); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"set": true, "goal": *body.Goal})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
