package adapthttp

import (
	"fmt"
	"net/http"
	"strconv"

	"weighttrack/internal/domain"
)

type weightRequest struct {
	Weight *float64 `json:"weight"`
	Date   string   `json:"date,omitempty"`
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", domain.RecentLimit)
		items, err := s.weight.ListRecent(ctx, user.ID, limit)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body weightRequest
		if err := parseJSON(r, &body); err != nil {
			s.fail(w, err)
			return
		}
		if body.Weight == nil {
			s.fail(w, fmt.Errorf("%w: weight is required", domain.ErrInvalidInput))
			return
		}
		day := body.Date
		if day == "" {
			day = s.weight.Today()
		}
		res, err := s.weight.RecordWeightOn(ctx, user.ID, day, *body.Weight)
		if err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.fail(w, fmt.Errorf("%w: bad entry id", domain.ErrInvalidInput))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body weightRequest
		if err := parseJSON(r, &body); err != nil {
			s.fail(w, err)
			return
		}
		if body.Weight == nil {
			s.fail(w, fmt.Errorf("%w: weight is required", domain.ErrInvalidInput))
			return
		}
		if err := s.weight.UpdateOwnWeight(ctx, user.ID, id, *body.Weight); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})

	case http.MethodDelete:
		if err := s.weight.DeleteOwnWeight(ctx, user.ID, id); err != nil {
			s.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
