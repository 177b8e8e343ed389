package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pq.Error{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23505"}), true},
		{"foreign key violation", &pq.Error{Code: "23503"}, false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDuplicate(tc.err); got != tc.want {
				t.Errorf("isDuplicate(%v) = %v; want %v", tc.err, got, tc.want)
			}
		})
	}
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestRowsMatched(t *testing.T) {
	notFound := errors.New("not found")
	if err := rowsMatched(fakeResult{n: 1}, notFound); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := rowsMatched(fakeResult{n: 0}, notFound); !errors.Is(err, notFound) {
		t.Errorf("expected notFound, got %v", err)
	}
	boom := errors.New("boom")
	if err := rowsMatched(fakeResult{err: boom}, notFound); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
