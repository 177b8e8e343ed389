package domain

import (
	"context"
)

// DayLayout is the calendar date format stored with each weight entry.
const DayLayout = "2006-01-02"

// RecentLimit is the number of entries shown in the recent list.
const RecentLimit = 10

// WeightEntry represents a single weight measurement.
type WeightEntry struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"userId"`
	Day    string  `json:"day"`
	Value  float64 `json:"value"`
}

// WeightRepository is the port for weight persistence. The repository
// stores the day string and value verbatim; validation belongs to callers.
type WeightRepository interface {
	AddWeight(ctx context.Context, userID int64, day string, value float64) (int64, error)
	// GetWeight returns ErrEntryNotFound when no row matches.
	GetWeight(ctx context.Context, id int64) (*WeightEntry, error)
	// ListRecentWeights orders by day descending, then by id descending.
	// An unknown user yields an empty slice.
	ListRecentWeights(ctx context.Context, userID int64, limit int) ([]WeightEntry, error)
	// UpdateWeight changes only the value. ErrEntryNotFound if no row matched.
	UpdateWeight(ctx context.Context, id int64, value float64) error
	// DeleteWeight returns ErrEntryNotFound if no row matched.
	DeleteWeight(ctx context.Context, id int64) error
}
