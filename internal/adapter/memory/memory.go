// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"weighttrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu      sync.Mutex
	weights []domain.WeightEntry
	users   []*domain.User

	weightIDCounter int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// Close is a no-op; it lets DB stand in for the SQL stores.
func (db *DB) Close() error { return nil }

// Driver returns "memory".
func (db *DB) Driver() string { return "memory" }

// --- WeightRepository ---

// AddWeight adds a weight entry.
func (db *DB) AddWeight(ctx context.Context, userID int64, day string, value float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	id := db.weightIDCounter

	db.weights = append(db.weights, domain.WeightEntry{
		ID:     id,
		UserID: userID,
		Day:    day,
		Value:  value,
	})
	return id, nil
}

func (db *DB) weightIndex(id int64) int {
	for i, w := range db.weights {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// GetWeight returns a copy of the entry with the given id.
func (db *DB) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.weightIndex(id)
	if i < 0 {
		return nil, domain.ErrEntryNotFound
	}
	e := db.weights[i]
	return &e, nil
}

// ListRecentWeights lists the user's most recent weight entries.
func (db *DB) ListRecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0, limit)
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}

	// sort desc by day, then by id
	sort.Slice(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day > result[j].Day
		}
		return result[i].ID > result[j].ID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// UpdateWeight sets the value of an entry.
func (db *DB) UpdateWeight(ctx context.Context, id int64, value float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.weightIndex(id)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	db.weights[i].Value = value
	return nil
}

// DeleteWeight deletes an entry by ID.
func (db *DB) DeleteWeight(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.weightIndex(id)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	db.weights = append(db.weights[:i], db.weights[i+1:]...)
	return nil
}

// --- UserRepository ---

func (db *DB) findUser(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range db.users {
		if match(u) {
			// copy so callers cannot mutate stored state
			c := *u
			if u.GoalWeight != nil {
				g := *u.GoalWeight
				c.GoalWeight = &g
			}
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findUser(func(u *domain.User) bool { return u.Username == username })
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findUser(func(u *domain.User) bool { return u.ID == id })
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
	}
	db.users = append(db.users, u)
	c := *u
	return &c, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// SetGoalWeight overwrites the user's goal weight.
func (db *DB) SetGoalWeight(ctx context.Context, userID int64, goal float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == userID {
			g := goal
			u.GoalWeight = &g
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// GoalWeight returns the user's goal weight.
func (db *DB) GoalWeight(ctx context.Context, userID int64) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, err := db.findUser(func(u *domain.User) bool { return u.ID == userID })
	if err != nil {
		return 0, err
	}
	if u.GoalWeight == nil {
		return 0, domain.ErrGoalNotSet
	}
	return *u.GoalWeight, nil
}
