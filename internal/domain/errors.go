package domain

import "errors"

var (
	// ErrUserNotFound indicates that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken indicates a uniqueness violation on username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEntryNotFound indicates that no weight entry matched the id.
	ErrEntryNotFound = errors.New("weight entry not found")
	// ErrGoalNotSet indicates that the user has never set a goal weight.
	ErrGoalNotSet = errors.New("goal weight not set")
	// ErrInvalidInput indicates a request rejected before reaching storage.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that the username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSchemaTooNew indicates the database was written by a newer binary.
	ErrSchemaTooNew = errors.New("database schema is newer than this build")
)
