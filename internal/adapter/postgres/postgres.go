// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"weighttrack/internal/domain"
)

// SchemaVersion is the schema revision this build writes.
const SchemaVersion = 1

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(ctx context.Context, connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Driver returns the name of the SQL driver in use.
func (d *DB) Driver() string {
	return "postgres"
}

func (d *DB) migrate(ctx context.Context) error {
	if _, err := d.sql.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (id INTEGER PRIMARY KEY, version INTEGER NOT NULL);"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	current, err := d.SchemaVersion(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("migrate: read version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("%w: found %d, want %d", domain.ErrSchemaTooNew, current, SchemaVersion)
	}

	// Statements are additive; an upgrade never drops users or weights.
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password TEXT NOT NULL, goal_weight DOUBLE PRECISION);",
		"CREATE TABLE IF NOT EXISTS weights (weight_id BIGSERIAL PRIMARY KEY, user_id BIGINT REFERENCES users(id), date TEXT, weight DOUBLE PRECISION);",
		"CREATE INDEX IF NOT EXISTS idx_weights_user_id ON weights(user_id);",
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if current == SchemaVersion {
		return nil
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO schema_version (id, version) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET version = EXCLUDED.version;",
		SchemaVersion,
	)
	if err != nil {
		return fmt.Errorf("migrate: write version: %w", err)
	}
	return nil
}

// SchemaVersion returns the version recorded in the database.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := d.sql.QueryRowContext(ctx, "SELECT version FROM schema_version WHERE id = 1;").Scan(&v)
	return v, err
}

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func rowsMatched(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
