package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

var _ domain.WeightRepository = (*DB)(nil)

// AddWeight inserts a new weight entry.
func (d *DB) AddWeight(ctx context.Context, userID int64, day string, value float64) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weights(user_id, date, weight) VALUES($1, $2, $3) RETURNING weight_id;",
		userID, day, value,
	).Scan(&id)
	return id, err
}

// GetWeight returns a single entry by id.
func (d *DB) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	var e domain.WeightEntry
	err := d.sql.QueryRowContext(ctx,
		"SELECT weight_id, user_id, date, weight FROM weights WHERE weight_id=$1;", id,
	).Scan(&e.ID, &e.UserID, &e.Day, &e.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListRecentWeights returns the user's newest entries up to limit.
func (d *DB) ListRecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT weight_id, date, weight FROM weights WHERE user_id=$1 ORDER BY date DESC, weight_id DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0, limit)
	for rows.Next() {
		e := domain.WeightEntry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.Day, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateWeight sets the value of an existing entry.
func (d *DB) UpdateWeight(ctx context.Context, id int64, value float64) error {
	res, err := d.sql.ExecContext(ctx, "UPDATE weights SET weight=$1 WHERE weight_id=$2;", value, id)
	if err != nil {
		return err
	}
	return rowsMatched(res, domain.ErrEntryNotFound)
}

// DeleteWeight removes an entry by id.
func (d *DB) DeleteWeight(ctx context.Context, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weights WHERE weight_id=$1;", id)
	if err != nil {
		return err
	}
	return rowsMatched(res, domain.ErrEntryNotFound)
}
