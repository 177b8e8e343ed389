package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"weighttrack/internal/domain"
)

type weightModel struct {
	WeightID int64      `gorm:"column:weight_id;primaryKey;autoIncrement"`
	UserID   int64      `gorm:"column:user_id;index"`
	Date     string     `gorm:"column:date;size:10"`
	Weight   float64    `gorm:"column:weight"`
	User     *userModel `gorm:"foreignKey:UserID;references:ID"`
}

func (weightModel) TableName() string { return "weights" }

func (m *weightModel) toDomain() domain.WeightEntry {
	return domain.WeightEntry{ID: m.WeightID, UserID: m.UserID, Day: m.Date, Value: m.Weight}
}

var _ domain.WeightRepository = (*DB)(nil)

// AddWeight inserts a new weight entry.
func (d *DB) AddWeight(ctx context.Context, userID int64, day string, value float64) (int64, error) {
	m := weightModel{UserID: userID, Date: day, Weight: value}
	if err := d.gorm.WithContext(ctx).Omit("User").Create(&m).Error; err != nil {
		return 0, err
	}
	return m.WeightID, nil
}

// GetWeight returns a single entry by id.
func (d *DB) GetWeight(ctx context.Context, id int64) (*domain.WeightEntry, error) {
	var m weightModel
	if err := d.gorm.WithContext(ctx).Where("weight_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}
	e := m.toDomain()
	return &e, nil
}

// ListRecentWeights returns the user's newest entries up to limit.
func (d *DB) ListRecentWeights(ctx context.Context, userID int64, limit int) ([]domain.WeightEntry, error) {
	var rows []weightModel
	err := d.gorm.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("weight_id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.WeightEntry, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

// UpdateWeight sets the value of an existing entry.
func (d *DB) UpdateWeight(ctx context.Context, id int64, value float64) error {
	res := d.gorm.WithContext(ctx).Model(&weightModel{}).Where("weight_id = ?", id).Update("weight", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// DeleteWeight removes an entry by id.
func (d *DB) DeleteWeight(ctx context.Context, id int64) error {
	res := d.gorm.WithContext(ctx).Where("weight_id = ?", id).Delete(&weightModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
