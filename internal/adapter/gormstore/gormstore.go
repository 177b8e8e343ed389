// Package gormstore implements the domain repositories with gorm, backed by
// an embedded SQLite file by default or by MySQL.
package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"weighttrack/internal/domain"
)

// SchemaVersion is the schema revision this build writes.
const SchemaVersion = 1

// DB wraps a *gorm.DB and implements domain repository interfaces.
type DB struct {
	gorm   *gorm.DB
	sql    *sql.DB
	driver string
}

// Open connects using driver ("sqlite" or "mysql"), pings, and migrates.
func Open(ctx context.Context, driver, dsn string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// Report matched rows so an update to the same value is not a miss.
		cfg.ClientFoundRows = true
		dialector = gmysql.Open(cfg.FormatDSN())
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", driver)
	}

	g, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
	})
	if err != nil {
		return nil, err
	}
	s, err := g.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// Single writer; also keeps ":memory:" databases on one connection.
		s.SetMaxOpenConns(1)
		s.SetMaxIdleConns(1)
	} else {
		s.SetMaxOpenConns(10)
		s.SetMaxIdleConns(5)
		s.SetConnMaxLifetime(5 * time.Minute)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(pctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{gorm: g, sql: s, driver: driver}
	if err := d.migrate(pctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	log.Debug("store opened", zap.String("driver", driver), zap.Int("schema", SchemaVersion))
	return d, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Driver returns the name of the SQL driver in use.
func (d *DB) Driver() string {
	return d.driver
}

type schemaVersion struct {
	ID      int `gorm:"primaryKey;autoIncrement:false"`
	Version int `gorm:"not null"`
}

func (schemaVersion) TableName() string { return "schema_version" }

// migrate creates the tables if absent and records the schema version.
// Upgrades are additive; existing users and weights are never dropped.
func (d *DB) migrate(ctx context.Context) error {
	g := d.gorm.WithContext(ctx)
	if err := g.AutoMigrate(&schemaVersion{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var sv schemaVersion
	err := g.Where("id = ?", 1).Take(&sv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sv = schemaVersion{ID: 1}
	case err != nil:
		return fmt.Errorf("migrate: read version: %w", err)
	case sv.Version > SchemaVersion:
		return fmt.Errorf("%w: found %d, want %d", domain.ErrSchemaTooNew, sv.Version, SchemaVersion)
	}

	if err := g.AutoMigrate(&userModel{}, &weightModel{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if sv.Version == SchemaVersion {
		return nil
	}
	sv.Version = SchemaVersion
	if err := g.Save(&sv).Error; err != nil {
		return fmt.Errorf("migrate: write version: %w", err)
	}
	return nil
}

// SchemaVersion returns the version recorded in the database.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var sv schemaVersion
	if err := d.gorm.WithContext(ctx).Where("id = ?", 1).Take(&sv).Error; err != nil {
		return 0, err
	}
	return sv.Version, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func newGormLogger(log *zap.Logger) logger.Interface {
	level := logger.Warn
	if log.Core().Enabled(zap.DebugLevel) {
		level = logger.Info
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
