// Command weighttrack records body-weight entries against a local store and
// serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"weighttrack/internal/adapter/gormstore"
	"weighttrack/internal/adapter/memory"
	"weighttrack/internal/adapter/notify"
	"weighttrack/internal/adapter/postgres"
	"weighttrack/internal/app"
	"weighttrack/internal/config"
	"weighttrack/internal/domain"
	"weighttrack/internal/logging"
)

func main() {
	root, cleanup := newRootCmd()
	err := root.Execute()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// store is what every backing adapter provides.
type store interface {
	domain.UserRepository
	domain.WeightRepository
	Close() error
	Driver() string
}

// versioned stores report the applied schema revision.
type versioned interface {
	SchemaVersion(ctx context.Context) (int, error)
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.Open(ctx, cfg.DSN)
	default:
		return gormstore.Open(ctx, cfg.Driver, cfg.DSN, log)
	}
}

// services is the wired application for one command invocation.
type services struct {
	cfg      config.Config
	log      *zap.Logger
	store    store
	accounts *app.AccountService
	weights  *app.WeightService
	goals    *app.GoalService
}

func wire(ctx context.Context, cfg config.Config) (*services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return nil, err
	}

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	log.Debug("store opened", zap.String("driver", db.Driver()))

	rule, _ := domain.ParseGoalRule(cfg.GoalRule)
	goals := app.NewGoalService(db, rule, notify.NewLogNotifier(log), cfg.NotifyPhone, log)

	return &services{
		cfg:      cfg,
		log:      log,
		store:    db,
		accounts: app.NewAccountService(db, log),
		weights:  app.NewWeightService(db, goals, log),
		goals:    goals,
	}, nil
}

func (s *services) close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("store close", zap.Error(err))
	}
	_ = s.log.Sync()
}
