// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"weighttrack/internal/domain"
)

// Config holds the process settings. Flags may override fields after Load.
type Config struct {
	Driver      string
	DSN         string
	Addr        string
	LogLevel    string
	LogJSON     bool
	GoalRule    string
	NotifyPhone string
}

// Load reads the environment, applying defaults for unset keys.
func Load() Config {
	return Config{
		Driver:      env("WEIGHTTRACK_DRIVER", "sqlite"),
		DSN:         env("WEIGHTTRACK_DSN", "weighttrack.db"),
		Addr:        env("ADDR", ":8080"),
		LogLevel:    env("LOG_LEVEL", "info"),
		LogJSON:     envBool("LOG_JSON", false),
		GoalRule:    env("GOAL_RULE", string(domain.GoalExact)),
		NotifyPhone: env("NOTIFY_PHONE", "123456789"),
	}
}

// Validate rejects settings the rest of the program cannot act on.
func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite", "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("config: unknown driver %q", c.Driver)
	}
	if c.Driver != "memory" && c.DSN == "" {
		return fmt.Errorf("config: a DSN is required for driver %q", c.Driver)
	}
	if _, err := domain.ParseGoalRule(c.GoalRule); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
