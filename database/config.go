package database

import (
	"fmt"
	"time"
)

// DefaultPath is the SQLite file used when no path is configured.
const DefaultPath = "./out/diarscribe.db"

// Config holds run-history database configuration.
type Config struct {
	// Enabled controls whether runs are recorded.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file. ":memory:" keeps the history in memory.
	Path string `yaml:"path" mapstructure:"path"`

	// MaxOpenConns sets the maximum number of open connections. SQLite
	// serialises writers, so the default is 1.
	MaxOpenConns int `yaml:"max_open_conns" mapstructure:"max_open_conns" validate:"gte=0"`

	// MaxRetries is the number of connection attempts before giving up.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`

	// AutoMigrate controls whether the schema is migrated on startup.
	AutoMigrate bool `yaml:"auto_migrate" mapstructure:"auto_migrate"`

	// SlowQueryThreshold is the duration above which queries are logged as slow (e.g. "200ms").
	SlowQueryThreshold string `yaml:"slow_query_threshold" mapstructure:"slow_query_threshold"`

	// LogLevel sets the GORM log level: silent, error, warn or info.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 1
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.SlowQueryThreshold == "" {
		c.SlowQueryThreshold = "200ms"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks that required fields are present and parseable.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be > 0")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max_retries must be > 0")
	}
	if _, err := time.ParseDuration(c.SlowQueryThreshold); err != nil {
		return fmt.Errorf("invalid slow_query_threshold %q: %w", c.SlowQueryThreshold, err)
	}
	return nil
}
