package config

import (
	"fmt"
	"slices"

	"github.com/LeJamon/goMarketd/internal/storage/compression"
	"github.com/LeJamon/goMarketd/internal/storage/database"
	"github.com/LeJamon/goMarketd/internal/storage/history"
)

// DatabaseConfig represents the [database] section
// Configures the key-value store holding the market state
type DatabaseConfig struct {
	Backend     string `toml:"backend" mapstructure:"backend"`
	Path        string `toml:"path" mapstructure:"path"`
	CacheSize   int    `toml:"cache_size" mapstructure:"cache_size"`
	Compression string `toml:"compression" mapstructure:"compression"`
}

// Validate performs validation on the database configuration
func (d *DatabaseConfig) Validate() error {
	validBackends := []string{database.BackendPebble, database.BackendBBolt}
	if !slices.Contains(validBackends, d.Backend) {
		return fmt.Errorf("invalid database backend: %q (valid options: pebble, bbolt)", d.Backend)
	}
	if d.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if d.CacheSize < 0 {
		return fmt.Errorf("cache_size must be non-negative, got %d", d.CacheSize)
	}
	if !compression.IsAvailable(d.Compression) {
		return fmt.Errorf("unknown compression %q (available: %v)", d.Compression, compression.Available())
	}
	return nil
}

// validateHistory checks the [history] section
func validateHistory(h *history.Config) error {
	switch h.Driver {
	case history.DriverNone:
		return nil
	case history.DriverSQLite, history.DriverPostgres:
		if h.DSN == "" {
			return fmt.Errorf("history dsn is required for driver %s", h.Driver)
		}
	default:
		return fmt.Errorf("invalid history driver: %q (valid options: sqlite, postgres, none)", h.Driver)
	}
	if h.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must be non-negative, got %d", h.MaxOpenConns)
	}
	return nil
}
