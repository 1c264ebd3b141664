package config

import (
	"path/filepath"

	"github.com/LeJamon/goMarketd/internal/storage/history"
)

// Config represents the complete marketd configuration
type Config struct {
	// Database holds the persisted market state
	Database DatabaseConfig `toml:"database" mapstructure:"database"`

	// History journals every submitted transaction
	History history.Config `toml:"history" mapstructure:"history"`

	Log LogConfig `toml:"log" mapstructure:"log"`

	Market MarketConfig `toml:"market" mapstructure:"market"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	// Path of the JSON log file. Empty logs to the console only.
	Path  string `toml:"path" mapstructure:"path"`
	Debug bool   `toml:"debug" mapstructure:"debug"`
}

// MarketConfig represents the [market] section
type MarketConfig struct {
	// GenesisFile is the JSON file read by `marketd init`
	GenesisFile string `toml:"genesis_file" mapstructure:"genesis_file"`

	// AmendmentsDisabled lists features to turn off, by name
	AmendmentsDisabled []string `toml:"amendments_disabled" mapstructure:"amendments_disabled"`

	// AmendmentsEnabled lists default-no features to turn on, by name
	AmendmentsEnabled []string `toml:"amendments_enabled" mapstructure:"amendments_enabled"`
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return "marketd.toml"
}

// ConfigPathFromDir returns the configuration path for a specific directory
func ConfigPathFromDir(configDir string) string {
	return filepath.Join(configDir, DefaultConfigPath())
}

// GetConfigPath returns the path to the main configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// resolve makes path relative to the directory of the config file.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.configPath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(c.configPath), path)
}

// DatabasePath returns the state directory, resolved against the config file.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database.Path)
}

// GenesisPath returns the genesis file, resolved against the config file.
func (c *Config) GenesisPath() string {
	return c.resolve(c.Market.GenesisFile)
}

// HistoryConfig returns the journal config with a relative sqlite DSN
// resolved against the config file.
func (c *Config) HistoryConfig() history.Config {
	h := c.History
	if h.Driver == history.DriverSQLite {
		h.DSN = c.resolve(h.DSN)
	}
	return h
}
