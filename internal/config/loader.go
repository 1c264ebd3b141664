package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (marketd.toml)
// 3. Environment variables (MARKETD_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load main configuration file
	if err := loadMainConfig(v, configPath); err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix("MARKETD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = configPath

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadMainConfig loads the main configuration file
func loadMainConfig(v *viper.Viper, configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path cannot be empty")
	}

	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	return nil
}

// LoadConfigFromDir loads marketd.toml from a directory
func LoadConfigFromDir(configDir string) (*Config, error) {
	return LoadConfig(ConfigPathFromDir(configDir))
}

// LoadDefaultConfig loads configuration from the default location
func LoadDefaultConfig() (*Config, error) {
	return LoadConfig(DefaultConfigPath())
}

// ReloadConfig reloads configuration from the same path
func ReloadConfig(existingConfig *Config) (*Config, error) {
	return LoadConfig(existingConfig.GetConfigPath())
}

// SaveExampleConfig saves an example configuration file
func SaveExampleConfig(configPath string) error {
	v := viper.New()
	for key, value := range generateExampleConfig() {
		v.Set(key, value)
	}

	v.SetConfigFile(configPath)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}

// generateExampleConfig generates example configuration values
func generateExampleConfig() map[string]interface{} {
	return map[string]interface{}{
		"database.backend":     "pebble",
		"database.path":        "db",
		"database.cache_size":  4096,
		"database.compression": "lz4",

		"history.driver":         "sqlite",
		"history.dsn":            "history.db",
		"history.max_open_conns": 4,

		"log.path":  "marketd.log",
		"log.debug": false,

		"market.genesis_file":        "genesis.json",
		"market.amendments_disabled": []string{},
	}
}
