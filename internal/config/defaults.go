package config

import (
	"github.com/spf13/viper"

	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
)

// setDefaults sets all default values
func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.backend", "pebble")
	v.SetDefault("database.path", "db")
	v.SetDefault("database.cache_size", state.DefaultCacheSize)
	v.SetDefault("database.compression", "lz4")

	// History defaults
	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "history.db")
	v.SetDefault("history.max_open_conns", 4)

	// Log defaults
	v.SetDefault("log.path", "")
	v.SetDefault("log.debug", false)

	// Market defaults
	v.SetDefault("market.genesis_file", "genesis.json")
	v.SetDefault("market.amendments_disabled", []string{})
	v.SetDefault("market.amendments_enabled", []string{})
}
