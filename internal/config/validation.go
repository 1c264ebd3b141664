package config

import (
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amendment"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := config.Database.Validate(); err != nil {
		return fmt.Errorf("database validation failed: %w", err)
	}
	if err := validateHistory(&config.History); err != nil {
		return fmt.Errorf("history validation failed: %w", err)
	}
	if err := config.Market.Validate(); err != nil {
		return fmt.Errorf("market validation failed: %w", err)
	}
	return nil
}

// Validate checks that every amendment named in the [market] section exists
// and that none is both enabled and disabled.
func (m *MarketConfig) Validate() error {
	disabled := make(map[string]bool, len(m.AmendmentsDisabled))
	for _, name := range m.AmendmentsDisabled {
		if amendment.GetFeatureByName(name) == nil {
			return fmt.Errorf("unknown amendment in amendments_disabled: %s", name)
		}
		disabled[name] = true
	}
	for _, name := range m.AmendmentsEnabled {
		if amendment.GetFeatureByName(name) == nil {
			return fmt.Errorf("unknown amendment in amendments_enabled: %s", name)
		}
		if disabled[name] {
			return fmt.Errorf("amendment %s is both enabled and disabled", name)
		}
	}
	return nil
}

// Rules builds the amendment rules from the defaults and the [market] overrides.
func (m *MarketConfig) Rules() (*amendment.Rules, error) {
	b := amendment.NewRulesBuilder()
	for _, name := range m.AmendmentsEnabled {
		if err := b.EnableByName(name); err != nil {
			return nil, err
		}
	}
	for _, name := range m.AmendmentsDisabled {
		if err := b.DisableByName(name); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}
