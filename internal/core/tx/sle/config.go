package sle

import (
	"errors"
	"slices"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
)

// ErrNoMarketConfig is returned when the state has not been initialized.
var ErrNoMarketConfig = errors.New("market config not found")

// MarketConfig is the operator-owned configuration cell. Version is bumped
// on every change so that snapshots can be traced back to it.
type MarketConfig struct {
	Owner     [20]byte `codec:"Owner"`
	Custody   [20]byte `codec:"Custody"`
	CutBP     uint16   `codec:"CutBP"`
	Version   uint32   `codec:"Version"`
	Paused    bool     `codec:"Paused"`
	Whitelist []string `codec:"Whitelist"`
}

// IsWhitelisted reports whether token may be used as a payment token.
// An empty whitelist allows every token.
func (c *MarketConfig) IsWhitelisted(token string) bool {
	if len(c.Whitelist) == 0 {
		return true
	}
	_, found := slices.BinarySearch(c.Whitelist, token)
	return found
}

// AddToWhitelist inserts tokens keeping the list sorted and unique.
func (c *MarketConfig) AddToWhitelist(tokens ...string) {
	for _, t := range tokens {
		i, found := slices.BinarySearch(c.Whitelist, t)
		if !found {
			c.Whitelist = slices.Insert(c.Whitelist, i, t)
		}
	}
}

// RemoveFromWhitelist drops tokens from the list.
func (c *MarketConfig) RemoveFromWhitelist(tokens ...string) {
	for _, t := range tokens {
		if i, found := slices.BinarySearch(c.Whitelist, t); found {
			c.Whitelist = slices.Delete(c.Whitelist, i, i+1)
		}
	}
}

// ReadMarketConfig loads the singleton config.
func ReadMarketConfig(view LedgerView) (*MarketConfig, error) {
	cfg, err := Read[MarketConfig](view, keylet.MarketConfig())
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNoMarketConfig
	}
	return cfg, nil
}

// WriteMarketConfig bumps the version and stores the config.
func WriteMarketConfig(view LedgerView, cfg *MarketConfig) error {
	cfg.Version++
	return Put(view, keylet.MarketConfig(), cfg)
}
