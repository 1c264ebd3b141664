// Package genesis describes and writes the initial marketplace state: the
// operator config, funded accounts and token metadata.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

var (
	// ErrAlreadyInitialized is returned by Apply on a view holding a market config
	ErrAlreadyInitialized = errors.New("state is already initialized")

	ErrMissingOwner   = errors.New("genesis owner is required")
	ErrMissingCustody = errors.New("genesis custody is required")
	ErrBadCut         = errors.New("genesis cut_bp must be in (0, 10000)")
)

// Account is a funded account at genesis.
type Account struct {
	Address string `json:"address"`
	// Contract accounts cannot receive pushed transfers
	Contract bool        `json:"contract,omitempty"`
	Balances []sle.Asset `json:"balances,omitempty"`
}

// Token is the metadata of one token nonce.
type Token struct {
	Token     string `json:"token"`
	Nonce     uint64 `json:"nonce"`
	Creator   string `json:"creator,omitempty"`
	RoyaltyBP uint16 `json:"royalty_bp,omitempty"`
}

// Config is the genesis file.
type Config struct {
	Owner     string    `json:"owner"`
	Custody   string    `json:"custody"`
	CutBP     uint16    `json:"cut_bp"`
	Whitelist []string  `json:"whitelist,omitempty"`
	Accounts  []Account `json:"accounts,omitempty"`
	Tokens    []Token   `json:"tokens,omitempty"`
}

// Load reads a genesis file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse genesis %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks addresses, tokens and amounts without touching state.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return ErrMissingOwner
	}
	if _, err := sle.DecodeAccountID(c.Owner); err != nil {
		return fmt.Errorf("genesis owner: %w", err)
	}
	if c.Custody == "" {
		return ErrMissingCustody
	}
	if _, err := sle.DecodeAccountID(c.Custody); err != nil {
		return fmt.Errorf("genesis custody: %w", err)
	}
	if c.CutBP == 0 || c.CutBP >= amount.BasisPoints {
		return ErrBadCut
	}
	for _, token := range c.Whitelist {
		if err := sle.ValidateToken(token); err != nil {
			return fmt.Errorf("genesis whitelist: %w", err)
		}
	}
	for _, a := range c.Accounts {
		if _, err := sle.DecodeAccountID(a.Address); err != nil {
			return fmt.Errorf("genesis account %q: %w", a.Address, err)
		}
		for _, b := range a.Balances {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("genesis balance of %s: %w", a.Address, err)
			}
		}
	}
	for _, t := range c.Tokens {
		if t.Creator != "" {
			if _, err := sle.DecodeAccountID(t.Creator); err != nil {
				return fmt.Errorf("genesis creator of %s/%d: %w", t.Token, t.Nonce, err)
			}
		}
	}
	return nil
}

// Apply writes the genesis state into an empty view. Nothing is written
// unless every entry is valid.
func Apply(view sle.LedgerView, c *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	exists, err := view.Exists(keylet.MarketConfig())
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInitialized
	}

	stage := tx.NewApplyStateTable(view)
	if err := write(stage, c); err != nil {
		return err
	}
	if _, err := stage.Apply(); err != nil {
		return fmt.Errorf("commit genesis: %w", err)
	}
	return nil
}

func write(view sle.LedgerView, c *Config) error {
	owner, _ := sle.DecodeAccountID(c.Owner)
	custody, _ := sle.DecodeAccountID(c.Custody)
	market := &sle.MarketConfig{Owner: owner, Custody: custody, CutBP: c.CutBP}
	market.AddToWhitelist(c.Whitelist...)
	if err := sle.WriteMarketConfig(view, market); err != nil {
		return fmt.Errorf("write market config: %w", err)
	}

	gateway := host.NewLedger(view)
	for _, a := range c.Accounts {
		id, _ := sle.DecodeAccountID(a.Address)
		if a.Contract {
			if err := gateway.SetContract(id, true); err != nil {
				return fmt.Errorf("flag %s: %w", a.Address, err)
			}
		}
		for _, b := range a.Balances {
			if err := gateway.Credit(id, b); err != nil {
				return fmt.Errorf("fund %s: %w", a.Address, err)
			}
		}
	}

	meta := host.NewMetadata(view)
	for _, t := range c.Tokens {
		info := sle.TokenInfo{Token: t.Token, Nonce: t.Nonce, RoyaltyBP: t.RoyaltyBP}
		if t.Creator != "" {
			info.Creator, _ = sle.DecodeAccountID(t.Creator)
		}
		if err := meta.SetTokenInfo(info); err != nil {
			return fmt.Errorf("token %s/%d: %w", t.Token, t.Nonce, err)
		}
	}
	return nil
}
