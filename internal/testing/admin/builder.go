package admin

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
	admintx "github.com/LeJamon/goMarketd/internal/core/tx/admin"
	"github.com/LeJamon/goMarketd/internal/testing"
)

// Pause builds a MarketPause.
func Pause(owner *testing.Account) tx.Transaction {
	return admintx.NewMarketPause(owner.Address)
}

// Unpause builds a MarketUnpause.
func Unpause(owner *testing.Account) tx.Transaction {
	return admintx.NewMarketUnpause(owner.Address)
}

// SetCut builds a MarketSetCut.
func SetCut(owner *testing.Account, cutBP uint16) tx.Transaction {
	return admintx.NewMarketSetCut(owner.Address, cutBP)
}

// WhitelistBuilder provides a fluent interface for building MarketWhitelistSet transactions.
type WhitelistBuilder struct {
	owner  *testing.Account
	add    []string
	remove []string
}

// Whitelist starts a MarketWhitelistSet.
func Whitelist(owner *testing.Account) *WhitelistBuilder {
	return &WhitelistBuilder{owner: owner}
}

// Add allows tokens as payment.
func (b *WhitelistBuilder) Add(tokens ...string) *WhitelistBuilder {
	b.add = append(b.add, tokens...)
	return b
}

// Remove disallows tokens as payment.
func (b *WhitelistBuilder) Remove(tokens ...string) *WhitelistBuilder {
	b.remove = append(b.remove, tokens...)
	return b
}

// Build constructs the MarketWhitelistSet transaction.
func (b *WhitelistBuilder) Build() tx.Transaction {
	return admintx.NewMarketWhitelistSet(b.owner.Address, b.add, b.remove)
}
