package claim

import (
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	claimtx "github.com/LeJamon/goMarketd/internal/core/tx/claim"
	"github.com/LeJamon/goMarketd/internal/testing"
)

// ClaimBuilder provides a fluent interface for building EscrowClaim transactions.
type ClaimBuilder struct {
	account     *testing.Account
	pairs       []escrow.Pair
	destination string
}

// Claim starts an EscrowClaim for account.
func Claim(account *testing.Account) *ClaimBuilder {
	return &ClaimBuilder{account: account}
}

// Pair adds a token nonce to claim.
func (b *ClaimBuilder) Pair(token string, nonce uint64) *ClaimBuilder {
	b.pairs = append(b.pairs, escrow.Pair{Token: token, Nonce: nonce})
	return b
}

// Native adds the native currency to the claim.
func (b *ClaimBuilder) Native() *ClaimBuilder {
	return b.Pair("NATIVE", 0)
}

// To pays the claim to another account.
func (b *ClaimBuilder) To(dest *testing.Account) *ClaimBuilder {
	b.destination = dest.Address
	return b
}

// Build constructs the EscrowClaim transaction.
func (b *ClaimBuilder) Build() tx.Transaction {
	c := claimtx.NewEscrowClaim(b.account.Address, b.pairs...)
	c.Destination = b.destination
	return c
}
