package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

func TestEscrowClaimValidate(t *testing.T) {
	alice := crypto.DeriveKeyPair("alice").Address()
	bob := crypto.DeriveKeyPair("bob").Address()
	native := escrow.Pair{Token: "NATIVE"}
	art := escrow.Pair{Token: "ART-abcdef", Nonce: 3}

	tests := []struct {
		name   string
		mutate func(c *EscrowClaim)
		code   string
	}{
		{"valid", func(c *EscrowClaim) {}, ""},
		{"valid destination", func(c *EscrowClaim) { c.Destination = bob }, ""},
		{"no pairs", func(c *EscrowClaim) { c.Pairs = nil }, "temMALFORMED"},
		{"bad token", func(c *EscrowClaim) { c.Pairs = append(c.Pairs, escrow.Pair{Token: "x"}) }, "temBAD_ASSET"},
		{"native with nonce", func(c *EscrowClaim) { c.Pairs = []escrow.Pair{{Token: "NATIVE", Nonce: 1}} }, "temBAD_ASSET"},
		{"duplicate pair", func(c *EscrowClaim) { c.Pairs = append(c.Pairs, art) }, "temMALFORMED"},
		{"bad destination", func(c *EscrowClaim) { c.Destination = "rNotAnAddress" }, "temMALFORMED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEscrowClaim(alice, native, art)
			tt.mutate(c)
			err := c.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}
