package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

const (
	art  = "ART-0a1b2c"
	usdc = "USDC-aaaaaa"
)

type fixture struct {
	view    *state.MemoryView
	gateway *host.Ledger
	escrow  *Ledger
	custody [20]byte
	vault   [20]byte
	dest    [20]byte
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	view := state.NewMemoryView()
	gateway := host.NewLedger(view)
	custody := crypto.DeriveKeyPair("custody").AccountID
	require.NoError(t, gateway.Credit(custody, sle.Native(1000)))
	require.NoError(t, gateway.Credit(custody, sle.NewAsset(art, 1, 10)))
	require.NoError(t, gateway.Credit(custody, sle.NewAsset(usdc, 0, 500)))
	return &fixture{
		view:    view,
		gateway: gateway,
		escrow:  New(view, gateway, custody),
		custody: custody,
		vault:   crypto.DeriveKeyPair("vault").AccountID,
		dest:    crypto.DeriveKeyPair("dest").AccountID,
	}
}

func (f *fixture) balance(t *testing.T, who [20]byte, token string, nonce uint64) string {
	t.Helper()
	v, err := f.gateway.Balance(who, token, nonce)
	require.NoError(t, err)
	return v.String()
}

func TestCreditAccumulates(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(30)))
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(12)))
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.Zero))

	v, err := f.escrow.Amount(f.vault, sle.NativeToken, 0)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())

	v, err = f.escrow.Amount(f.dest, sle.NativeToken, 0)
	require.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestClaim(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(30)))
	require.NoError(t, f.escrow.Credit(f.vault, usdc, 0, amount.New(7)))
	require.NoError(t, f.escrow.Credit(f.vault, art, 1, amount.New(1)))

	pairs := []Pair{
		{Token: art, Nonce: 1},
		{Token: "NONE-000000", Nonce: 4},
		{Token: sle.NativeToken},
		{Token: usdc},
	}
	result, err := f.escrow.Claim(f.vault, pairs, f.dest)
	require.NoError(t, err)

	assert.Equal(t, "30", result.NativeTotal.String())
	require.Len(t, result.Payments, 2)
	assert.Equal(t, art, result.Payments[0].Token, "payments follow pair order")
	assert.Equal(t, usdc, result.Payments[1].Token)

	assert.Equal(t, "30", f.balance(t, f.dest, sle.NativeToken, 0))
	assert.Equal(t, "7", f.balance(t, f.dest, usdc, 0))
	assert.Equal(t, "1", f.balance(t, f.dest, art, 1))
	assert.Equal(t, "970", f.balance(t, f.custody, sle.NativeToken, 0))

	exists, err := f.view.Exists(keylet.Claimable(f.vault, sle.NativeToken, 0))
	require.NoError(t, err)
	assert.False(t, exists)

	again, err := f.escrow.Claim(f.vault, pairs, f.dest)
	require.NoError(t, err)
	assert.True(t, again.IsEmpty(), "second claim yields nothing")
}

func TestClaimOnlyOwnEntries(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(30)))

	result, err := f.escrow.Claim(f.dest, []Pair{{Token: sle.NativeToken}}, f.dest)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())

	v, err := f.escrow.Amount(f.vault, sle.NativeToken, 0)
	require.NoError(t, err)
	assert.Equal(t, "30", v.String())
}

func TestClaimDuplicatePairs(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(30)))

	result, err := f.escrow.Claim(f.vault, []Pair{{Token: sle.NativeToken}, {Token: sle.NativeToken}}, f.vault)
	require.NoError(t, err)
	assert.Equal(t, "30", result.NativeTotal.String())
}

func TestClaimUnderfundedCustody(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.escrow.Credit(f.vault, sle.NativeToken, 0, amount.New(5000)))

	_, err := f.escrow.Claim(f.vault, []Pair{{Token: sle.NativeToken}}, f.vault)
	assert.ErrorIs(t, err, host.ErrInsufficientBalance)
}
