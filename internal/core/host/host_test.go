package host

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

const art = "ART-0a1b2c"

func TestLedgerTransfer(t *testing.T) {
	view := state.NewMemoryView()
	l := NewLedger(view)
	alice := crypto.DeriveKeyPair("alice").AccountID
	bob := crypto.DeriveKeyPair("bob").AccountID

	require.NoError(t, l.Credit(alice, sle.Native(100)))
	require.NoError(t, l.Transfer(alice, bob, sle.Native(40)))

	bal, err := l.Balance(alice, sle.NativeToken, 0)
	require.NoError(t, err)
	assert.Equal(t, "60", bal.String())
	bal, err = l.Balance(bob, sle.NativeToken, 0)
	require.NoError(t, err)
	assert.Equal(t, "40", bal.String())

	err = l.Transfer(bob, alice, sle.Native(41))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	require.NoError(t, l.Transfer(bob, alice, sle.Native(40)))
	exists, err := view.Exists(keylet.Balance(bob, sle.NativeToken, 0))
	require.NoError(t, err)
	assert.False(t, exists, "emptied balances are erased")
}

func TestLedgerBalancesPerNonce(t *testing.T) {
	l := NewLedger(state.NewMemoryView())
	alice := crypto.DeriveKeyPair("alice").AccountID

	require.NoError(t, l.Credit(alice, sle.NewAsset(art, 1, 3)))
	require.NoError(t, l.Credit(alice, sle.NewAsset(art, 2, 5)))

	one, err := l.Balance(alice, art, 1)
	require.NoError(t, err)
	two, err := l.Balance(alice, art, 2)
	require.NoError(t, err)
	assert.Equal(t, "3", one.String())
	assert.Equal(t, "5", two.String())
}

func TestCanReceiveDirect(t *testing.T) {
	l := NewLedger(state.NewMemoryView())
	vault := crypto.DeriveKeyPair("vault").AccountID

	ok, err := l.CanReceiveDirect(vault)
	require.NoError(t, err)
	assert.True(t, ok, "unknown accounts receive directly")

	require.NoError(t, l.SetContract(vault, true))
	ok, err = l.CanReceiveDirect(vault)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.SetContract(vault, false))
	ok, err = l.CanReceiveDirect(vault)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMetadata(t *testing.T) {
	m := NewMetadata(state.NewMemoryView())
	creator := crypto.DeriveKeyPair("creator").AccountID

	bp, err := m.RoyaltyBP(art, 1)
	require.NoError(t, err)
	assert.Zero(t, bp)
	who, err := m.Creator(art, 1)
	require.NoError(t, err)
	assert.True(t, crypto.IsZeroAccountID(who))

	require.NoError(t, m.SetTokenInfo(sle.TokenInfo{Token: art, Nonce: 1, RoyaltyBP: 1000, Creator: creator}))
	bp, err = m.RoyaltyBP(art, 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(1000), bp)
	who, err = m.Creator(art, 1)
	require.NoError(t, err)
	assert.Equal(t, creator, who)

	assert.ErrorIs(t, m.SetTokenInfo(sle.TokenInfo{Token: art, Nonce: 2, RoyaltyBP: amount.BasisPoints, Creator: creator}), ErrRoyaltyTooHigh)
	assert.ErrorIs(t, m.SetTokenInfo(sle.TokenInfo{Token: art, Nonce: 2, RoyaltyBP: 10}), ErrNoCreator)
	assert.Error(t, m.SetTokenInfo(sle.TokenInfo{Token: "bad", Nonce: 2}))
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestTimestamp(t *testing.T) {
	assert.Equal(t, uint64(1700000000), Timestamp(fixedClock(time.Unix(1700000000, 999))))
	assert.Zero(t, Timestamp(fixedClock(time.Unix(-5, 0))))
	assert.NotZero(t, Timestamp(SystemClock{}))
}
