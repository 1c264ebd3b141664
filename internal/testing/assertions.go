package testing

import (
	"testing"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/stretchr/testify/require"
)

// RequireTxSuccess fails the test if the transaction was not applied.
func RequireTxSuccess(t *testing.T, r TxResult) {
	t.Helper()
	require.True(t, r.Success, "expected tesSUCCESS, got %s: %s", r.Code, r.Message)
}

// RequireTxFail fails the test unless the transaction failed with the
// expected code.
func RequireTxFail(t *testing.T, r TxResult, expected tx.Result) {
	t.Helper()
	require.False(t, r.Success, "expected %s, transaction was applied", expected)
	require.Equal(t, expected.String(), r.Code, "unexpected result: %s", r.Message)
}

// RequireBalance checks the host balance of an account.
func RequireBalance(t *testing.T, env *TestEnv, acc *Account, token string, nonce uint64, expected uint64) {
	t.Helper()
	got := env.Balance(acc, token, nonce)
	require.True(t, got.Equal(amount.New(expected)),
		"balance of %s in %s/%d: expected %d, got %s", acc.Name, token, nonce, expected, got)
}

// RequireNative checks the native balance of an account.
func RequireNative(t *testing.T, env *TestEnv, acc *Account, expected uint64) {
	t.Helper()
	RequireBalance(t, env, acc, sle.NativeToken, 0, expected)
}

// RequireClaimable checks the escrowed amount of an account.
func RequireClaimable(t *testing.T, env *TestEnv, acc *Account, token string, nonce uint64, expected uint64) {
	t.Helper()
	got := env.Claimable(acc, token, nonce)
	require.True(t, got.Equal(amount.New(expected)),
		"claimable of %s in %s/%d: expected %d, got %s", acc.Name, token, nonce, expected, got)
}

// RequireEvent returns the single event with the given name.
func RequireEvent(t *testing.T, r TxResult, name string) tx.Event {
	t.Helper()
	events := r.Events(name)
	require.Len(t, events, 1, "expected one %s event", name)
	return events[0]
}

// RequireNoEvent fails if the result carries an event with the given name.
func RequireNoEvent(t *testing.T, r TxResult, name string) {
	t.Helper()
	require.Empty(t, r.Events(name), "unexpected %s event", name)
}
