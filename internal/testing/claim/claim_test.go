// Package claim_test covers pull-based delivery to contract accounts.
package claim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	jtx "github.com/LeJamon/goMarketd/internal/testing"
	"github.com/LeJamon/goMarketd/internal/testing/auction"
	"github.com/LeJamon/goMarketd/internal/testing/claim"
)

const art = "ART-a1b2c3"

// settleToContracts runs an auction between a contract seller and a
// contract winner so that both legs end in escrow.
func settleToContracts(t *testing.T) (env *jtx.TestEnv, seller, winner *jtx.Account) {
	t.Helper()
	env = jtx.NewTestEnv(t)
	seller = jtx.NewAccount("vault-seller")
	winner = jtx.NewAccount("vault-winner")
	env.Fund(seller, jtx.NFT(art, 7))
	env.Fund(winner, jtx.Native(1000))
	env.SetContract(seller)
	env.SetContract(winner)

	result := env.Submit(auction.Create(seller, jtx.NFT(art, 7), env.Now()+60).MinPrice(100).Build())
	jtx.RequireTxSuccess(t, result)
	id := result.CreatedID()
	jtx.RequireTxSuccess(t, env.Submit(auction.BidNative(winner, id, 400)))
	env.AdvanceTime(61 * time.Second)

	result = env.Submit(auction.End(seller, id))
	jtx.RequireTxSuccess(t, result)
	require.Len(t, result.Events(tx.EventEscrowCredited), 2)
	return env, seller, winner
}

func TestClaim_DeliversEscrowedItemAndPayment(t *testing.T) {
	env, seller, winner := settleToContracts(t)

	// 400 less a 2.5% cut
	jtx.RequireClaimable(t, env, seller, sle.NativeToken, 0, 390)
	jtx.RequireClaimable(t, env, winner, art, 7, 1)
	jtx.RequireNative(t, env, seller, 0)
	jtx.RequireBalance(t, env, winner, art, 7, 0)

	result := env.Submit(claim.Claim(winner).Pair(art, 7).Native().Build())
	jtx.RequireTxSuccess(t, result)
	require.NotNil(t, result.Metadata.Claim)
	require.True(t, result.Metadata.Claim.NativeTotal.IsZero())
	require.Len(t, result.Metadata.Claim.Payments, 1)
	jtx.RequireBalance(t, env, winner, art, 7, 1)
	jtx.RequireClaimable(t, env, winner, art, 7, 0)

	result = env.Submit(claim.Claim(seller).Native().Build())
	jtx.RequireTxSuccess(t, result)
	require.True(t, result.Metadata.Claim.NativeTotal.Equal(amount.New(390)))
	jtx.RequireNative(t, env, seller, 390)
	jtx.RequireClaimable(t, env, seller, sle.NativeToken, 0, 0)
}

func TestClaim_Idempotent(t *testing.T) {
	env, seller, _ := settleToContracts(t)

	jtx.RequireTxSuccess(t, env.Submit(claim.Claim(seller).Native().Build()))
	jtx.RequireNative(t, env, seller, 390)

	result := env.Submit(claim.Claim(seller).Native().Build())
	jtx.RequireTxSuccess(t, result)
	require.True(t, result.Metadata.Claim.IsEmpty())
	jtx.RequireNative(t, env, seller, 390)
	jtx.RequireNative(t, env, env.Custody(), 0)
}

func TestClaim_ToDestination(t *testing.T) {
	env, seller, _ := settleToContracts(t)
	treasury := jtx.NewAccount("treasury")

	result := env.Submit(claim.Claim(seller).Native().To(treasury).Build())
	jtx.RequireTxSuccess(t, result)
	ev := jtx.RequireEvent(t, result, tx.EventClaimed)
	require.Equal(t, treasury.Address, ev.Attrs["destination"])
	jtx.RequireNative(t, env, treasury, 390)
	jtx.RequireNative(t, env, seller, 0)
}

func TestClaim_OnlyOwnEntries(t *testing.T) {
	env, seller, winner := settleToContracts(t)

	// the winner has no native entry; the seller's stays put
	result := env.Submit(claim.Claim(winner).Native().Build())
	jtx.RequireTxSuccess(t, result)
	require.True(t, result.Metadata.Claim.IsEmpty())
	jtx.RequireClaimable(t, env, seller, sle.NativeToken, 0, 390)
}

func TestClaim_Malformed(t *testing.T) {
	env, seller, _ := settleToContracts(t)

	jtx.RequireTxFail(t, env.Submit(claim.Claim(seller).Build()), tx.TemMALFORMED)
	jtx.RequireTxFail(t, env.Submit(claim.Claim(seller).Native().Native().Build()), tx.TemMALFORMED)
	jtx.RequireTxFail(t, env.Submit(claim.Claim(seller).Pair("bad", 1).Build()), tx.TemBAD_ASSET)
}

// Value is neither created nor destroyed by a full market round trip.
func TestClaim_ConservesValue(t *testing.T) {
	env, seller, winner := settleToContracts(t)
	jtx.RequireTxSuccess(t, env.Submit(claim.Claim(seller).Native().Build()))
	jtx.RequireTxSuccess(t, env.Submit(claim.Claim(winner).Pair(art, 7).Build()))

	var total uint64
	for _, acc := range []*jtx.Account{seller, winner, env.Owner(), env.Custody()} {
		v, ok := env.NativeBalance(acc).Uint64()
		require.True(t, ok)
		total += v
	}
	require.Equal(t, uint64(1000), total)

	var items uint64
	for _, acc := range []*jtx.Account{seller, winner, env.Custody()} {
		v, _ := env.Balance(acc, art, 7).Uint64()
		items += v
	}
	require.Equal(t, uint64(1), items)
}
