// Package admin_test contains integration tests for the operator
// transactions.
package admin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	jtx "github.com/LeJamon/goMarketd/internal/testing"
	"github.com/LeJamon/goMarketd/internal/testing/admin"
	"github.com/LeJamon/goMarketd/internal/testing/auction"
	"github.com/LeJamon/goMarketd/internal/testing/offer"
)

const (
	art = "ART-a1b2c3"
	usd = "USDC-c0ffee"
)

func TestAdmin_OwnerOnly(t *testing.T) {
	env := jtx.NewTestEnv(t)
	mallory := jtx.NewAccount("mallory")

	jtx.RequireTxFail(t, env.Submit(admin.Pause(mallory)), tx.TecNO_PERMISSION)
	jtx.RequireTxFail(t, env.Submit(admin.Unpause(mallory)), tx.TecNO_PERMISSION)
	jtx.RequireTxFail(t, env.Submit(admin.SetCut(mallory, 100)), tx.TecNO_PERMISSION)
	jtx.RequireTxFail(t, env.Submit(admin.Whitelist(mallory).Add(usd).Build()), tx.TecNO_PERMISSION)

	cfg := env.MarketConfig()
	require.False(t, cfg.Paused)
	require.Equal(t, uint16(jtx.DefaultCutBP), cfg.CutBP)
}

func TestAdmin_PauseBlocksTrading(t *testing.T) {
	env := jtx.NewTestEnv(t)
	seller := jtx.NewAccount("seller")
	env.Fund(seller, jtx.NFT(art, 1))
	before := env.MarketConfig().Version

	result := env.Submit(admin.Pause(env.Owner()))
	jtx.RequireTxSuccess(t, result)
	jtx.RequireEvent(t, result, tx.EventPaused)
	require.True(t, env.MarketConfig().Paused)
	require.Greater(t, env.MarketConfig().Version, before)

	create := auction.Create(seller, jtx.NFT(art, 1), env.Now()+100).Build()
	jtx.RequireTxFail(t, env.Submit(create), tx.TecPAUSED)
	jtx.RequireBalance(t, env, seller, art, 1, 1)

	// administration stays available while paused
	jtx.RequireTxSuccess(t, env.Submit(admin.SetCut(env.Owner(), 300)))

	jtx.RequireTxSuccess(t, env.Submit(admin.Unpause(env.Owner())))
	env.AdvanceTime(time.Second)
	jtx.RequireTxSuccess(t, env.Submit(create))
}

func TestAdmin_SetCut(t *testing.T) {
	env := jtx.NewTestEnv(t)
	seller := jtx.NewAccount("seller")
	bidder := jtx.NewAccount("bidder")
	env.Fund(seller, jtx.NFT(art, 1), jtx.NFT(art, 2))
	env.Fund(bidder, jtx.Native(10000))

	jtx.RequireTxFail(t, env.Submit(admin.SetCut(env.Owner(), 0)), tx.TemBAD_CUT)
	jtx.RequireTxFail(t, env.Submit(admin.SetCut(env.Owner(), 10000)), tx.TemBAD_CUT)

	result := env.Submit(auction.Create(seller, jtx.NFT(art, 1), env.Now()+100).Build())
	jtx.RequireTxSuccess(t, result)
	first := result.CreatedID()

	result = env.Submit(admin.SetCut(env.Owner(), 1000))
	jtx.RequireTxSuccess(t, result)
	ev := jtx.RequireEvent(t, result, tx.EventCutSet)
	require.Equal(t, uint16(jtx.DefaultCutBP), ev.Attrs["previous_bp"])

	result = env.Submit(auction.Create(seller, jtx.NFT(art, 2), env.Now()+100).Build())
	jtx.RequireTxSuccess(t, result)
	second := result.CreatedID()

	// the cut is fixed when the auction is listed
	require.Equal(t, uint16(jtx.DefaultCutBP), env.Auction(first).MarketplaceCutBP)
	require.Equal(t, uint16(1000), env.Auction(second).MarketplaceCutBP)

	jtx.RequireTxSuccess(t, env.Submit(auction.BidNative(bidder, first, 1000)))
	jtx.RequireTxSuccess(t, env.Submit(auction.BidNative(bidder, second, 1000)))
	env.AdvanceTime(101 * time.Second)
	jtx.RequireTxSuccess(t, env.Submit(auction.End(seller, first)))
	jtx.RequireTxSuccess(t, env.Submit(auction.End(seller, second)))

	jtx.RequireNative(t, env, env.Owner(), 25+100)
	jtx.RequireNative(t, env, seller, 975+900)
}

func TestAdmin_Whitelist(t *testing.T) {
	env := jtx.NewTestEnv(t)
	buyer := jtx.NewAccount("buyer")
	env.Fund(buyer, jtx.Native(1000), jtx.Fungible(usd, 1000))

	jtx.RequireTxFail(t, env.Submit(admin.Whitelist(env.Owner()).Build()), tx.TemMALFORMED)
	jtx.RequireTxFail(t, env.Submit(admin.Whitelist(env.Owner()).Add("usd").Build()), tx.TemBAD_ASSET)

	result := env.Submit(admin.Whitelist(env.Owner()).Add(usd).Build())
	jtx.RequireTxSuccess(t, result)
	jtx.RequireEvent(t, result, tx.EventWhitelistUpdated)
	require.Equal(t, []string{usd}, env.MarketConfig().Whitelist)

	native := offer.Create(buyer, jtx.NFT(art, 1), jtx.Native(100), env.Now()+100).Build()
	jtx.RequireTxFail(t, env.Submit(native), tx.TecNOT_WHITELISTED)
	jtx.RequireTxSuccess(t, env.Submit(offer.Create(buyer, jtx.NFT(art, 1), jtx.Fungible(usd, 100), env.Now()+100).Build()))

	jtx.RequireTxSuccess(t, env.Submit(admin.Whitelist(env.Owner()).Remove(usd).Build()))
	require.Empty(t, env.MarketConfig().Whitelist)
	jtx.RequireTxSuccess(t, env.Submit(native))
}
