// Package offer_test contains integration tests for the offer registry.
package offer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	jtx "github.com/LeJamon/goMarketd/internal/testing"
	"github.com/LeJamon/goMarketd/internal/testing/auction"
	"github.com/LeJamon/goMarketd/internal/testing/offer"
)

const (
	art = "ART-a1b2c3"
	usd = "USDC-c0ffee"
)

type parties struct {
	owner, buyer, creator *jtx.Account
}

func setup(t *testing.T) (*jtx.TestEnv, parties) {
	env := jtx.NewTestEnv(t)
	p := parties{
		owner:   jtx.NewAccount("holder"),
		buyer:   jtx.NewAccount("buyer"),
		creator: jtx.NewAccount("creator"),
	}
	env.Fund(p.owner, jtx.NFT(art, 1))
	env.Fund(p.buyer, jtx.Native(1000), jtx.Fungible(usd, 1000))
	env.SetRoyalty(art, 1, p.creator, 1000)
	return env, p
}

func createOffer(t *testing.T, env *jtx.TestEnv, buyer *jtx.Account, price uint64) uint64 {
	t.Helper()
	result := env.Submit(offer.Create(buyer, jtx.NFT(art, 1), jtx.Native(price), env.Now()+100).Build())
	jtx.RequireTxSuccess(t, result)
	return result.CreatedID()
}

// --------------------------------------------------------------------------
// Create and withdraw.
// --------------------------------------------------------------------------

func TestOffer_CreateWithdrawRefunds(t *testing.T) {
	env, p := setup(t)

	id := createOffer(t, env, p.buyer, 300)
	jtx.RequireNative(t, env, p.buyer, 700)
	jtx.RequireNative(t, env, env.Custody(), 300)

	o := env.Offer(id)
	require.NotNil(t, o)
	require.Equal(t, p.buyer.ID, o.Offeror)
	require.Equal(t, uint16(jtx.DefaultCutBP), o.MarketplaceCutBP)
	require.Equal(t, uint16(1000), o.CreatorRoyaltyBP)

	jtx.RequireTxFail(t, env.Submit(offer.Withdraw(p.owner, id)), tx.TecNO_PERMISSION)

	result := env.Submit(offer.Withdraw(p.buyer, id))
	jtx.RequireTxSuccess(t, result)
	jtx.RequireEvent(t, result, tx.EventOfferWithdrawn)
	jtx.RequireNative(t, env, p.buyer, 1000)
	require.Nil(t, env.Offer(id))

	offers, err := env.Service().OffersByOfferor(p.buyer.Address)
	require.NoError(t, err)
	require.Empty(t, offers)
	offers, err = env.Service().OffersByToken(art, 1)
	require.NoError(t, err)
	require.Empty(t, offers)

	jtx.RequireTxFail(t, env.Submit(offer.Withdraw(p.buyer, id)), tx.TecNO_OFFER)
}

func TestOffer_CreateRejections(t *testing.T) {
	env, p := setup(t)

	result := env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Native(300), env.Now()).Build())
	jtx.RequireTxFail(t, result, tx.TecPAST_DEADLINE)

	result = env.Submit(offer.Create(p.buyer, jtx.Native(5), jtx.Native(300), env.Now()+100).Build())
	require.True(t, result.IsMalformed(), result.Code)

	result = env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Native(3000), env.Now()+100).Build())
	jtx.RequireTxFail(t, result, tx.TecUNFUNDED)

	jtx.RequireNative(t, env, p.buyer, 1000)
}

func TestOffer_StartTime(t *testing.T) {
	env, p := setup(t)
	now := env.Now()

	result := env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Native(300), now+100).StartTime(now - 1).Build())
	jtx.RequireTxFail(t, result, tx.TecBAD_START_TIME)
	jtx.RequireNative(t, env, p.buyer, 1000)

	result = env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Native(300), now+100).StartTime(now + 10).Build())
	jtx.RequireTxSuccess(t, result)
	o := env.Offer(result.CreatedID())
	require.NotNil(t, o)
	require.Equal(t, now+10, o.StartTime)

	// omitted start defaults to the time of creation
	result = env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Fungible(usd, 300), now+100).Build())
	jtx.RequireTxSuccess(t, result)
	require.Equal(t, now, env.Offer(result.CreatedID()).StartTime)
}

func TestOffer_Unique(t *testing.T) {
	env, p := setup(t)

	first := createOffer(t, env, p.buyer, 300)
	result := env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Native(400), env.Now()+100).Build())
	jtx.RequireTxFail(t, result, tx.TecDUPLICATE_OFFER)

	// a different payment token is a different offer
	result = env.Submit(offer.Create(p.buyer, jtx.NFT(art, 1), jtx.Fungible(usd, 400), env.Now()+100).Build())
	jtx.RequireTxSuccess(t, result)

	// withdrawing frees the marker
	jtx.RequireTxSuccess(t, env.Submit(offer.Withdraw(p.buyer, first)))
	createOffer(t, env, p.buyer, 400)
}

func TestOffer_DuplicatesWithoutUniqueness(t *testing.T) {
	env, p := setup(t)
	env.DisableFeature("UniqueOffers")

	createOffer(t, env, p.buyer, 300)
	createOffer(t, env, p.buyer, 400)

	offers, err := env.Service().OffersByOfferor(p.buyer.Address)
	require.NoError(t, err)
	require.Len(t, offers, 2)
}

// --------------------------------------------------------------------------
// Accept.
// --------------------------------------------------------------------------

func TestOffer_Accept(t *testing.T) {
	env, p := setup(t)
	id := createOffer(t, env, p.buyer, 300)

	result := env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 1)))
	jtx.RequireTxSuccess(t, result)
	accepted := jtx.RequireEvent(t, result, tx.EventOfferAccepted)
	require.Equal(t, p.owner.Address, accepted.Attrs["seller"])
	require.NotNil(t, result.Metadata.Settlement)

	jtx.RequireBalance(t, env, p.buyer, art, 1, 1)
	jtx.RequireBalance(t, env, p.owner, art, 1, 0)
	jtx.RequireNative(t, env, p.creator, 30)
	jtx.RequireNative(t, env, env.Owner(), 7)
	jtx.RequireNative(t, env, p.owner, 263)
	jtx.RequireNative(t, env, env.Custody(), 0)
	require.Nil(t, env.Offer(id))
}

func TestOffer_AcceptRejections(t *testing.T) {
	env, p := setup(t)
	env.Fund(p.buyer, jtx.NFT(art, 1))
	id := createOffer(t, env, p.buyer, 300)

	env.Fund(p.owner, jtx.NFT(art, 2))
	jtx.RequireTxFail(t, env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 2))), tx.TecASSET_MISMATCH)
	jtx.RequireTxFail(t, env.Submit(offer.Accept(p.buyer, id, jtx.NFT(art, 1))), tx.TecSELF_ACCEPT)
	jtx.RequireTxFail(t, env.Submit(offer.Accept(p.owner, 42, jtx.NFT(art, 1))), tx.TecNO_OFFER)

	env.AdvanceTime(100 * time.Second)
	jtx.RequireTxFail(t, env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 1))), tx.TecEXPIRED)

	// expired offers can still be withdrawn
	jtx.RequireTxSuccess(t, env.Submit(offer.Withdraw(p.buyer, id)))
	jtx.RequireNative(t, env, p.buyer, 1000)
}

func TestOffer_AcceptBlockedByAuction(t *testing.T) {
	env, p := setup(t)
	seller := jtx.NewAccount("seller")
	env.Fund(seller, jtx.NFT(art, 1))
	result := env.Submit(auction.Create(seller, jtx.NFT(art, 1), env.Now()+1000).MinPrice(10).Build())
	jtx.RequireTxSuccess(t, result)

	id := createOffer(t, env, p.buyer, 300)
	jtx.RequireTxFail(t, env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 1))), tx.TecAUCTION_ACTIVE)

	env.DisableFeature("OfferAcceptBlockedByAuction")
	jtx.RequireTxSuccess(t, env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 1))))
}

func TestOffer_AcceptWithAuction(t *testing.T) {
	env, p := setup(t)
	result := env.Submit(auction.Create(p.owner, jtx.NFT(art, 1), env.Now()+1000).MinPrice(500).Build())
	jtx.RequireTxSuccess(t, result)
	auctionID := result.CreatedID()
	id := createOffer(t, env, p.buyer, 300)

	jtx.RequireTxFail(t, env.Submit(offer.AcceptWithAuction(p.buyer, id, auctionID)), tx.TecNO_PERMISSION)
	jtx.RequireTxFail(t, env.Submit(offer.AcceptWithAuction(p.owner, id, 77)), tx.TecNO_AUCTION)

	result = env.Submit(offer.AcceptWithAuction(p.owner, id, auctionID))
	jtx.RequireTxSuccess(t, result)
	withdrawn := jtx.RequireEvent(t, result, tx.EventAuctionWithdrawn)
	require.Equal(t, id, withdrawn.Attrs["offer_id"])
	jtx.RequireEvent(t, result, tx.EventOfferAccepted)

	jtx.RequireBalance(t, env, p.buyer, art, 1, 1)
	jtx.RequireNative(t, env, p.owner, 263)
	require.Nil(t, env.Auction(auctionID))
	require.Nil(t, env.Offer(id))
}

func TestOffer_AcceptWithAuctionWithBids(t *testing.T) {
	env, p := setup(t)
	bidder := jtx.NewAccount("bidder")
	env.Fund(bidder, jtx.Native(1000))
	result := env.Submit(auction.Create(p.owner, jtx.NFT(art, 1), env.Now()+1000).MinPrice(100).Build())
	jtx.RequireTxSuccess(t, result)
	auctionID := result.CreatedID()
	jtx.RequireTxSuccess(t, env.Submit(auction.BidNative(bidder, auctionID, 150)))

	id := createOffer(t, env, p.buyer, 300)
	jtx.RequireTxFail(t, env.Submit(offer.AcceptWithAuction(p.owner, id, auctionID)), tx.TecHAS_BIDS)
}

func TestOffer_PaymentToContractIsEscrowed(t *testing.T) {
	env, p := setup(t)
	env.SetContract(p.owner)
	id := createOffer(t, env, p.buyer, 300)

	result := env.Submit(offer.Accept(p.owner, id, jtx.NFT(art, 1)))
	jtx.RequireTxSuccess(t, result)
	jtx.RequireEvent(t, result, tx.EventEscrowCredited)
	jtx.RequireNative(t, env, p.owner, 0)
	jtx.RequireClaimable(t, env, p.owner, "NATIVE", 0, 263)

	amt, err := env.Service().Claimable(p.owner.Address, "NATIVE", 0)
	require.NoError(t, err)
	require.Equal(t, "263", amt.String())
}
