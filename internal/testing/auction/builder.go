package auction

import (
	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	auctiontx "github.com/LeJamon/goMarketd/internal/core/tx/auction"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/testing"
)

// CreateBuilder provides a fluent interface for building AuctionCreate transactions.
type CreateBuilder struct {
	seller       *testing.Account
	item         sle.Asset
	kind         sle.AuctionKind
	paymentToken string
	paymentNonce uint64
	minPrice     uint64
	maxPrice     uint64
	minIncrement uint64
	startTime    uint64
	deadline     uint64
}

// Create lists item for sale in the native currency with a minimum price of 1.
func Create(seller *testing.Account, item sle.Asset, deadline uint64) *CreateBuilder {
	return &CreateBuilder{
		seller:       seller,
		item:         item,
		paymentToken: sle.NativeToken,
		minPrice:     1,
		deadline:     deadline,
	}
}

// PaymentToken sets the token bids are paid in.
func (b *CreateBuilder) PaymentToken(token string, nonce uint64) *CreateBuilder {
	b.paymentToken = token
	b.paymentNonce = nonce
	return b
}

// MinPrice sets the minimum bid.
func (b *CreateBuilder) MinPrice(v uint64) *CreateBuilder {
	b.minPrice = v
	return b
}

// MaxPrice sets the buy-out price. Zero means unbounded.
func (b *CreateBuilder) MaxPrice(v uint64) *CreateBuilder {
	b.maxPrice = v
	return b
}

// MinIncrement sets the smallest raise between two bids.
func (b *CreateBuilder) MinIncrement(v uint64) *CreateBuilder {
	b.minIncrement = v
	return b
}

// StartTime delays bidding until t.
func (b *CreateBuilder) StartTime(t uint64) *CreateBuilder {
	b.startTime = t
	return b
}

// Kind sets the auction kind explicitly.
func (b *CreateBuilder) Kind(k sle.AuctionKind) *CreateBuilder {
	b.kind = k
	return b
}

// FixedPrice sells units one purchase at a time for price each.
func (b *CreateBuilder) FixedPrice(price uint64) *CreateBuilder {
	b.kind = sle.BatchFixedPricePerUnit
	b.minPrice = price
	b.maxPrice = price
	return b
}

// Build constructs the AuctionCreate transaction.
func (b *CreateBuilder) Build() tx.Transaction {
	c := auctiontx.NewAuctionCreate(b.seller.Address, b.item, b.paymentToken, amount.New(b.minPrice), b.deadline)
	c.Kind = b.kind
	c.PaymentNonce = b.paymentNonce
	c.MaxPrice = amount.New(b.maxPrice)
	c.MinIncrement = amount.New(b.minIncrement)
	c.StartTime = b.startTime
	return c
}

// Bid builds an AuctionBid paying payment.
func Bid(bidder *testing.Account, auctionID uint64, payment sle.Asset) tx.Transaction {
	return auctiontx.NewAuctionBid(bidder.Address, auctionID, payment)
}

// BidNative builds an AuctionBid of v native units.
func BidNative(bidder *testing.Account, auctionID uint64, v uint64) tx.Transaction {
	return Bid(bidder, auctionID, sle.Native(v))
}

// Buy builds an AuctionBuy of qty units.
func Buy(buyer *testing.Account, auctionID uint64, qty uint64, payment sle.Asset) tx.Transaction {
	return auctiontx.NewAuctionBuy(buyer.Address, auctionID, qty, payment)
}

// End builds an AuctionEnd.
func End(caller *testing.Account, auctionID uint64) tx.Transaction {
	return auctiontx.NewAuctionEnd(caller.Address, auctionID)
}

// Withdraw builds an AuctionWithdraw.
func Withdraw(seller *testing.Account, auctionID uint64) tx.Transaction {
	return auctiontx.NewAuctionWithdraw(seller.Address, auctionID)
}
