package offer

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
	offertx "github.com/LeJamon/goMarketd/internal/core/tx/offer"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/testing"
)

// CreateBuilder provides a fluent interface for building OfferCreate transactions.
type CreateBuilder struct {
	offeror   *testing.Account
	wanted    sle.Asset
	payment   sle.Asset
	startTime uint64
	deadline  uint64
}

// Create proposes to buy wanted for payment until deadline.
func Create(offeror *testing.Account, wanted, payment sle.Asset, deadline uint64) *CreateBuilder {
	return &CreateBuilder{
		offeror:  offeror,
		wanted:   wanted,
		payment:  payment,
		deadline: deadline,
	}
}

// StartTime sets the start of the offer.
func (b *CreateBuilder) StartTime(t uint64) *CreateBuilder {
	b.startTime = t
	return b
}

// Build constructs the OfferCreate transaction.
func (b *CreateBuilder) Build() tx.Transaction {
	c := offertx.NewOfferCreate(b.offeror.Address, b.wanted, b.payment, b.deadline)
	c.StartTime = b.startTime
	return c
}

// Withdraw builds an OfferWithdraw.
func Withdraw(offeror *testing.Account, offerID uint64) tx.Transaction {
	return offertx.NewOfferWithdraw(offeror.Address, offerID)
}

// Accept builds an OfferAccept delivering the wanted asset.
func Accept(seller *testing.Account, offerID uint64, delivered sle.Asset) tx.Transaction {
	return offertx.NewOfferAccept(seller.Address, offerID, delivered)
}

// AcceptWithAuction builds an OfferAcceptWithAuction.
func AcceptWithAuction(seller *testing.Account, offerID, auctionID uint64) tx.Transaction {
	return offertx.NewOfferAcceptWithAuction(seller.Address, offerID, auctionID)
}
