package offer

import (
	"errors"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/auction"
)

func init() {
	tx.Register(tx.TypeOfferAcceptWithAuction, func() tx.Transaction {
		return &OfferAcceptWithAuction{BaseTx: *tx.NewBaseTx(tx.TypeOfferAcceptWithAuction, "")}
	})
}

// OfferAcceptWithAuction withdraws a bid-free auction and sells its asset
// to an offer in one step.
type OfferAcceptWithAuction struct {
	tx.BaseTx

	OfferID   uint64 `json:"OfferID"`
	AuctionID uint64 `json:"AuctionID"`
}

// NewOfferAcceptWithAuction creates a new OfferAcceptWithAuction transaction
func NewOfferAcceptWithAuction(account string, offerID, auctionID uint64) *OfferAcceptWithAuction {
	return &OfferAcceptWithAuction{
		BaseTx:    *tx.NewBaseTx(tx.TypeOfferAcceptWithAuction, account),
		OfferID:   offerID,
		AuctionID: auctionID,
	}
}

// TxType returns the transaction type
func (a *OfferAcceptWithAuction) TxType() tx.Type {
	return tx.TypeOfferAcceptWithAuction
}

// Validate validates the OfferAcceptWithAuction transaction
func (a *OfferAcceptWithAuction) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.OfferID == 0 {
		return errOfferIDRequired
	}
	if a.AuctionID == 0 {
		return errors.New("temMALFORMED: AuctionID is required")
	}
	return nil
}

// Apply applies an OfferAcceptWithAuction transaction
func (a *OfferAcceptWithAuction) Apply(ctx *tx.ApplyContext) tx.Result {
	o, result := Load(ctx, a.OfferID)
	if result != tx.TesSUCCESS {
		return result
	}
	au, result := auction.Load(ctx, a.AuctionID)
	if result != tx.TesSUCCESS {
		return result
	}
	if ctx.AccountID != au.Seller {
		return tx.TecNO_PERMISSION
	}
	if result := checkAccept(o, au.Asset, ctx.AccountID, ctx.Timestamp); result != tx.TesSUCCESS {
		return result
	}
	if !au.Kind.IsFixedPrice() && au.HasBidder() {
		return tx.TecHAS_BIDS
	}

	if err := auction.Remove(ctx.View, au); err != nil {
		return internal(ctx, "remove auction", err)
	}
	ctx.Emit(tx.EventAuctionWithdrawn, tx.Attrs{
		"auction_id": au.ID,
		"seller":     tx.Address(au.Seller),
		"asset":      au.Asset,
		"offer_id":   o.ID,
	})

	return accept(ctx, o, ctx.AccountID)
}
