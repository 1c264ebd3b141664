package auction

import (
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeAuctionEnd, func() tx.Transaction {
		return &AuctionEnd{BaseTx: *tx.NewBaseTx(tx.TypeAuctionEnd, "")}
	})
}

// AuctionEnd closes a bidding auction and settles it with the highest
// bidder. Anyone may end an auction once it is over.
type AuctionEnd struct {
	tx.BaseTx

	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionEnd creates a new AuctionEnd transaction
func NewAuctionEnd(account string, auctionID uint64) *AuctionEnd {
	return &AuctionEnd{
		BaseTx:    *tx.NewBaseTx(tx.TypeAuctionEnd, account),
		AuctionID: auctionID,
	}
}

// TxType returns the transaction type
func (e *AuctionEnd) TxType() tx.Type {
	return tx.TypeAuctionEnd
}

// Validate validates the AuctionEnd transaction
func (e *AuctionEnd) Validate() error {
	if err := e.BaseTx.Validate(); err != nil {
		return err
	}
	if e.AuctionID == 0 {
		return errAuctionIDRequired
	}
	return nil
}

// Ended reports whether a bidding auction can be closed at now: the deadline
// has passed or the max price was reached.
func Ended(a *sle.Auction, now uint64) bool {
	if now > a.Deadline {
		return true
	}
	return a.HasMaxPrice() && a.CurrentBid.Equal(a.MaxPrice)
}

// Apply applies an AuctionEnd transaction
func (e *AuctionEnd) Apply(ctx *tx.ApplyContext) tx.Result {
	a, result := Load(ctx, e.AuctionID)
	if result != tx.TesSUCCESS {
		return result
	}
	if a.Kind.IsFixedPrice() {
		return tx.TecWRONG_AUCTION_TYPE
	}
	if !Ended(a, ctx.Timestamp) {
		return tx.TecNOT_ENDED
	}

	creator, err := ctx.Tokens.Creator(a.Asset.Token, a.Asset.Nonce)
	if err != nil {
		return internal(ctx, "read creator", err)
	}
	_, err = ctx.Settle(settlement.Sale{
		Seller:           a.Seller,
		Buyer:            a.CurrentBidder,
		Item:             a.Asset,
		Payment:          a.PaymentAsset(a.CurrentBid),
		Creator:          creator,
		CreatorRoyaltyBP: a.CreatorRoyaltyBP,
		MarketplaceCutBP: a.MarketplaceCutBP,
	})
	if err != nil {
		return internal(ctx, "settle auction", err)
	}
	if err := Remove(ctx.View, a); err != nil {
		return internal(ctx, "remove auction", err)
	}

	ctx.Emit(tx.EventAuctionEnded, tx.Attrs{
		"auction_id": a.ID,
		"winner":     tx.Address(a.CurrentBidder),
		"price":      a.CurrentBid,
	})
	return tx.TesSUCCESS
}
