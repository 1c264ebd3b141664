package auction

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeAuctionWithdraw, func() tx.Transaction {
		return &AuctionWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeAuctionWithdraw, "")}
	})
}

// AuctionWithdraw lets the seller take back an auction nobody has bid on.
// Fixed-price auctions can be withdrawn at any time.
type AuctionWithdraw struct {
	tx.BaseTx

	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionWithdraw creates a new AuctionWithdraw transaction
func NewAuctionWithdraw(account string, auctionID uint64) *AuctionWithdraw {
	return &AuctionWithdraw{
		BaseTx:    *tx.NewBaseTx(tx.TypeAuctionWithdraw, account),
		AuctionID: auctionID,
	}
}

// TxType returns the transaction type
func (w *AuctionWithdraw) TxType() tx.Type {
	return tx.TypeAuctionWithdraw
}

// Validate validates the AuctionWithdraw transaction
func (w *AuctionWithdraw) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.AuctionID == 0 {
		return errAuctionIDRequired
	}
	return nil
}

// Apply applies an AuctionWithdraw transaction
func (w *AuctionWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	a, result := Load(ctx, w.AuctionID)
	if result != tx.TesSUCCESS {
		return result
	}
	if ctx.AccountID != a.Seller {
		return tx.TecNO_PERMISSION
	}
	if !a.Kind.IsFixedPrice() && a.HasBidder() {
		return tx.TecHAS_BIDS
	}

	if err := Remove(ctx.View, a); err != nil {
		return internal(ctx, "remove auction", err)
	}
	path, err := ctx.Deliver(a.Seller, a.Asset.Token, a.Asset.Nonce, a.Asset.Amount)
	if err != nil {
		return internal(ctx, "return asset", err)
	}

	ctx.Emit(tx.EventAuctionWithdrawn, tx.Attrs{
		"auction_id": a.ID,
		"seller":     tx.Address(a.Seller),
		"asset":      a.Asset,
		"path":       path.String(),
	})
	return tx.TesSUCCESS
}
