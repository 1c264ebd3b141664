package auction

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeAuctionBid, func() tx.Transaction {
		return &AuctionBid{BaseTx: *tx.NewBaseTx(tx.TypeAuctionBid, "")}
	})
}

// AuctionBid places the attached payment as the new highest bid.
type AuctionBid struct {
	tx.BaseTx

	AuctionID uint64 `json:"AuctionID"`
}

// NewAuctionBid creates a new AuctionBid transaction
func NewAuctionBid(account string, auctionID uint64, payment sle.Asset) *AuctionBid {
	b := &AuctionBid{
		BaseTx:    *tx.NewBaseTx(tx.TypeAuctionBid, account),
		AuctionID: auctionID,
	}
	b.SetPayment(payment)
	return b
}

// TxType returns the transaction type
func (b *AuctionBid) TxType() tx.Type {
	return tx.TypeAuctionBid
}

// Validate validates the AuctionBid transaction
func (b *AuctionBid) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.AuctionID == 0 {
		return errAuctionIDRequired
	}
	return b.RequirePayment()
}

// Apply applies an AuctionBid transaction
func (b *AuctionBid) Apply(ctx *tx.ApplyContext) tx.Result {
	a, result := Load(ctx, b.AuctionID)
	if result != tx.TesSUCCESS {
		return result
	}

	switch a.Kind {
	case sle.SingleItem, sle.BatchAllAtOnce:
	case sle.BatchFixedPricePerUnit:
		return tx.TecWRONG_AUCTION_TYPE
	default:
		return tx.TefBAD_LEDGER
	}

	if result := inWindow(a, ctx.Timestamp, false); result != tx.TesSUCCESS {
		return result
	}
	if ctx.AccountID == a.Seller {
		return tx.TecSELF_BID
	}
	payment := *ctx.Payment
	if payment.Token != a.PaymentToken || payment.Nonce != a.PaymentNonce {
		return tx.TecWRONG_PAYMENT
	}
	if a.HasBidder() && a.CurrentBidder == ctx.AccountID {
		return tx.TecREPEAT_BID
	}
	if result := checkBid(a, payment); result != tx.TesSUCCESS {
		return result
	}

	if a.HasBidder() {
		previous, refund := a.CurrentBidder, a.CurrentBid
		path, err := ctx.Deliver(previous, a.PaymentToken, a.PaymentNonce, refund)
		if err != nil {
			return internal(ctx, "refund previous bidder", err)
		}
		ctx.Emit(tx.EventBidRefunded, tx.Attrs{
			"auction_id": a.ID,
			"bidder":     tx.Address(previous),
			"amount":     refund,
			"path":       path.String(),
		})
	}

	a.CurrentBid = payment.Amount
	a.CurrentBidder = ctx.AccountID
	if err := Store(ctx.View, a); err != nil {
		return internal(ctx, "store auction", err)
	}

	ctx.Emit(tx.EventBidPlaced, tx.Attrs{
		"auction_id": a.ID,
		"bidder":     tx.Address(ctx.AccountID),
		"amount":     payment.Amount,
	})
	return tx.TesSUCCESS
}

// checkBid applies the price rules of a new bid against the current state.
func checkBid(a *sle.Auction, payment sle.Asset) tx.Result {
	v := payment.Amount
	if v.LessThan(a.MinPrice) {
		return tx.TecBID_TOO_LOW
	}
	if !v.GreaterThan(a.CurrentBid) {
		return tx.TecBID_NOT_INCREASING
	}
	if a.HasMaxPrice() && v.GreaterThan(a.MaxPrice) {
		return tx.TecBID_ABOVE_MAX
	}
	// a bid that reaches the max price is always accepted
	if !a.CurrentBid.IsZero() && a.HasMaxPrice() && v.LessThan(a.MaxPrice) {
		diff, err := v.Sub(a.CurrentBid)
		if err != nil || diff.LessThan(a.MinIncrement) {
			return tx.TecINCREMENT_TOO_SMALL
		}
	}
	return tx.TesSUCCESS
}
