package offer

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/auction"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeOfferAccept, func() tx.Transaction {
		return &OfferAccept{BaseTx: *tx.NewBaseTx(tx.TypeOfferAccept, "")}
	})
}

// OfferAccept sells the attached asset to an offer.
type OfferAccept struct {
	tx.BaseTx

	OfferID uint64 `json:"OfferID"`
}

// NewOfferAccept creates a new OfferAccept transaction
func NewOfferAccept(account string, offerID uint64, delivered sle.Asset) *OfferAccept {
	a := &OfferAccept{
		BaseTx:  *tx.NewBaseTx(tx.TypeOfferAccept, account),
		OfferID: offerID,
	}
	a.SetPayment(delivered)
	return a
}

// TxType returns the transaction type
func (a *OfferAccept) TxType() tx.Type {
	return tx.TypeOfferAccept
}

// Validate validates the OfferAccept transaction
func (a *OfferAccept) Validate() error {
	if err := a.BaseTx.Validate(); err != nil {
		return err
	}
	if a.OfferID == 0 {
		return errOfferIDRequired
	}
	return a.RequirePayment()
}

// Apply applies an OfferAccept transaction
func (a *OfferAccept) Apply(ctx *tx.ApplyContext) tx.Result {
	o, result := Load(ctx, a.OfferID)
	if result != tx.TesSUCCESS {
		return result
	}
	if result := checkAccept(o, *ctx.Payment, ctx.AccountID, ctx.Timestamp); result != tx.TesSUCCESS {
		return result
	}

	if ctx.Rules().OfferAcceptBlockedByAuction() {
		live, err := auction.Live(ctx.View, o.Wanted.Token, o.Wanted.Nonce)
		if err != nil {
			return internal(ctx, "list live auctions", err)
		}
		if len(live) > 0 {
			return tx.TecAUCTION_ACTIVE
		}
	}

	return accept(ctx, o, ctx.AccountID)
}
