// Package offer implements the offer registry transactions: standing
// purchase proposals that hold their payment in custody until withdrawn
// or accepted.
package offer

import (
	"errors"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

var (
	errOfferIDRequired = errors.New("temMALFORMED: OfferID is required")
)

// Load reads a live offer. A missing record yields TecNO_OFFER.
func Load(ctx *tx.ApplyContext, id uint64) (*sle.Offer, tx.Result) {
	o, err := sle.Read[sle.Offer](ctx.View, keylet.Offer(id))
	if err != nil {
		ctx.Log.Error("read offer", zap.Uint64("id", id), zap.Error(err))
		return nil, tx.TefBAD_LEDGER
	}
	if o == nil {
		return nil, tx.TecNO_OFFER
	}
	return o, tx.TesSUCCESS
}

func markerKey(o *sle.Offer) keylet.Keylet {
	return keylet.OfferKey(o.Offeror, o.Wanted.Token, o.Wanted.Nonce, o.Payment.Token)
}

// Remove erases an offer, its index entries and its uniqueness marker.
func Remove(view sle.LedgerView, o *sle.Offer) error {
	if err := view.Erase(keylet.Offer(o.ID)); err != nil {
		return err
	}
	if err := sle.IndexRemove(view, keylet.OffersByToken(o.Wanted.Token, o.Wanted.Nonce), o.ID); err != nil {
		return err
	}
	if err := sle.IndexRemove(view, keylet.OffersByOfferor(o.Offeror), o.ID); err != nil {
		return err
	}

	// the marker only exists when uniqueness was enforced at creation
	k := markerKey(o)
	marker, err := sle.Read[sle.OfferKey](view, k)
	if err != nil {
		return err
	}
	if marker != nil && marker.OfferID == o.ID {
		return view.Erase(k)
	}
	return nil
}

// accept settles an offer against an asset already held in custody and
// removes the offer. seller is the account receiving the payment.
func accept(ctx *tx.ApplyContext, o *sle.Offer, seller [20]byte) tx.Result {
	royalty, err := ctx.Tokens.RoyaltyBP(o.Wanted.Token, o.Wanted.Nonce)
	if err != nil {
		return internal(ctx, "read royalty", err)
	}
	if !settlement.FeesFit(royalty, o.MarketplaceCutBP) {
		return tx.TecROYALTY_OVERFLOW
	}
	creator, err := ctx.Tokens.Creator(o.Wanted.Token, o.Wanted.Nonce)
	if err != nil {
		return internal(ctx, "read creator", err)
	}

	_, err = ctx.Settle(settlement.Sale{
		Seller:           seller,
		Buyer:            o.Offeror,
		Item:             o.Wanted,
		Payment:          o.Payment,
		Creator:          creator,
		CreatorRoyaltyBP: royalty,
		MarketplaceCutBP: o.MarketplaceCutBP,
	})
	if err != nil {
		return internal(ctx, "settle offer", err)
	}
	if err := Remove(ctx.View, o); err != nil {
		return internal(ctx, "remove offer", err)
	}

	ctx.Emit(tx.EventOfferAccepted, tx.Attrs{
		"offer_id": o.ID,
		"seller":   tx.Address(seller),
		"offeror":  tx.Address(o.Offeror),
		"asset":    o.Wanted,
		"price":    o.Payment,
	})
	return tx.TesSUCCESS
}

// checkAccept runs the acceptance checks shared by both accept paths.
func checkAccept(o *sle.Offer, delivered sle.Asset, seller [20]byte, now uint64) tx.Result {
	if !delivered.Equal(o.Wanted) {
		return tx.TecASSET_MISMATCH
	}
	if now >= o.Deadline {
		return tx.TecEXPIRED
	}
	if seller == o.Offeror {
		return tx.TecSELF_ACCEPT
	}
	return tx.TesSUCCESS
}

func internal(ctx *tx.ApplyContext, msg string, err error) tx.Result {
	ctx.Log.Error(msg, zap.Error(err))
	return tx.TefINTERNAL
}
