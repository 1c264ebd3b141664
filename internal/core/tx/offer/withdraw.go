package offer

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeOfferWithdraw, func() tx.Transaction {
		return &OfferWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeOfferWithdraw, "")}
	})
}

// OfferWithdraw cancels an offer and refunds its payment.
type OfferWithdraw struct {
	tx.BaseTx

	OfferID uint64 `json:"OfferID"`
}

// NewOfferWithdraw creates a new OfferWithdraw transaction
func NewOfferWithdraw(account string, offerID uint64) *OfferWithdraw {
	return &OfferWithdraw{
		BaseTx:  *tx.NewBaseTx(tx.TypeOfferWithdraw, account),
		OfferID: offerID,
	}
}

// TxType returns the transaction type
func (w *OfferWithdraw) TxType() tx.Type {
	return tx.TypeOfferWithdraw
}

// Validate validates the OfferWithdraw transaction
func (w *OfferWithdraw) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if w.OfferID == 0 {
		return errOfferIDRequired
	}
	return nil
}

// Apply applies an OfferWithdraw transaction
func (w *OfferWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	o, result := Load(ctx, w.OfferID)
	if result != tx.TesSUCCESS {
		return result
	}
	if ctx.AccountID != o.Offeror {
		return tx.TecNO_PERMISSION
	}

	if err := Remove(ctx.View, o); err != nil {
		return internal(ctx, "remove offer", err)
	}
	if err := ctx.Ledger.Transfer(ctx.Custody(), o.Offeror, o.Payment); err != nil {
		return internal(ctx, "refund offer", err)
	}

	ctx.Emit(tx.EventOfferWithdrawn, tx.Attrs{
		"offer_id": o.ID,
		"offeror":  tx.Address(o.Offeror),
		"refund":   o.Payment,
	})
	return tx.TesSUCCESS
}
