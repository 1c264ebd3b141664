package auction

import (
	"errors"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeAuctionBuy, func() tx.Transaction {
		return &AuctionBuy{BaseTx: *tx.NewBaseTx(tx.TypeAuctionBuy, "")}
	})
}

// AuctionBuy purchases units of a fixed-price auction.
type AuctionBuy struct {
	tx.BaseTx

	AuctionID uint64 `json:"AuctionID"`

	// Quantity defaults to one unit
	Quantity *amount.Amount `json:"Quantity,omitempty"`
}

// NewAuctionBuy creates a new AuctionBuy transaction
func NewAuctionBuy(account string, auctionID uint64, quantity uint64, payment sle.Asset) *AuctionBuy {
	q := amount.New(quantity)
	b := &AuctionBuy{
		BaseTx:    *tx.NewBaseTx(tx.TypeAuctionBuy, account),
		AuctionID: auctionID,
		Quantity:  &q,
	}
	b.SetPayment(payment)
	return b
}

// TxType returns the transaction type
func (b *AuctionBuy) TxType() tx.Type {
	return tx.TypeAuctionBuy
}

func (b *AuctionBuy) quantity() amount.Amount {
	if b.Quantity == nil {
		return amount.New(1)
	}
	return *b.Quantity
}

// Validate validates the AuctionBuy transaction
func (b *AuctionBuy) Validate() error {
	if err := b.BaseTx.Validate(); err != nil {
		return err
	}
	if b.AuctionID == 0 {
		return errAuctionIDRequired
	}
	if err := b.RequirePayment(); err != nil {
		return err
	}
	if b.quantity().IsZero() {
		return errors.New("temBAD_QUANTITY: Quantity must be positive")
	}
	return nil
}

// Apply applies an AuctionBuy transaction
func (b *AuctionBuy) Apply(ctx *tx.ApplyContext) tx.Result {
	a, result := Load(ctx, b.AuctionID)
	if result != tx.TesSUCCESS {
		return result
	}

	switch a.Kind {
	case sle.BatchFixedPricePerUnit:
	case sle.SingleItem, sle.BatchAllAtOnce:
		return tx.TecWRONG_AUCTION_TYPE
	default:
		return tx.TefBAD_LEDGER
	}

	inclusive := ctx.Rules().BuyNowInclusiveDeadline()
	if result := inWindow(a, ctx.Timestamp, inclusive); result != tx.TesSUCCESS {
		return result
	}
	if ctx.AccountID == a.Seller {
		return tx.TecSELF_BID
	}
	qty := b.quantity()
	if qty.GreaterThan(a.Asset.Amount) {
		return tx.TecINSUFFICIENT_QUANTITY
	}
	payment := *ctx.Payment
	if payment.Token != a.PaymentToken || payment.Nonce != a.PaymentNonce {
		return tx.TecWRONG_PAYMENT
	}
	if !payment.Amount.Equal(qty.Mul(a.MinPrice)) {
		return tx.TecWRONG_PAYMENT_AMOUNT
	}

	creator, err := ctx.Tokens.Creator(a.Asset.Token, a.Asset.Nonce)
	if err != nil {
		return internal(ctx, "read creator", err)
	}
	_, err = ctx.Settle(settlement.Sale{
		Seller:           a.Seller,
		Buyer:            ctx.AccountID,
		Item:             sle.Asset{Token: a.Asset.Token, Nonce: a.Asset.Nonce, Amount: qty},
		Payment:          payment,
		Creator:          creator,
		CreatorRoyaltyBP: a.CreatorRoyaltyBP,
		MarketplaceCutBP: a.MarketplaceCutBP,
	})
	if err != nil {
		return internal(ctx, "settle purchase", err)
	}

	remaining, err := a.Asset.Amount.Sub(qty)
	if err != nil {
		return internal(ctx, "decrement quantity", err)
	}
	if remaining.IsZero() {
		err = Remove(ctx.View, a)
	} else {
		a.Asset.Amount = remaining
		err = Store(ctx.View, a)
	}
	if err != nil {
		return internal(ctx, "update auction", err)
	}

	ctx.Emit(tx.EventAuctionBought, tx.Attrs{
		"auction_id": a.ID,
		"buyer":      tx.Address(ctx.AccountID),
		"quantity":   qty,
		"paid":       payment.Amount,
		"remaining":  remaining,
	})
	return tx.TesSUCCESS
}
