package auction

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeAuctionCreate, func() tx.Transaction {
		return &AuctionCreate{BaseTx: *tx.NewBaseTx(tx.TypeAuctionCreate, "")}
	})
}

// AuctionCreate lists the attached payment (the auctioned asset) for sale.
type AuctionCreate struct {
	tx.BaseTx

	// Kind is derived from the quantity when omitted
	Kind sle.AuctionKind `json:"Kind,omitempty"`

	PaymentToken string `json:"PaymentToken"`
	PaymentNonce uint64 `json:"PaymentNonce,omitempty"`

	MinPrice amount.Amount `json:"MinPrice"`
	// MaxPrice of zero means unbounded
	MaxPrice     amount.Amount `json:"MaxPrice"`
	MinIncrement amount.Amount `json:"MinIncrement"`

	// StartTime defaults to the time of application
	StartTime uint64 `json:"StartTime,omitempty"`
	Deadline  uint64 `json:"Deadline"`
}

// NewAuctionCreate creates a new AuctionCreate transaction
func NewAuctionCreate(account string, item sle.Asset, paymentToken string, minPrice amount.Amount, deadline uint64) *AuctionCreate {
	c := &AuctionCreate{
		BaseTx:       *tx.NewBaseTx(tx.TypeAuctionCreate, account),
		PaymentToken: paymentToken,
		MinPrice:     minPrice,
		Deadline:     deadline,
	}
	c.SetPayment(item)
	return c
}

// TxType returns the transaction type
func (c *AuctionCreate) TxType() tx.Type {
	return tx.TypeAuctionCreate
}

// kind returns the requested kind, deriving it from the quantity when omitted.
func (c *AuctionCreate) kind() sle.AuctionKind {
	if c.Kind != 0 || c.Payment == nil {
		return c.Kind
	}
	if c.Payment.Amount.Equal(amount.New(1)) {
		return sle.SingleItem
	}
	return sle.BatchAllAtOnce
}

// Validate validates the AuctionCreate transaction
func (c *AuctionCreate) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if err := c.RequirePayment(); err != nil {
		return err
	}

	item := *c.Payment
	if sle.IsNative(item.Token) || item.Nonce == 0 {
		return errors.New("temBAD_ASSET: only tokens with a nonce can be auctioned")
	}
	if err := sle.ValidateToken(c.PaymentToken); err != nil {
		return fmt.Errorf("temBAD_ASSET: %w", err)
	}
	if sle.IsNative(c.PaymentToken) && c.PaymentNonce != 0 {
		return fmt.Errorf("temBAD_ASSET: %w", sle.ErrBadNativeNonce)
	}

	if !c.MinPrice.IsPositive() {
		return errors.New("temBAD_PRICE: MinPrice must be positive")
	}
	if !c.MaxPrice.IsZero() && c.MaxPrice.LessThan(c.MinPrice) {
		return errors.New("temBAD_PRICE: MaxPrice is below MinPrice")
	}

	one := amount.New(1)
	switch kind := c.kind(); kind {
	case sle.SingleItem:
		if !item.Amount.Equal(one) {
			return errors.New("temBAD_QUANTITY: SingleItem auctions sell exactly one unit")
		}
	case sle.BatchAllAtOnce:
		if !item.Amount.GreaterThan(one) {
			return errors.New("temBAD_QUANTITY: batch auctions need more than one unit")
		}
	case sle.BatchFixedPricePerUnit:
		if !item.Amount.GreaterThan(one) {
			return errors.New("temBAD_QUANTITY: batch auctions need more than one unit")
		}
		if !c.MaxPrice.Equal(c.MinPrice) {
			return errors.New("temBAD_PRICE: fixed-price auctions need MaxPrice equal to MinPrice")
		}
	default:
		return fmt.Errorf("temBAD_AUCTION_TYPE: %s", kind)
	}

	if c.Deadline == 0 {
		return errors.New("temBAD_DEADLINE: Deadline is required")
	}
	if c.StartTime != 0 && c.StartTime >= c.Deadline {
		return errors.New("temBAD_DEADLINE: StartTime must precede Deadline")
	}
	return nil
}

// Apply applies an AuctionCreate transaction
func (c *AuctionCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	if !ctx.Market.IsWhitelisted(c.PaymentToken) {
		return tx.TecNOT_WHITELISTED
	}
	if c.Deadline <= ctx.Timestamp {
		return tx.TecPAST_DEADLINE
	}
	start := c.StartTime
	if start == 0 {
		start = ctx.Timestamp
	}
	if start < ctx.Timestamp || start >= c.Deadline {
		return tx.TecBAD_START_TIME
	}

	item := *ctx.Payment
	royalty, err := ctx.Tokens.RoyaltyBP(item.Token, item.Nonce)
	if err != nil {
		return internal(ctx, "read royalty", err)
	}
	cut := ctx.Market.CutBP
	if !settlement.FeesFit(royalty, cut) {
		return tx.TecROYALTY_OVERFLOW
	}

	id, err := sle.NextID(ctx.View, keylet.CounterAuction)
	if err != nil {
		return internal(ctx, "next auction id", err)
	}
	paymentNonce := c.PaymentNonce
	if sle.IsNative(c.PaymentToken) {
		paymentNonce = 0
	}
	a := &sle.Auction{
		ID:               id,
		Asset:            item,
		Kind:             c.kind(),
		PaymentToken:     c.PaymentToken,
		PaymentNonce:     paymentNonce,
		MinPrice:         c.MinPrice,
		MaxPrice:         c.MaxPrice,
		MinIncrement:     c.MinIncrement,
		StartTime:        start,
		Deadline:         c.Deadline,
		CreatedAt:        ctx.Timestamp,
		Seller:           ctx.AccountID,
		MarketplaceCutBP: cut,
		CreatorRoyaltyBP: royalty,
	}
	if err := sle.Insert(ctx.View, keylet.Auction(id), a); err != nil {
		return internal(ctx, "insert auction", err)
	}
	if err := sle.IndexAdd(ctx.View, keylet.AuctionsByToken(item.Token, item.Nonce), id); err != nil {
		return internal(ctx, "index auction by token", err)
	}
	if err := sle.IndexAdd(ctx.View, keylet.AuctionsBySeller(ctx.AccountID), id); err != nil {
		return internal(ctx, "index auction by seller", err)
	}

	ctx.Metadata.CreatedID = id
	ctx.Emit(tx.EventAuctionCreated, tx.Attrs{
		"auction_id": id,
		"seller":     tx.Address(ctx.AccountID),
		"asset":      item,
		"kind":       a.Kind.String(),
		"min_price":  a.MinPrice,
		"deadline":   a.Deadline,
	})
	return tx.TesSUCCESS
}
