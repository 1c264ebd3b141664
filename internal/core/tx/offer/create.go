package offer

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeOfferCreate, func() tx.Transaction {
		return &OfferCreate{BaseTx: *tx.NewBaseTx(tx.TypeOfferCreate, "")}
	})
}

// OfferCreate proposes the attached payment for a wanted asset.
type OfferCreate struct {
	tx.BaseTx

	Wanted sle.Asset `json:"Wanted"`

	// StartTime defaults to the time of application
	StartTime uint64 `json:"StartTime,omitempty"`
	Deadline  uint64 `json:"Deadline"`
}

// NewOfferCreate creates a new OfferCreate transaction
func NewOfferCreate(account string, wanted, payment sle.Asset, deadline uint64) *OfferCreate {
	c := &OfferCreate{
		BaseTx:   *tx.NewBaseTx(tx.TypeOfferCreate, account),
		Wanted:   wanted,
		Deadline: deadline,
	}
	c.SetPayment(payment)
	return c
}

// TxType returns the transaction type
func (c *OfferCreate) TxType() tx.Type {
	return tx.TypeOfferCreate
}

// Validate validates the OfferCreate transaction
func (c *OfferCreate) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if err := c.RequirePayment(); err != nil {
		return err
	}
	if err := c.Wanted.Validate(); err != nil {
		return fmt.Errorf("temBAD_ASSET: %w", err)
	}
	if sle.IsNative(c.Wanted.Token) || c.Wanted.Nonce == 0 {
		return errors.New("temBAD_ASSET: only tokens with a nonce can be wanted")
	}
	if c.Wanted.Amount.IsZero() {
		return errors.New("temBAD_QUANTITY: Wanted amount must be positive")
	}
	if c.Deadline == 0 {
		return errors.New("temBAD_DEADLINE: Deadline is required")
	}
	if c.StartTime != 0 && c.StartTime >= c.Deadline {
		return errors.New("temBAD_DEADLINE: StartTime must precede Deadline")
	}
	return nil
}

// Apply applies an OfferCreate transaction
func (c *OfferCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	payment := *ctx.Payment
	if !ctx.Market.IsWhitelisted(payment.Token) {
		return tx.TecNOT_WHITELISTED
	}
	if c.Deadline <= ctx.Timestamp {
		return tx.TecPAST_DEADLINE
	}
	start := c.StartTime
	if start == 0 {
		start = ctx.Timestamp
	}
	if start < ctx.Timestamp {
		return tx.TecBAD_START_TIME
	}

	royalty, err := ctx.Tokens.RoyaltyBP(c.Wanted.Token, c.Wanted.Nonce)
	if err != nil {
		return internal(ctx, "read royalty", err)
	}
	cut := ctx.Market.CutBP
	if !settlement.FeesFit(royalty, cut) {
		return tx.TecROYALTY_OVERFLOW
	}

	marker := keylet.OfferKey(ctx.AccountID, c.Wanted.Token, c.Wanted.Nonce, payment.Token)
	unique := ctx.Rules().UniqueOffersEnabled()
	if unique {
		exists, err := ctx.View.Exists(marker)
		if err != nil {
			return internal(ctx, "read offer marker", err)
		}
		if exists {
			return tx.TecDUPLICATE_OFFER
		}
	}

	id, err := sle.NextID(ctx.View, keylet.CounterOffer)
	if err != nil {
		return internal(ctx, "next offer id", err)
	}
	o := &sle.Offer{
		ID:               id,
		Wanted:           c.Wanted,
		Payment:          payment,
		Offeror:          ctx.AccountID,
		StartTime:        start,
		Deadline:         c.Deadline,
		MarketplaceCutBP: cut,
		CreatorRoyaltyBP: royalty,
	}
	if err := sle.Insert(ctx.View, keylet.Offer(id), o); err != nil {
		return internal(ctx, "insert offer", err)
	}
	if err := sle.IndexAdd(ctx.View, keylet.OffersByToken(c.Wanted.Token, c.Wanted.Nonce), id); err != nil {
		return internal(ctx, "index offer by token", err)
	}
	if err := sle.IndexAdd(ctx.View, keylet.OffersByOfferor(ctx.AccountID), id); err != nil {
		return internal(ctx, "index offer by offeror", err)
	}
	if unique {
		if err := sle.Insert(ctx.View, marker, &sle.OfferKey{OfferID: id}); err != nil {
			return internal(ctx, "insert offer marker", err)
		}
	}

	ctx.Metadata.CreatedID = id
	ctx.Emit(tx.EventOfferCreated, tx.Attrs{
		"offer_id": id,
		"offeror":  tx.Address(ctx.AccountID),
		"wanted":   c.Wanted,
		"payment":  payment,
		"deadline": c.Deadline,
	})
	return tx.TesSUCCESS
}
