// Package claim implements EscrowClaim, the pull side of the escrow ledger.
package claim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeEscrowClaim, func() tx.Transaction {
		return &EscrowClaim{BaseTx: *tx.NewBaseTx(tx.TypeEscrowClaim, "")}
	})
}

// EscrowClaim pays the caller's escrowed balances for the listed pairs.
type EscrowClaim struct {
	tx.BaseTx

	Pairs []escrow.Pair `json:"Pairs"`

	// Destination defaults to the caller
	Destination string `json:"Destination,omitempty"`
}

// NewEscrowClaim creates a new EscrowClaim transaction
func NewEscrowClaim(account string, pairs ...escrow.Pair) *EscrowClaim {
	return &EscrowClaim{
		BaseTx: *tx.NewBaseTx(tx.TypeEscrowClaim, account),
		Pairs:  pairs,
	}
}

// TxType returns the transaction type
func (c *EscrowClaim) TxType() tx.Type {
	return tx.TypeEscrowClaim
}

// Validate validates the EscrowClaim transaction
func (c *EscrowClaim) Validate() error {
	if err := c.BaseTx.Validate(); err != nil {
		return err
	}
	if len(c.Pairs) == 0 {
		return errors.New("temMALFORMED: at least one pair is required")
	}
	seen := make(map[escrow.Pair]struct{}, len(c.Pairs))
	for _, p := range c.Pairs {
		if err := (sle.Asset{Token: p.Token, Nonce: p.Nonce}).Validate(); err != nil {
			return fmt.Errorf("temBAD_ASSET: %w", err)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("temMALFORMED: duplicate pair %s/%d", p.Token, p.Nonce)
		}
		seen[p] = struct{}{}
	}
	if c.Destination != "" {
		if _, err := sle.DecodeAccountID(c.Destination); err != nil {
			return fmt.Errorf("temMALFORMED: bad Destination: %w", err)
		}
	}
	return nil
}

// Apply applies an EscrowClaim transaction
func (c *EscrowClaim) Apply(ctx *tx.ApplyContext) tx.Result {
	destination := ctx.AccountID
	if c.Destination != "" {
		id, err := sle.DecodeAccountID(c.Destination)
		if err != nil {
			return tx.TefINTERNAL
		}
		destination = id
	}

	result, err := ctx.Escrow.Claim(ctx.AccountID, c.Pairs, destination)
	if err != nil {
		ctx.Log.Error("claim escrow", zap.Error(err))
		return tx.TefINTERNAL
	}

	ctx.Metadata.Claim = &result
	ctx.Emit(tx.EventClaimed, tx.Attrs{
		"recipient":    tx.Address(ctx.AccountID),
		"destination":  tx.Address(destination),
		"native_total": result.NativeTotal,
		"payments":     result.Payments,
	})
	return tx.TesSUCCESS
}
