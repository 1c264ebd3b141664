// Package admin implements the operator transactions on the market
// config. Every type here is owner-only and remains available while the
// market is paused.
package admin

import (
	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

func init() {
	tx.Register(tx.TypeMarketSetCut, func() tx.Transaction {
		return &MarketSetCut{BaseTx: *tx.NewBaseTx(tx.TypeMarketSetCut, "")}
	})
	tx.Register(tx.TypeMarketPause, func() tx.Transaction {
		return &MarketPause{BaseTx: *tx.NewBaseTx(tx.TypeMarketPause, "")}
	})
	tx.Register(tx.TypeMarketUnpause, func() tx.Transaction {
		return &MarketUnpause{BaseTx: *tx.NewBaseTx(tx.TypeMarketUnpause, "")}
	})
	tx.Register(tx.TypeMarketWhitelistSet, func() tx.Transaction {
		return &MarketWhitelistSet{BaseTx: *tx.NewBaseTx(tx.TypeMarketWhitelistSet, "")}
	})
}

// update runs fn on the config after the owner check and writes it back.
func update(ctx *tx.ApplyContext, fn func(cfg *sle.MarketConfig)) tx.Result {
	if ctx.AccountID != ctx.Market.Owner {
		return tx.TecNO_PERMISSION
	}
	fn(ctx.Market)
	if err := sle.WriteMarketConfig(ctx.View, ctx.Market); err != nil {
		ctx.Log.Error("write market config", zap.Error(err))
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}

// MarketPause stops every non-administrative transaction.
type MarketPause struct {
	tx.BaseTx
}

// NewMarketPause creates a new MarketPause transaction
func NewMarketPause(account string) *MarketPause {
	return &MarketPause{BaseTx: *tx.NewBaseTx(tx.TypeMarketPause, account)}
}

// TxType returns the transaction type
func (p *MarketPause) TxType() tx.Type {
	return tx.TypeMarketPause
}

// Apply applies a MarketPause transaction
func (p *MarketPause) Apply(ctx *tx.ApplyContext) tx.Result {
	result := update(ctx, func(cfg *sle.MarketConfig) { cfg.Paused = true })
	if result == tx.TesSUCCESS {
		ctx.Emit(tx.EventPaused, tx.Attrs{"version": ctx.Market.Version})
	}
	return result
}

// MarketUnpause resumes normal operation.
type MarketUnpause struct {
	tx.BaseTx
}

// NewMarketUnpause creates a new MarketUnpause transaction
func NewMarketUnpause(account string) *MarketUnpause {
	return &MarketUnpause{BaseTx: *tx.NewBaseTx(tx.TypeMarketUnpause, account)}
}

// TxType returns the transaction type
func (u *MarketUnpause) TxType() tx.Type {
	return tx.TypeMarketUnpause
}

// Apply applies a MarketUnpause transaction
func (u *MarketUnpause) Apply(ctx *tx.ApplyContext) tx.Result {
	result := update(ctx, func(cfg *sle.MarketConfig) { cfg.Paused = false })
	if result == tx.TesSUCCESS {
		ctx.Emit(tx.EventUnpaused, tx.Attrs{"version": ctx.Market.Version})
	}
	return result
}
