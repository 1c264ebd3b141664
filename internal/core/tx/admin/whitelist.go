package admin

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// MarketWhitelistSet adds and removes accepted payment tokens. Removals are
// applied after additions. An empty whitelist accepts every token.
type MarketWhitelistSet struct {
	tx.BaseTx

	Add    []string `json:"Add,omitempty"`
	Remove []string `json:"Remove,omitempty"`
}

// NewMarketWhitelistSet creates a new MarketWhitelistSet transaction
func NewMarketWhitelistSet(account string, add, remove []string) *MarketWhitelistSet {
	return &MarketWhitelistSet{
		BaseTx: *tx.NewBaseTx(tx.TypeMarketWhitelistSet, account),
		Add:    add,
		Remove: remove,
	}
}

// TxType returns the transaction type
func (w *MarketWhitelistSet) TxType() tx.Type {
	return tx.TypeMarketWhitelistSet
}

// Validate validates the MarketWhitelistSet transaction
func (w *MarketWhitelistSet) Validate() error {
	if err := w.BaseTx.Validate(); err != nil {
		return err
	}
	if len(w.Add) == 0 && len(w.Remove) == 0 {
		return errors.New("temMALFORMED: nothing to add or remove")
	}
	for _, token := range append(append([]string{}, w.Add...), w.Remove...) {
		if err := sle.ValidateToken(token); err != nil {
			return fmt.Errorf("temBAD_ASSET: %w", err)
		}
	}
	return nil
}

// Apply applies a MarketWhitelistSet transaction
func (w *MarketWhitelistSet) Apply(ctx *tx.ApplyContext) tx.Result {
	result := update(ctx, func(cfg *sle.MarketConfig) {
		cfg.AddToWhitelist(w.Add...)
		cfg.RemoveFromWhitelist(w.Remove...)
	})
	if result == tx.TesSUCCESS {
		ctx.Emit(tx.EventWhitelistUpdated, tx.Attrs{
			"added":     w.Add,
			"removed":   w.Remove,
			"whitelist": ctx.Market.Whitelist,
			"version":   ctx.Market.Version,
		})
	}
	return result
}
