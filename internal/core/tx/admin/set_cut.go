package admin

import (
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// MarketSetCut changes the marketplace cut applied to new listings.
// Existing auctions and offers keep the cut they were created with.
type MarketSetCut struct {
	tx.BaseTx

	CutBP uint16 `json:"CutBP"`
}

// NewMarketSetCut creates a new MarketSetCut transaction
func NewMarketSetCut(account string, cutBP uint16) *MarketSetCut {
	return &MarketSetCut{
		BaseTx: *tx.NewBaseTx(tx.TypeMarketSetCut, account),
		CutBP:  cutBP,
	}
}

// TxType returns the transaction type
func (s *MarketSetCut) TxType() tx.Type {
	return tx.TypeMarketSetCut
}

// Validate validates the MarketSetCut transaction
func (s *MarketSetCut) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.CutBP == 0 || s.CutBP >= amount.BasisPoints {
		return fmt.Errorf("temBAD_CUT: CutBP must be in (0, %d), got %d", amount.BasisPoints, s.CutBP)
	}
	return nil
}

// Apply applies a MarketSetCut transaction
func (s *MarketSetCut) Apply(ctx *tx.ApplyContext) tx.Result {
	previous := ctx.Market.CutBP
	result := update(ctx, func(cfg *sle.MarketConfig) { cfg.CutBP = s.CutBP })
	if result == tx.TesSUCCESS {
		ctx.Emit(tx.EventCutSet, tx.Attrs{
			"previous_bp": previous,
			"cut_bp":      s.CutBP,
			"version":     ctx.Market.Version,
		})
	}
	return result
}
