// Package auction implements the auction registry transactions: listing,
// bidding, fixed-price purchases, ending and withdrawal.
package auction

import (
	"errors"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

var (
	errAuctionIDRequired = errors.New("temMALFORMED: AuctionID is required")
)

// Load reads a live auction. A missing record yields TecNO_AUCTION.
func Load(ctx *tx.ApplyContext, id uint64) (*sle.Auction, tx.Result) {
	a, err := sle.Read[sle.Auction](ctx.View, keylet.Auction(id))
	if err != nil {
		ctx.Log.Error("read auction", zap.Uint64("id", id), zap.Error(err))
		return nil, tx.TefBAD_LEDGER
	}
	if a == nil {
		return nil, tx.TecNO_AUCTION
	}
	return a, tx.TesSUCCESS
}

// Remove erases an auction and drops it from both indexes.
func Remove(view sle.LedgerView, a *sle.Auction) error {
	if err := view.Erase(keylet.Auction(a.ID)); err != nil {
		return err
	}
	if err := sle.IndexRemove(view, keylet.AuctionsByToken(a.Asset.Token, a.Asset.Nonce), a.ID); err != nil {
		return err
	}
	return sle.IndexRemove(view, keylet.AuctionsBySeller(a.Seller), a.ID)
}

// Store writes an updated auction record.
func Store(view sle.LedgerView, a *sle.Auction) error {
	return sle.Put(view, keylet.Auction(a.ID), a)
}

// Live returns the ids of stored auctions on a token nonce.
func Live(view sle.LedgerView, token string, nonce uint64) ([]uint64, error) {
	return sle.IndexList(view, keylet.AuctionsByToken(token, nonce))
}

// inWindow checks start_time <= now < deadline.
func inWindow(a *sle.Auction, now uint64, inclusiveDeadline bool) tx.Result {
	if now < a.StartTime {
		return tx.TecNOT_STARTED
	}
	if now > a.Deadline || (now == a.Deadline && !inclusiveDeadline) {
		return tx.TecEXPIRED
	}
	return tx.TesSUCCESS
}

func internal(ctx *tx.ApplyContext, msg string, err error) tx.Result {
	ctx.Log.Error(msg, zap.Error(err))
	return tx.TefINTERNAL
}
