package service

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// maxConcurrentReads bounds the record reads of one listing.
const maxConcurrentReads = 16

// Auction returns a live auction. found is false when the id does not
// resolve to a live record.
func (s *Service) Auction(id uint64) (a *sle.Auction, found bool, err error) {
	a, err = sle.Read[sle.Auction](s.view, keylet.Auction(id))
	if err != nil {
		return nil, false, fmt.Errorf("read auction %d: %w", id, err)
	}
	return a, a != nil, nil
}

// Offer returns a live offer. found is false when the id does not resolve
// to a live record.
func (s *Service) Offer(id uint64) (o *sle.Offer, found bool, err error) {
	o, err = sle.Read[sle.Offer](s.view, keylet.Offer(id))
	if err != nil {
		return nil, false, fmt.Errorf("read offer %d: %w", id, err)
	}
	return o, o != nil, nil
}

// AuctionsByToken lists the live auctions on a token nonce.
func (s *Service) AuctionsByToken(token string, nonce uint64) ([]*sle.Auction, error) {
	return resolve[sle.Auction](s.view, keylet.AuctionsByToken(token, nonce), keylet.Auction)
}

// AuctionsBySeller lists the live auctions of a seller.
func (s *Service) AuctionsBySeller(address string) ([]*sle.Auction, error) {
	id, err := sle.DecodeAccountID(address)
	if err != nil {
		return nil, err
	}
	return resolve[sle.Auction](s.view, keylet.AuctionsBySeller(id), keylet.Auction)
}

// OffersByToken lists the live offers for a token nonce.
func (s *Service) OffersByToken(token string, nonce uint64) ([]*sle.Offer, error) {
	return resolve[sle.Offer](s.view, keylet.OffersByToken(token, nonce), keylet.Offer)
}

// OffersByOfferor lists the live offers of an offeror.
func (s *Service) OffersByOfferor(address string) ([]*sle.Offer, error) {
	id, err := sle.DecodeAccountID(address)
	if err != nil {
		return nil, err
	}
	return resolve[sle.Offer](s.view, keylet.OffersByOfferor(id), keylet.Offer)
}

// resolve reads every record of an index concurrently, in index order.
func resolve[T any](view sle.LedgerView, index keylet.Keylet, key func(uint64) keylet.Keylet) ([]*T, error) {
	ids, err := sle.IndexList(view, index)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	records := make([]*T, len(ids))
	var g errgroup.Group
	g.SetLimit(maxConcurrentReads)
	for i, id := range ids {
		g.Go(func() error {
			rec, err := sle.Read[T](view, key(id))
			if err != nil {
				return fmt.Errorf("read record %d: %w", id, err)
			}
			if rec == nil {
				return fmt.Errorf("index references missing record %d", id)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Claimable returns the escrowed amount of an address for a token nonce.
func (s *Service) Claimable(address, token string, nonce uint64) (amount.Amount, error) {
	id, err := sle.DecodeAccountID(address)
	if err != nil {
		return amount.Zero, err
	}
	gateway := host.NewLedger(s.view)
	cfg, err := s.Config()
	if err != nil {
		return amount.Zero, err
	}
	return escrow.New(s.view, gateway, cfg.Custody).Amount(id, token, nonce)
}

// Balance returns the host ledger balance of an address.
func (s *Service) Balance(address, token string, nonce uint64) (amount.Amount, error) {
	id, err := sle.DecodeAccountID(address)
	if err != nil {
		return amount.Zero, err
	}
	return host.NewLedger(s.view).Balance(id, token, nonce)
}

// Config returns the market configuration.
func (s *Service) Config() (*sle.MarketConfig, error) {
	return sle.ReadMarketConfig(s.view)
}

// LastAuctionID returns the last auction id handed out, or 0.
func (s *Service) LastAuctionID() (uint64, error) {
	return sle.LastID(s.view, keylet.CounterAuction)
}

// LastOfferID returns the last offer id handed out, or 0.
func (s *Service) LastOfferID() (uint64, error) {
	return sle.LastID(s.view, keylet.CounterOffer)
}
