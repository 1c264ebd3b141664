package settlement

import (
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

// Path tells how a delivery reached its recipient.
type Path uint8

const (
	// PathNone means nothing was delivered.
	PathNone Path = iota
	// PathDirect means the amount was transferred to the recipient.
	PathDirect
	// PathEscrow means the amount was credited to the recipient's claimable balance.
	PathEscrow
)

func (p Path) String() string {
	switch p {
	case PathDirect:
		return "direct"
	case PathEscrow:
		return "escrow"
	default:
		return "none"
	}
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Deliverer pays out of the custody account.
type Deliverer struct {
	Gateway *host.Ledger
	Escrow  *escrow.Ledger
	Custody [20]byte
}

// Deliver sends v of a token nonce to recipient. Recipients that cannot
// receive pushed transfers are credited in escrow instead.
func (d *Deliverer) Deliver(recipient [20]byte, token string, nonce uint64, v amount.Amount) (Path, error) {
	if v.IsZero() {
		return PathNone, nil
	}
	direct, err := d.Gateway.CanReceiveDirect(recipient)
	if err != nil {
		return PathNone, err
	}
	if !direct {
		if err := d.Escrow.Credit(recipient, token, nonce, v); err != nil {
			return PathNone, err
		}
		return PathEscrow, nil
	}
	if err := d.Gateway.Transfer(d.Custody, recipient, sle.Asset{Token: token, Nonce: nonce, Amount: v}); err != nil {
		return PathNone, fmt.Errorf("deliver %s %s to %s: %w", v, token, sle.AddressOrEmpty(recipient), err)
	}
	return PathDirect, nil
}

// Sale is a completed sale: an item held in custody against a price held in
// custody.
type Sale struct {
	Seller   [20]byte
	Buyer    [20]byte // zero when nobody won
	Item     sle.Asset
	Payment  sle.Asset
	Operator [20]byte
	Creator  [20]byte

	CreatorRoyaltyBP uint16
	MarketplaceCutBP uint16
}

// Delivery records one leg of a settlement.
type Delivery struct {
	Recipient string        `json:"recipient"`
	Token     string        `json:"token"`
	Nonce     uint64        `json:"nonce,omitempty"`
	Amount    amount.Amount `json:"amount"`
	Path      Path          `json:"path"`
}

// Distribution is the outcome of Settle.
type Distribution struct {
	Split      BidSplit   `json:"split"`
	Deliveries []Delivery `json:"deliveries"`
}

// Settle pays a sale out of custody: the marketplace share to the operator,
// the creator share to the creator, the rest to the seller, and the item to
// the buyer. Without a buyer the item goes back to the seller.
func (d *Deliverer) Settle(s Sale) (Distribution, error) {
	var dist Distribution

	itemRecipient := s.Buyer
	if crypto.IsZeroAccountID(s.Buyer) {
		itemRecipient = s.Seller
	} else {
		dist.Split = Split(s.Payment.Amount, s.CreatorRoyaltyBP, s.MarketplaceCutBP)
		legs := []struct {
			to [20]byte
			v  amount.Amount
		}{
			{s.Operator, dist.Split.Marketplace},
			{s.Creator, dist.Split.Creator},
			{s.Seller, dist.Split.Seller},
		}
		for _, leg := range legs {
			if err := d.record(&dist, leg.to, s.Payment.Token, s.Payment.Nonce, leg.v); err != nil {
				return Distribution{}, err
			}
		}
	}

	if err := d.record(&dist, itemRecipient, s.Item.Token, s.Item.Nonce, s.Item.Amount); err != nil {
		return Distribution{}, err
	}
	return dist, nil
}

func (d *Deliverer) record(dist *Distribution, to [20]byte, token string, nonce uint64, v amount.Amount) error {
	path, err := d.Deliver(to, token, nonce, v)
	if err != nil {
		return err
	}
	if path != PathNone {
		dist.Deliveries = append(dist.Deliveries, Delivery{
			Recipient: sle.AddressOrEmpty(to),
			Token:     token,
			Nonce:     nonce,
			Amount:    v,
			Path:      path,
		})
	}
	return nil
}
