package sle

import (
	"encoding/json"
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

// AuctionKind selects the rule set of an auction.
type AuctionKind uint8

const (
	// SingleItem sells exactly one unit to the highest bidder.
	SingleItem AuctionKind = iota + 1
	// BatchAllAtOnce sells the whole quantity to the highest bidder.
	BatchAllAtOnce
	// BatchFixedPricePerUnit sells units one purchase at a time at MinPrice each.
	BatchFixedPricePerUnit
)

var auctionKindNames = map[AuctionKind]string{
	SingleItem:             "SingleItem",
	BatchAllAtOnce:         "BatchAllAtOnce",
	BatchFixedPricePerUnit: "BatchFixedPricePerUnit",
}

func (k AuctionKind) String() string {
	if name, ok := auctionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("AuctionKind(%d)", uint8(k))
}

// Valid reports whether k is one of the known kinds.
func (k AuctionKind) Valid() bool {
	_, ok := auctionKindNames[k]
	return ok
}

// IsFixedPrice reports whether the kind settles per purchase.
func (k AuctionKind) IsFixedPrice() bool {
	return k == BatchFixedPricePerUnit
}

// ParseAuctionKind parses a kind name.
func ParseAuctionKind(s string) (AuctionKind, error) {
	for k, name := range auctionKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown auction kind %q", s)
}

func (k AuctionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *AuctionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*k = 0
		return nil
	}
	parsed, err := ParseAuctionKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Auction is a live listing. It is erased on every terminal transition.
type Auction struct {
	ID    uint64      `codec:"ID"`
	Asset Asset       `codec:"Asset"`
	Kind  AuctionKind `codec:"Kind"`

	PaymentToken string `codec:"PaymentToken"`
	PaymentNonce uint64 `codec:"PaymentNonce"`

	MinPrice     amount.Amount `codec:"MinPrice"`
	MaxPrice     amount.Amount `codec:"MaxPrice"` // zero when unbounded
	MinIncrement amount.Amount `codec:"MinIncrement"`

	StartTime uint64 `codec:"StartTime"`
	Deadline  uint64 `codec:"Deadline"`
	CreatedAt uint64 `codec:"CreatedAt"`

	Seller        [20]byte      `codec:"Seller"`
	CurrentBid    amount.Amount `codec:"CurrentBid"`
	CurrentBidder [20]byte      `codec:"CurrentBidder"`

	MarketplaceCutBP uint16 `codec:"MarketplaceCutBP"`
	CreatorRoyaltyBP uint16 `codec:"CreatorRoyaltyBP"`
}

// HasMaxPrice reports whether the auction is bounded above.
func (a *Auction) HasMaxPrice() bool {
	return !a.MaxPrice.IsZero()
}

// HasBidder reports whether a bid has been placed.
func (a *Auction) HasBidder() bool {
	return !crypto.IsZeroAccountID(a.CurrentBidder)
}

// PaymentAsset returns the accepted payment token with the given amount.
func (a *Auction) PaymentAsset(v amount.Amount) Asset {
	return Asset{Token: a.PaymentToken, Nonce: a.PaymentNonce, Amount: v}
}

// AuctionView is the JSON read view of an auction.
type AuctionView struct {
	ID               uint64         `json:"id"`
	Token            string         `json:"token"`
	Nonce            uint64         `json:"nonce"`
	Quantity         amount.Amount  `json:"quantity"`
	Kind             AuctionKind    `json:"kind"`
	PaymentToken     string         `json:"payment_token"`
	PaymentNonce     uint64         `json:"payment_nonce"`
	MinPrice         amount.Amount  `json:"min_price"`
	MaxPrice         *amount.Amount `json:"max_price,omitempty"`
	MinIncrement     amount.Amount  `json:"min_increment"`
	StartTime        uint64         `json:"start_time"`
	Deadline         uint64         `json:"deadline"`
	CreatedAt        uint64         `json:"created_at"`
	Seller           string         `json:"seller"`
	CurrentBid       amount.Amount  `json:"current_bid"`
	CurrentBidder    string         `json:"current_bidder,omitempty"`
	MarketplaceCutBP uint16         `json:"marketplace_cut_bp"`
	CreatorRoyaltyBP uint16         `json:"creator_royalty_bp"`
}

// View renders the record with addresses instead of raw account ids.
func (a *Auction) View() AuctionView {
	v := AuctionView{
		ID:               a.ID,
		Token:            a.Asset.Token,
		Nonce:            a.Asset.Nonce,
		Quantity:         a.Asset.Amount,
		Kind:             a.Kind,
		PaymentToken:     a.PaymentToken,
		PaymentNonce:     a.PaymentNonce,
		MinPrice:         a.MinPrice,
		MinIncrement:     a.MinIncrement,
		StartTime:        a.StartTime,
		Deadline:         a.Deadline,
		CreatedAt:        a.CreatedAt,
		Seller:           AddressOrEmpty(a.Seller),
		CurrentBid:       a.CurrentBid,
		CurrentBidder:    AddressOrEmpty(a.CurrentBidder),
		MarketplaceCutBP: a.MarketplaceCutBP,
		CreatorRoyaltyBP: a.CreatorRoyaltyBP,
	}
	if a.HasMaxPrice() {
		max := a.MaxPrice
		v.MaxPrice = &max
	}
	return v
}
