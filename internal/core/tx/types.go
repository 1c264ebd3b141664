package tx

import "fmt"

// Type represents a transaction type code
type Type uint16

// All transaction type codes
const (
	TypeInvalid Type = 0xFFFF // Invalid/unknown type

	// Auction registry
	TypeAuctionCreate   Type = 1
	TypeAuctionBid      Type = 2
	TypeAuctionBuy      Type = 3
	TypeAuctionEnd      Type = 4
	TypeAuctionWithdraw Type = 5

	// Offer registry
	TypeOfferCreate            Type = 10
	TypeOfferWithdraw          Type = 11
	TypeOfferAccept            Type = 12
	TypeOfferAcceptWithAuction Type = 13

	// Escrow ledger
	TypeEscrowClaim Type = 20

	// Administration
	TypeMarketSetCut       Type = 30
	TypeMarketPause        Type = 31
	TypeMarketUnpause      Type = 32
	TypeMarketWhitelistSet Type = 33
)

var typeNames = map[Type]string{
	TypeAuctionCreate:          "AuctionCreate",
	TypeAuctionBid:             "AuctionBid",
	TypeAuctionBuy:             "AuctionBuy",
	TypeAuctionEnd:             "AuctionEnd",
	TypeAuctionWithdraw:        "AuctionWithdraw",
	TypeOfferCreate:            "OfferCreate",
	TypeOfferWithdraw:          "OfferWithdraw",
	TypeOfferAccept:            "OfferAccept",
	TypeOfferAcceptWithAuction: "OfferAcceptWithAuction",
	TypeEscrowClaim:            "EscrowClaim",
	TypeMarketSetCut:           "MarketSetCut",
	TypeMarketPause:            "MarketPause",
	TypeMarketUnpause:          "MarketUnpause",
	TypeMarketWhitelistSet:     "MarketWhitelistSet",
}

var typeNameMap = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the string representation of the transaction type
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName returns the transaction type for a given name
func TypeFromName(name string) (Type, bool) {
	t, ok := typeNameMap[name]
	return t, ok
}

// IsAdmin returns true for operator transactions. They are owner-only and
// still run while the marketplace is paused.
func (t Type) IsAdmin() bool {
	switch t {
	case TypeMarketSetCut, TypeMarketPause, TypeMarketUnpause, TypeMarketWhitelistSet:
		return true
	}
	return false
}

// IsPayable returns true if the transaction may carry an attached payment.
func (t Type) IsPayable() bool {
	switch t {
	case TypeAuctionCreate, TypeAuctionBid, TypeAuctionBuy, TypeOfferCreate, TypeOfferAccept:
		return true
	}
	return false
}
