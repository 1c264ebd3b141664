package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	// Marketplace records
	TypeAuction   Type = 0x0041 // Live auction listings
	TypeOffer     Type = 0x006f // Standing purchase offers
	TypeClaimable Type = 0x0063 // Escrowed balances awaiting claim

	// Bookkeeping
	TypeCounter      Type = 0x004e // Monotonic id counters
	TypeMarketConfig Type = 0x004d // Operator configuration (singleton)
	TypeIndex        Type = 0x0069 // Secondary id indexes
	TypeOfferKey     Type = 0x006b // Offer uniqueness markers

	// Host ledger
	TypeAccountRoot Type = 0x0061 // Account flags
	TypeBalance     Type = 0x0062 // Token balances
	TypeTokenInfo   Type = 0x0074 // Token royalty and creator
)

// String returns the string representation of the Type
func (t Type) String() string {
	switch t {
	case TypeAuction:
		return "Auction"
	case TypeOffer:
		return "Offer"
	case TypeClaimable:
		return "Claimable"
	case TypeCounter:
		return "Counter"
	case TypeMarketConfig:
		return "MarketConfig"
	case TypeIndex:
		return "Index"
	case TypeOfferKey:
		return "OfferKey"
	case TypeAccountRoot:
		return "AccountRoot"
	case TypeBalance:
		return "Balance"
	case TypeTokenInfo:
		return "TokenInfo"
	default:
		return fmt.Sprintf("Unknown(%#x)", uint16(t))
	}
}
