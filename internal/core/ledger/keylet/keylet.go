package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/goMarketd/internal/core/ledger/entry"
	crypto "github.com/LeJamon/goMarketd/internal/crypto/common"
)

// Space identifiers for keylet generation
const (
	spaceAuction      uint16 = 'A' // Auction
	spaceOffer        uint16 = 'o' // Offer
	spaceClaimable    uint16 = 'c' // Claimable balance
	spaceCounter      uint16 = 'n' // Id counter
	spaceConfig       uint16 = 'M' // Market config (singleton)
	spaceTokenIndex   uint16 = 'i' // Auction ids by token
	spaceSellerIndex  uint16 = 's' // Auction ids by seller
	spaceOfferToken   uint16 = 'I' // Offer ids by token
	spaceOfferAccount uint16 = 'S' // Offer ids by offeror
	spaceOfferKey     uint16 = 'k' // Offer uniqueness marker
	spaceAccount      uint16 = 'a' // Account root
	spaceBalance      uint16 = 'b' // Balance
	spaceTokenInfo    uint16 = 't' // Token metadata
)

// Counter names
const (
	CounterAuction = "auction"
	CounterOffer   = "offer"
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// tokenBytes length-prefixes a token identifier so that adjacent fields
// cannot run into each other.
func tokenBytes(token string) []byte {
	b := make([]byte, 2+len(token))
	binary.BigEndian.PutUint16(b, uint16(len(token)))
	copy(b[2:], token)
	return b
}

// Auction returns the keylet for an auction record.
func Auction(id uint64) Keylet {
	return Keylet{Type: entry.TypeAuction, Key: indexHash(spaceAuction, u64(id))}
}

// Offer returns the keylet for an offer record.
func Offer(id uint64) Keylet {
	return Keylet{Type: entry.TypeOffer, Key: indexHash(spaceOffer, u64(id))}
}

// Claimable returns the keylet for the escrowed balance of a recipient.
func Claimable(recipient [20]byte, token string, nonce uint64) Keylet {
	return Keylet{
		Type: entry.TypeClaimable,
		Key:  indexHash(spaceClaimable, recipient[:], tokenBytes(token), u64(nonce)),
	}
}

// Counter returns the keylet for a named id counter.
func Counter(name string) Keylet {
	return Keylet{Type: entry.TypeCounter, Key: indexHash(spaceCounter, []byte(name))}
}

// MarketConfig returns the keylet for the singleton operator configuration.
func MarketConfig() Keylet {
	return Keylet{Type: entry.TypeMarketConfig, Key: indexHash(spaceConfig)}
}

// AuctionsByToken returns the keylet for the auction ids listing a token nonce.
func AuctionsByToken(token string, nonce uint64) Keylet {
	return Keylet{Type: entry.TypeIndex, Key: indexHash(spaceTokenIndex, tokenBytes(token), u64(nonce))}
}

// AuctionsBySeller returns the keylet for the auction ids of a seller.
func AuctionsBySeller(seller [20]byte) Keylet {
	return Keylet{Type: entry.TypeIndex, Key: indexHash(spaceSellerIndex, seller[:])}
}

// OffersByToken returns the keylet for the offer ids wanting a token nonce.
func OffersByToken(token string, nonce uint64) Keylet {
	return Keylet{Type: entry.TypeIndex, Key: indexHash(spaceOfferToken, tokenBytes(token), u64(nonce))}
}

// OffersByOfferor returns the keylet for the offer ids of an offeror.
func OffersByOfferor(offeror [20]byte) Keylet {
	return Keylet{Type: entry.TypeIndex, Key: indexHash(spaceOfferAccount, offeror[:])}
}

// OfferKey returns the uniqueness marker of an (offeror, token, nonce, payment token) tuple.
func OfferKey(offeror [20]byte, token string, nonce uint64, paymentToken string) Keylet {
	return Keylet{
		Type: entry.TypeOfferKey,
		Key:  indexHash(spaceOfferKey, offeror[:], tokenBytes(token), u64(nonce), tokenBytes(paymentToken)),
	}
}

// Account returns the keylet for an account root entry.
func Account(accountID [20]byte) Keylet {
	return Keylet{Type: entry.TypeAccountRoot, Key: indexHash(spaceAccount, accountID[:])}
}

// Balance returns the keylet for an account's balance of a token nonce.
func Balance(accountID [20]byte, token string, nonce uint64) Keylet {
	return Keylet{
		Type: entry.TypeBalance,
		Key:  indexHash(spaceBalance, accountID[:], tokenBytes(token), u64(nonce)),
	}
}

// TokenInfo returns the keylet for the metadata of a token nonce.
func TokenInfo(token string, nonce uint64) Keylet {
	return Keylet{Type: entry.TypeTokenInfo, Key: indexHash(spaceTokenInfo, tokenBytes(token), u64(nonce))}
}
