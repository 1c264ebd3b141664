package keylet

import (
	"testing"

	"github.com/LeJamon/goMarketd/internal/core/ledger/entry"
)

func TestKeyletTypes(t *testing.T) {
	var acct [20]byte
	acct[0] = 1

	tests := []struct {
		name string
		k    Keylet
		want entry.Type
	}{
		{"auction", Auction(1), entry.TypeAuction},
		{"offer", Offer(1), entry.TypeOffer},
		{"claimable", Claimable(acct, "NFT-abcdef", 1), entry.TypeClaimable},
		{"counter", Counter(CounterAuction), entry.TypeCounter},
		{"config", MarketConfig(), entry.TypeMarketConfig},
		{"auctions by token", AuctionsByToken("NFT-abcdef", 1), entry.TypeIndex},
		{"offer key", OfferKey(acct, "NFT-abcdef", 1, "NATIVE"), entry.TypeOfferKey},
		{"balance", Balance(acct, "NATIVE", 0), entry.TypeBalance},
		{"token info", TokenInfo("NFT-abcdef", 1), entry.TypeTokenInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.k.Type != tt.want {
				t.Errorf("type = %v, want %v", tt.k.Type, tt.want)
			}
		})
	}
}

func TestKeyletsAreDistinct(t *testing.T) {
	var acct [20]byte
	seen := map[[32]byte]string{}
	add := func(name string, k Keylet) {
		if prev, ok := seen[k.Key]; ok {
			t.Errorf("%s collides with %s", name, prev)
		}
		seen[k.Key] = name
	}

	add("auction 1", Auction(1))
	add("auction 2", Auction(2))
	add("offer 1", Offer(1))
	add("auction counter", Counter(CounterAuction))
	add("offer counter", Counter(CounterOffer))
	add("auctions by token", AuctionsByToken("NFT-abcdef", 1))
	add("offers by token", OffersByToken("NFT-abcdef", 1))
	add("auctions by seller", AuctionsBySeller(acct))
	add("offers by offeror", OffersByOfferor(acct))

	// token/nonce boundaries must not alias
	add("balance AB-1", Balance(acct, "AB", 1))
	add("balance A-B1", Balance(acct, "A", 0x4200000000000001))
}

func TestKeyletDeterministic(t *testing.T) {
	if Auction(7) != Auction(7) {
		t.Error("Auction keylet not deterministic")
	}
	if MarketConfig() != MarketConfig() {
		t.Error("MarketConfig keylet not deterministic")
	}
}
