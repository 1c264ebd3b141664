package sle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/entry"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

func testAccount(name string) [20]byte {
	return crypto.DeriveKeyPair(name).AccountID
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		token string
		valid bool
	}{
		{NativeToken, true},
		{"ART-0a1b2c", true},
		{"COLLECTION1-0a1b2c", false},
		{"ART-0A1B2C", false},
		{"art-0a1b2c", false},
		{"AR-0a1b2c", false},
		{"ART0a1b2c", false},
		{"ART-0a1b2", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrBadToken)
			}
		})
	}
}

func TestAssetValidate(t *testing.T) {
	assert.NoError(t, Native(5).Validate())
	assert.ErrorIs(t, Asset{Token: NativeToken, Nonce: 1, Amount: amount.New(1)}.Validate(), ErrBadNativeNonce)
	assert.NoError(t, NewAsset("ART-0a1b2c", 3, 1).Validate())

	a := NewAsset("ART-0a1b2c", 3, 2)
	assert.True(t, a.SameToken(NewAsset("ART-0a1b2c", 3, 9)))
	assert.False(t, a.Equal(NewAsset("ART-0a1b2c", 3, 9)))
	assert.True(t, a.Equal(NewAsset("ART-0a1b2c", 3, 2)))
	assert.Equal(t, "2 ART-0a1b2c/3", a.String())
}

func TestAuctionKindJSON(t *testing.T) {
	for _, k := range []AuctionKind{SingleItem, BatchAllAtOnce, BatchFixedPricePerUnit} {
		data, err := json.Marshal(k)
		require.NoError(t, err)
		var back AuctionKind
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, k, back)
		assert.True(t, k.Valid())
	}

	var k AuctionKind
	assert.Error(t, json.Unmarshal([]byte(`"Dutch"`), &k))
	assert.False(t, AuctionKind(9).Valid())
	assert.Equal(t, "AuctionKind(9)", AuctionKind(9).String())
	assert.True(t, BatchFixedPricePerUnit.IsFixedPrice())
}

func TestAuctionCodec(t *testing.T) {
	seller := testAccount("alice")
	bidder := testAccount("bob")
	a := &Auction{
		ID:               7,
		Asset:            NewAsset("ART-0a1b2c", 1, 1),
		Kind:             SingleItem,
		PaymentToken:     NativeToken,
		MinPrice:         amount.New(100),
		MaxPrice:         amount.New(200),
		MinIncrement:     amount.New(5),
		StartTime:        10,
		Deadline:         110,
		CreatedAt:        10,
		Seller:           seller,
		CurrentBid:       amount.MustParse("150"),
		CurrentBidder:    bidder,
		MarketplaceCutBP: 250,
		CreatorRoyaltyBP: 1000,
	}

	data, err := Marshal(entry.TypeAuction, a)
	require.NoError(t, err)
	assert.Equal(t, entry.TypeAuction, EntryType(data))

	var back Auction
	require.NoError(t, Unmarshal(data, &back))
	assert.Equal(t, *a, back)
	assert.True(t, back.HasBidder())
	assert.True(t, back.HasMaxPrice())

	fields, err := Fields(data)
	require.NoError(t, err)
	assert.Equal(t, crypto.MustEncodeAddress(seller), fields["Seller"])
	assert.Equal(t, crypto.MustEncodeAddress(bidder), fields["CurrentBidder"])
	assert.Equal(t, "150", fields["CurrentBid"])
	assert.Equal(t, "ART-0a1b2c", fields["Asset"].(map[string]any)["Token"])
}

func TestMarshalKeepsEntryTypePrefix(t *testing.T) {
	data, err := Marshal(entry.TypeAuction, &Counter{Last: 7})
	require.NoError(t, err)
	require.Greater(t, len(data), 2)
	assert.Equal(t, []byte{0x00, 0x41}, data[:2])
	assert.Equal(t, entry.TypeAuction, EntryType(data))

	var back Counter
	require.NoError(t, Unmarshal(data, &back))
	assert.Equal(t, uint64(7), back.Last)

	fields, err := Fields(data)
	require.NoError(t, err)
	assert.EqualValues(t, 7, fields["Last"])
}

func TestFieldsKeepsDigitStrings(t *testing.T) {
	// a 20 digit amount has the length of an account id
	bal := &Balance{Token: NativeToken, Amount: amount.MustParse("12345678901234567890")}
	data, err := Marshal(entry.TypeBalance, bal)
	require.NoError(t, err)
	fields, err := Fields(data)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", fields["Amount"])
}

func TestUnmarshalShortEntry(t *testing.T) {
	var a Auction
	assert.ErrorIs(t, Unmarshal([]byte{0x00}, &a), ErrShortEntry)
	_, err := Fields(nil)
	assert.ErrorIs(t, err, ErrShortEntry)
}

func TestReadPut(t *testing.T) {
	view := state.NewMemoryView()
	k := keylet.Offer(1)

	o, err := Read[Offer](view, k)
	require.NoError(t, err)
	assert.Nil(t, o)

	offer := &Offer{ID: 1, Wanted: NewAsset("ART-0a1b2c", 1, 1), Payment: Native(10), Deadline: 50}
	require.NoError(t, Put(view, k, offer))
	offer.Deadline = 60
	require.NoError(t, Put(view, k, offer))

	o, err = Read[Offer](view, k)
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, uint64(60), o.Deadline)

	assert.Error(t, Insert(view, k, offer))
}

func TestNextID(t *testing.T) {
	view := state.NewMemoryView()

	last, err := LastID(view, keylet.CounterAuction)
	require.NoError(t, err)
	assert.Zero(t, last)

	for want := uint64(1); want <= 3; want++ {
		id, err := NextID(view, keylet.CounterAuction)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	id, err := NextID(view, keylet.CounterOffer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id, "counters are independent")

	last, err = LastID(view, keylet.CounterAuction)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), last)
}

func TestIndex(t *testing.T) {
	view := state.NewMemoryView()
	k := keylet.AuctionsByToken("ART-0a1b2c", 1)

	for _, id := range []uint64{5, 2, 9, 2} {
		require.NoError(t, IndexAdd(view, k, id))
	}
	ids, err := IndexList(view, k)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 5, 9}, ids)

	require.NoError(t, IndexRemove(view, k, 5))
	require.NoError(t, IndexRemove(view, k, 42))
	ids, err = IndexList(view, k)
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 9}, ids)

	require.NoError(t, IndexRemove(view, k, 2))
	require.NoError(t, IndexRemove(view, k, 9))
	exists, err := view.Exists(k)
	require.NoError(t, err)
	assert.False(t, exists, "empty index is erased")
}

func TestMarketConfig(t *testing.T) {
	view := state.NewMemoryView()
	_, err := ReadMarketConfig(view)
	assert.ErrorIs(t, err, ErrNoMarketConfig)

	cfg := &MarketConfig{Owner: testAccount("owner"), CutBP: 250}
	assert.True(t, cfg.IsWhitelisted("ANY-000000"), "empty whitelist allows everything")

	cfg.AddToWhitelist("USDC-aaaaaa", NativeToken, "USDC-aaaaaa")
	assert.Equal(t, []string{NativeToken, "USDC-aaaaaa"}, cfg.Whitelist)
	assert.True(t, cfg.IsWhitelisted(NativeToken))
	assert.False(t, cfg.IsWhitelisted("ANY-000000"))

	require.NoError(t, WriteMarketConfig(view, cfg))
	require.NoError(t, WriteMarketConfig(view, cfg))

	stored, err := ReadMarketConfig(view)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stored.Version)
	assert.Equal(t, uint16(250), stored.CutBP)

	stored.RemoveFromWhitelist("USDC-aaaaaa", "MISSING-000000")
	assert.Equal(t, []string{NativeToken}, stored.Whitelist)
}

func TestAuctionView(t *testing.T) {
	a := &Auction{ID: 3, Asset: NewAsset("ART-0a1b2c", 1, 1), Kind: SingleItem, Seller: testAccount("alice")}
	v := a.View()
	assert.Nil(t, v.MaxPrice)
	assert.Empty(t, v.CurrentBidder)
	assert.Equal(t, crypto.MustEncodeAddress(a.Seller), v.Seller)

	a.MaxPrice = amount.New(10)
	v = a.View()
	require.NotNil(t, v.MaxPrice)
	assert.Equal(t, "10", v.MaxPrice.String())
}
