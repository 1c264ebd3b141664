// Package settlement computes payment splits and routes value to recipients,
// either directly or through the escrow ledger.
package settlement

import "github.com/LeJamon/goMarketd/internal/core/amount"

// BidSplit divides one payment between the creator, the marketplace and the
// seller. The three shares always sum to the input.
type BidSplit struct {
	Creator     amount.Amount `json:"creator"`
	Marketplace amount.Amount `json:"marketplace"`
	Seller      amount.Amount `json:"seller"`
}

// Split computes the creator and marketplace shares with floor division and
// leaves the remainder to the seller.
func Split(v amount.Amount, creatorRoyaltyBP, marketplaceCutBP uint16) BidSplit {
	creator := v.MulBP(uint32(creatorRoyaltyBP))
	marketplace := v.MulBP(uint32(marketplaceCutBP))
	seller, err := v.Sub(creator.Add(marketplace))
	if err != nil {
		// only reachable when the shares exceed 100%, which callers reject
		seller = amount.Zero
	}
	return BidSplit{Creator: creator, Marketplace: marketplace, Seller: seller}
}

// Total returns the sum of the shares.
func (s BidSplit) Total() amount.Amount {
	return s.Creator.Add(s.Marketplace).Add(s.Seller)
}

// FeesFit reports whether a cut and a royalty leave the seller a share.
func FeesFit(creatorRoyaltyBP, marketplaceCutBP uint16) bool {
	return uint32(creatorRoyaltyBP)+uint32(marketplaceCutBP) < amount.BasisPoints
}
