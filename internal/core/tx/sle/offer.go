package sle

// Offer is a standing purchase proposal. Its payment is held in custody
// until the offer is withdrawn or accepted.
type Offer struct {
	ID      uint64   `codec:"ID"`
	Wanted  Asset    `codec:"Wanted"`
	Payment Asset    `codec:"Payment"`
	Offeror [20]byte `codec:"Offeror"`

	StartTime uint64 `codec:"StartTime"`
	Deadline  uint64 `codec:"Deadline"`

	MarketplaceCutBP uint16 `codec:"MarketplaceCutBP"`
	CreatorRoyaltyBP uint16 `codec:"CreatorRoyaltyBP"`
}

// OfferView is the JSON read view of an offer.
type OfferView struct {
	ID               uint64 `json:"id"`
	Wanted           Asset  `json:"wanted"`
	Payment          Asset  `json:"payment"`
	Offeror          string `json:"offeror"`
	StartTime        uint64 `json:"start_time"`
	Deadline         uint64 `json:"deadline"`
	MarketplaceCutBP uint16 `json:"marketplace_cut_bp"`
	CreatorRoyaltyBP uint16 `json:"creator_royalty_bp"`
}

func (o *Offer) View() OfferView {
	return OfferView{
		ID:               o.ID,
		Wanted:           o.Wanted,
		Payment:          o.Payment,
		Offeror:          AddressOrEmpty(o.Offeror),
		StartTime:        o.StartTime,
		Deadline:         o.Deadline,
		MarketplaceCutBP: o.MarketplaceCutBP,
		CreatorRoyaltyBP: o.CreatorRoyaltyBP,
	}
}

// OfferKey marks the live offer of an (offeror, token, nonce, payment token) tuple.
type OfferKey struct {
	OfferID uint64 `codec:"OfferID"`
}
