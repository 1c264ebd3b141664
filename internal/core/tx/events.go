package tx

// Event names emitted into transaction metadata.
const (
	EventAuctionCreated   = "auction_created"
	EventBidPlaced        = "bid_placed"
	EventBidRefunded      = "bid_refunded"
	EventAuctionBought    = "auction_bought"
	EventAuctionEnded     = "auction_ended"
	EventAuctionWithdrawn = "auction_withdrawn"
	EventOfferCreated     = "offer_created"
	EventOfferWithdrawn   = "offer_withdrawn"
	EventOfferAccepted    = "offer_accepted"
	EventClaimed          = "claimed"
	EventEscrowCredited   = "escrow_credited"
	EventCutSet           = "cut_set"
	EventPaused           = "paused"
	EventUnpaused         = "unpaused"
	EventWhitelistUpdated = "whitelist_updated"
)

// Attrs holds the fields of an event.
type Attrs map[string]any

// Event is a named notification produced by a successful transaction.
type Event struct {
	Name  string `json:"name"`
	Attrs Attrs  `json:"attrs,omitempty"`
}

// EventsNamed returns the events with the given name, in emission order.
func (m *Metadata) EventsNamed(name string) []Event {
	var out []Event
	for _, ev := range m.Events {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}
