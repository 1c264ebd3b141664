package sle

import "github.com/LeJamon/goMarketd/internal/core/amount"

// Claimable is an escrowed balance a recipient could not receive directly.
// Only entries with a non-zero amount are stored.
type Claimable struct {
	Recipient [20]byte      `codec:"Recipient"`
	Token     string        `codec:"Token"`
	Nonce     uint64        `codec:"Nonce"`
	Amount    amount.Amount `codec:"Amount"`
}
