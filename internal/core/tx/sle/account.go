package sle

import "github.com/LeJamon/goMarketd/internal/core/amount"

// Account flags
const (
	// FlagContract marks an account that cannot safely receive pushed transfers.
	FlagContract uint32 = 0x00000001
)

// AccountRoot carries host-side account flags.
type AccountRoot struct {
	Account [20]byte `codec:"Account"`
	Flags   uint32   `codec:"Flags"`
}

// IsContract reports whether the account carries FlagContract.
func (a *AccountRoot) IsContract() bool {
	return a.Flags&FlagContract != 0
}

// Balance is one account's holding of one token nonce.
type Balance struct {
	Account [20]byte      `codec:"Account"`
	Token   string        `codec:"Token"`
	Nonce   uint64        `codec:"Nonce"`
	Amount  amount.Amount `codec:"Amount"`
}

// TokenInfo carries the royalty and creator of a token nonce.
type TokenInfo struct {
	Token     string   `codec:"Token"`
	Nonce     uint64   `codec:"Nonce"`
	RoyaltyBP uint16   `codec:"RoyaltyBP"`
	Creator   [20]byte `codec:"Creator"`
}
