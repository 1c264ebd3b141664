package testing

import (
	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// Native returns v units of the native currency.
func Native(v uint64) sle.Asset {
	return sle.Native(v)
}

// NFT returns one unit of a token nonce.
func NFT(token string, nonce uint64) sle.Asset {
	return sle.NewAsset(token, nonce, 1)
}

// SFT returns qty units of a token nonce.
func SFT(token string, nonce uint64, qty uint64) sle.Asset {
	return sle.NewAsset(token, nonce, qty)
}

// Fungible returns v units of a fungible token.
func Fungible(token string, v uint64) sle.Asset {
	return sle.NewAsset(token, 0, v)
}

// Amt is shorthand for amount.New.
func Amt(v uint64) amount.Amount {
	return amount.New(v)
}
