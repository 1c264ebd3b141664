package sle

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/LeJamon/goMarketd/internal/core/amount"
)

// NativeToken is the identifier of the chain's native currency.
const NativeToken = "NATIVE"

var (
	ErrBadToken       = errors.New("invalid token identifier")
	ErrBadNativeNonce = errors.New("native token must have nonce 0")
)

var tokenPattern = regexp.MustCompile(`^[A-Z0-9]{3,10}-[0-9a-f]{6}$`)

// ValidateToken checks that token is either the native identifier or a
// TICKER-hhhhhh identifier.
func ValidateToken(token string) error {
	if token == NativeToken {
		return nil
	}
	if !tokenPattern.MatchString(token) {
		return fmt.Errorf("%w: %q", ErrBadToken, token)
	}
	return nil
}

// IsNative reports whether token is the native currency.
func IsNative(token string) bool {
	return token == NativeToken
}

// Asset is a quantity of one token nonce. It describes both auctioned items
// and payments.
type Asset struct {
	Token  string        `json:"Token" codec:"Token"`
	Nonce  uint64        `json:"Nonce,omitempty" codec:"Nonce"`
	Amount amount.Amount `json:"Amount" codec:"Amount"`
}

// NewAsset builds an asset of v units.
func NewAsset(token string, nonce uint64, v uint64) Asset {
	return Asset{Token: token, Nonce: nonce, Amount: amount.New(v)}
}

// Native builds an amount of the native currency.
func Native(v uint64) Asset {
	return Asset{Token: NativeToken, Amount: amount.New(v)}
}

// Validate checks the token identifier and the native nonce rule.
func (a Asset) Validate() error {
	if err := ValidateToken(a.Token); err != nil {
		return err
	}
	if IsNative(a.Token) && a.Nonce != 0 {
		return ErrBadNativeNonce
	}
	return nil
}

// SameToken reports whether both assets refer to the same token nonce.
func (a Asset) SameToken(other Asset) bool {
	return a.Token == other.Token && a.Nonce == other.Nonce
}

// Equal reports whether both assets carry the same token nonce and quantity.
func (a Asset) Equal(other Asset) bool {
	return a.SameToken(other) && a.Amount.Equal(other.Amount)
}

func (a Asset) String() string {
	if IsNative(a.Token) {
		return fmt.Sprintf("%s %s", a.Amount, a.Token)
	}
	return fmt.Sprintf("%s %s/%d", a.Amount, a.Token, a.Nonce)
}
