package host

import (
	"errors"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

var (
	ErrRoyaltyTooHigh = errors.New("royalty must be below 10000 bp")
	ErrNoCreator      = errors.New("royalty requires a creator")
)

// Metadata resolves the royalty and creator of a token nonce. Unknown tokens
// carry no royalty and no creator.
type Metadata struct {
	view sle.LedgerView
}

// NewMetadata creates a metadata provider over view.
func NewMetadata(view sle.LedgerView) *Metadata {
	return &Metadata{view: view}
}

func (m *Metadata) info(token string, nonce uint64) (*sle.TokenInfo, error) {
	return sle.Read[sle.TokenInfo](m.view, keylet.TokenInfo(token, nonce))
}

// RoyaltyBP returns the creator royalty of a token nonce in basis points.
func (m *Metadata) RoyaltyBP(token string, nonce uint64) (uint16, error) {
	info, err := m.info(token, nonce)
	if err != nil || info == nil {
		return 0, err
	}
	return info.RoyaltyBP, nil
}

// Creator returns the creator of a token nonce, or the zero account.
func (m *Metadata) Creator(token string, nonce uint64) ([20]byte, error) {
	info, err := m.info(token, nonce)
	if err != nil || info == nil {
		return [20]byte{}, err
	}
	return info.Creator, nil
}

// SetTokenInfo stores the royalty and creator of a token nonce.
func (m *Metadata) SetTokenInfo(info sle.TokenInfo) error {
	if err := sle.ValidateToken(info.Token); err != nil {
		return err
	}
	if info.RoyaltyBP >= amount.BasisPoints {
		return ErrRoyaltyTooHigh
	}
	if info.RoyaltyBP > 0 && crypto.IsZeroAccountID(info.Creator) {
		return ErrNoCreator
	}
	return sle.Put(m.view, keylet.TokenInfo(info.Token, info.Nonce), &info)
}
