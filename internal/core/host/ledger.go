// Package host provides the collaborators the marketplace runs against: the
// token ledger, token metadata and the clock. All of them keep their state in
// the same view as the marketplace records, so a rejected transaction rolls
// back value movements together with record changes.
package host

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// ErrInsufficientBalance is returned when a debit exceeds the holder's balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Ledger is the token ledger gateway bound to a view.
type Ledger struct {
	view sle.LedgerView
}

// NewLedger creates a gateway over view.
func NewLedger(view sle.LedgerView) *Ledger {
	return &Ledger{view: view}
}

// Balance returns what account holds of a token nonce.
func (l *Ledger) Balance(account [20]byte, token string, nonce uint64) (amount.Amount, error) {
	bal, err := sle.Read[sle.Balance](l.view, keylet.Balance(account, token, nonce))
	if err != nil {
		return amount.Zero, err
	}
	if bal == nil {
		return amount.Zero, nil
	}
	return bal.Amount, nil
}

// Credit adds asset to account's balance.
func (l *Ledger) Credit(account [20]byte, asset sle.Asset) error {
	if asset.Amount.IsZero() {
		return nil
	}
	current, err := l.Balance(account, asset.Token, asset.Nonce)
	if err != nil {
		return err
	}
	return l.setBalance(account, asset.Token, asset.Nonce, current.Add(asset.Amount))
}

// Debit removes asset from account's balance.
func (l *Ledger) Debit(account [20]byte, asset sle.Asset) error {
	if asset.Amount.IsZero() {
		return nil
	}
	current, err := l.Balance(account, asset.Token, asset.Nonce)
	if err != nil {
		return err
	}
	remaining, err := current.Sub(asset.Amount)
	if err != nil {
		return fmt.Errorf("%w: %s holds %s, needs %s", ErrInsufficientBalance,
			sle.AddressOrEmpty(account), current, asset)
	}
	return l.setBalance(account, asset.Token, asset.Nonce, remaining)
}

// Transfer moves asset from one account to another.
func (l *Ledger) Transfer(from, to [20]byte, asset sle.Asset) error {
	if err := l.Debit(from, asset); err != nil {
		return err
	}
	return l.Credit(to, asset)
}

func (l *Ledger) setBalance(account [20]byte, token string, nonce uint64, v amount.Amount) error {
	k := keylet.Balance(account, token, nonce)
	if v.IsZero() {
		exists, err := l.view.Exists(k)
		if err != nil || !exists {
			return err
		}
		return l.view.Erase(k)
	}
	return sle.Put(l.view, k, &sle.Balance{Account: account, Token: token, Nonce: nonce, Amount: v})
}

// CanReceiveDirect reports whether pushed transfers to account are safe.
// Accounts flagged as contracts must pull their funds through a claim.
func (l *Ledger) CanReceiveDirect(account [20]byte) (bool, error) {
	root, err := sle.Read[sle.AccountRoot](l.view, keylet.Account(account))
	if err != nil {
		return false, err
	}
	if root == nil {
		return true, nil
	}
	return !root.IsContract(), nil
}

// SetContract sets or clears the contract flag of account.
func (l *Ledger) SetContract(account [20]byte, contract bool) error {
	k := keylet.Account(account)
	root, err := sle.Read[sle.AccountRoot](l.view, k)
	if err != nil {
		return err
	}
	if root == nil {
		root = &sle.AccountRoot{Account: account}
	}
	if contract {
		root.Flags |= sle.FlagContract
	} else {
		root.Flags &^= sle.FlagContract
	}
	return sle.Put(l.view, k, root)
}
