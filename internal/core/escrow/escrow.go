// Package escrow keeps the balances recipients could not receive directly.
// Entries are keyed by (recipient, token, nonce) and exist only while their
// amount is non-zero. The funds themselves stay in the custody account until
// claimed.
package escrow

import (
	"fmt"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// Pair selects one token nonce to claim.
type Pair struct {
	Token string `json:"Token"`
	Nonce uint64 `json:"Nonce,omitempty"`
}

// ClaimResult reports what a claim delivered.
type ClaimResult struct {
	NativeTotal amount.Amount `json:"native_total"`
	Payments    []sle.Asset   `json:"payments,omitempty"`
}

// IsEmpty reports whether the claim delivered nothing.
func (r ClaimResult) IsEmpty() bool {
	return r.NativeTotal.IsZero() && len(r.Payments) == 0
}

// Ledger is the escrow ledger bound to a view.
type Ledger struct {
	view    sle.LedgerView
	gateway *host.Ledger
	custody [20]byte
}

// New creates an escrow ledger paying claims out of custody.
func New(view sle.LedgerView, gateway *host.Ledger, custody [20]byte) *Ledger {
	return &Ledger{view: view, gateway: gateway, custody: custody}
}

// Amount returns the claimable balance of recipient for a token nonce.
func (l *Ledger) Amount(recipient [20]byte, token string, nonce uint64) (amount.Amount, error) {
	c, err := sle.Read[sle.Claimable](l.view, keylet.Claimable(recipient, token, nonce))
	if err != nil {
		return amount.Zero, err
	}
	if c == nil {
		return amount.Zero, nil
	}
	return c.Amount, nil
}

// Credit adds v to the recipient's entry, creating it if needed.
func (l *Ledger) Credit(recipient [20]byte, token string, nonce uint64, v amount.Amount) error {
	if v.IsZero() {
		return nil
	}
	k := keylet.Claimable(recipient, token, nonce)
	c, err := sle.Read[sle.Claimable](l.view, k)
	if err != nil {
		return err
	}
	if c == nil {
		c = &sle.Claimable{Recipient: recipient, Token: token, Nonce: nonce}
	}
	c.Amount = c.Amount.Add(v)
	return sle.Put(l.view, k, c)
}

// Claim clears the caller's entries for pairs and pays them to destination.
// The native currency is summed into one payment; every other token is paid
// on its own, in pair order. Pairs with nothing claimable are skipped.
func (l *Ledger) Claim(caller [20]byte, pairs []Pair, destination [20]byte) (ClaimResult, error) {
	var result ClaimResult
	for _, p := range pairs {
		k := keylet.Claimable(caller, p.Token, p.Nonce)
		c, err := sle.Read[sle.Claimable](l.view, k)
		if err != nil {
			return ClaimResult{}, err
		}
		if c == nil || c.Amount.IsZero() {
			continue
		}
		if err := l.view.Erase(k); err != nil {
			return ClaimResult{}, err
		}

		if sle.IsNative(p.Token) {
			result.NativeTotal = result.NativeTotal.Add(c.Amount)
			continue
		}
		result.Payments = append(result.Payments, sle.Asset{Token: p.Token, Nonce: p.Nonce, Amount: c.Amount})
	}

	if !result.NativeTotal.IsZero() {
		if err := l.gateway.Transfer(l.custody, destination, sle.Asset{Token: sle.NativeToken, Amount: result.NativeTotal}); err != nil {
			return ClaimResult{}, fmt.Errorf("pay native claim: %w", err)
		}
	}
	for _, payment := range result.Payments {
		if err := l.gateway.Transfer(l.custody, destination, payment); err != nil {
			return ClaimResult{}, fmt.Errorf("pay claim %s: %w", payment, err)
		}
	}
	return result, nil
}
