package testing

import (
	"fmt"

	"github.com/LeJamon/goMarketd/internal/crypto"
)

// Account represents a test account with a deterministic address.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Address is the classic address (e.g., "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh").
	Address string

	// ID is the 20-byte account ID derived from the public key.
	ID [20]byte
}

// NewAccount creates a test account derived from the name. Using the same
// name always produces the same account.
func NewAccount(name string) *Account {
	kp := crypto.DeriveKeyPair(name)
	return &Account{
		Name:    name,
		Address: kp.Address(),
		ID:      kp.AccountID,
	}
}

// Human returns the address of the account.
func (a *Account) Human() string {
	return a.Address
}

func (a *Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Address)
}
