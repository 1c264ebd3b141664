package sle

import "github.com/LeJamon/goMarketd/internal/crypto"

// EncodeAccountID encodes a 20-byte account ID to a classic address string
func EncodeAccountID(accountID [20]byte) (string, error) {
	return crypto.EncodeAddress(accountID)
}

// DecodeAccountID decodes a classic address string to a 20-byte account ID
func DecodeAccountID(address string) ([20]byte, error) {
	return crypto.DecodeAddress(address)
}

// AddressOrEmpty renders an account ID, or "" for the zero account.
func AddressOrEmpty(accountID [20]byte) string {
	if crypto.IsZeroAccountID(accountID) {
		return ""
	}
	addr, err := crypto.EncodeAddress(accountID)
	if err != nil {
		return ""
	}
	return addr
}
