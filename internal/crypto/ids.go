package crypto

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an account ID in bytes.
const AccountIDSize = 20

// CalcAccountID computes the account ID from a public key as
// RIPEMD160(SHA256(publicKey)). The whole key, including any prefix byte,
// is hashed.
func CalcAccountID(publicKey []byte) [AccountIDSize]byte {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], ripemd160Hash)
	return result
}

// AccountIDFromBytes creates an account ID from a byte slice.
// Returns a zero account ID if the slice is not exactly 20 bytes.
func AccountIDFromBytes(b []byte) [AccountIDSize]byte {
	var result [AccountIDSize]byte
	if len(b) == AccountIDSize {
		copy(result[:], b)
	}
	return result
}

// IsZeroAccountID returns true if the account ID is all zeros.
// The zero account marks an absent bidder or an unknown creator.
func IsZeroAccountID(id [AccountIDSize]byte) bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}
