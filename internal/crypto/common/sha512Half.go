package crypto

import "crypto/sha512"

// Sha512Half returns the first 32 bytes of the sha512 hash of the
// concatenated parts.
func Sha512Half(parts ...[]byte) [32]byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	var result [32]byte
	copy(result[:], h.Sum(nil)[:32])
	return result
}
