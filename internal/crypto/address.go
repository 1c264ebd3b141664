package crypto

import (
	"errors"
	"fmt"

	addresscodec "github.com/Peersyst/xrpl-go/address-codec"
)

// ErrInvalidAddress is returned when an address does not decode to an account ID.
var ErrInvalidAddress = errors.New("invalid address")

// EncodeAddress renders an account ID as a classic base58 address.
func EncodeAddress(id [AccountIDSize]byte) (string, error) {
	addr, err := addresscodec.EncodeAccountIDToClassicAddress(id[:])
	if err != nil {
		return "", fmt.Errorf("encode account id: %w", err)
	}
	return addr, nil
}

// MustEncodeAddress is EncodeAddress for ids known to be well formed.
func MustEncodeAddress(id [AccountIDSize]byte) string {
	addr, err := EncodeAddress(id)
	if err != nil {
		panic(err)
	}
	return addr
}

// DecodeAddress parses a classic address into its account ID.
func DecodeAddress(address string) ([AccountIDSize]byte, error) {
	var id [AccountIDSize]byte
	if address == "" {
		return id, ErrInvalidAddress
	}
	_, raw, err := addresscodec.DecodeClassicAddressToAccountID(address)
	if err != nil {
		return id, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, address, err)
	}
	if len(raw) != AccountIDSize {
		return id, fmt.Errorf("%w: %s: wrong length %d", ErrInvalidAddress, address, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}
