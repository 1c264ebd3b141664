package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcAccountID(t *testing.T) {
	tests := []struct {
		name      string
		publicKey string
		accountID string
	}{
		{
			name:      "Ed25519 public key",
			publicKey: "ED9434799226374926EDA3B54B1B461B4ABF7237962EAE18528FEA67595397FA32",
			accountID: "88a5a57c829f40f25ea83385bbde6c3d8b4ca082",
		},
		{
			name:      "Secp256k1 public key",
			publicKey: "0330E7FC9D56BB25D6893BA3F317AE5BCF33B3291BD63DB32654A313222F7FD020",
			accountID: "b5f762798a53d543a014caf8b297cff8f2f937e8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pubKey, err := hex.DecodeString(tt.publicKey)
			require.NoError(t, err)

			accountID := CalcAccountID(pubKey)

			expectedID, err := hex.DecodeString(tt.accountID)
			require.NoError(t, err)
			assert.Equal(t, expectedID, accountID[:])
		})
	}
}

func TestAddressRoundTrip(t *testing.T) {
	kp := DeriveKeyPair("alice")
	addr := kp.Address()
	require.NotEmpty(t, addr)
	assert.Equal(t, byte('r'), addr[0])

	id, err := DecodeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, kp.AccountID, id)
}

func TestDeriveKeyPairVector(t *testing.T) {
	kp := DeriveKeyPair("alice")
	assert.Equal(t, "039997a497d964fc1a62885b05a51166a65a90df00492c8d7cf61d6accf54803be", hex.EncodeToString(kp.PublicKey))
	assert.Equal(t, "33b94b70bbd434f0ad01925669bedf3469832b58", hex.EncodeToString(kp.AccountID[:]))
	assert.Equal(t, kp.AccountID, CalcAccountID(kp.PublicKey))
}

func TestDeriveKeyPairDeterministic(t *testing.T) {
	a := DeriveKeyPair("seller")
	b := DeriveKeyPair("seller")
	c := DeriveKeyPair("buyer")

	assert.Equal(t, a.AccountID, b.AccountID)
	assert.NotEqual(t, a.AccountID, c.AccountID)
	assert.Len(t, a.PublicKey, 33)
}

func TestDecodeAddressRejectsGarbage(t *testing.T) {
	_, err := DecodeAddress("")
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = DecodeAddress("not-an-address")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestIsZeroAccountID(t *testing.T) {
	var zero [AccountIDSize]byte
	assert.True(t, IsZeroAccountID(zero))
	assert.False(t, IsZeroAccountID(DeriveKeyPair("x").AccountID))
	assert.Equal(t, zero, AccountIDFromBytes([]byte{1, 2}))
}
