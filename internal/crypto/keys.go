package crypto

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
)

// KeyPair is a secp256k1 key pair together with its derived account ID.
type KeyPair struct {
	PrivateKey *btcec.PrivateKey
	PublicKey  []byte
	AccountID  [AccountIDSize]byte
}

// DeriveKeyPair derives a deterministic key pair from a passphrase. The
// same passphrase always yields the same account, which genesis files and
// tests rely on to name accounts.
func DeriveKeyPair(passphrase string) *KeyPair {
	seed := sha256.Sum256([]byte(passphrase))
	priv, pub := btcec.PrivKeyFromBytes(seed[:])
	compressed := pub.SerializeCompressed()
	return &KeyPair{
		PrivateKey: priv,
		PublicKey:  compressed,
		AccountID:  CalcAccountID(compressed),
	}
}

// Address returns the classic address of the key pair.
func (k *KeyPair) Address() string {
	return MustEncodeAddress(k.AccountID)
}
