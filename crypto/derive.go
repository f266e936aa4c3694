package crypto

import (
	"github.com/iov-one/govlock/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// DefaultPath is the hardened derivation path of the first signer key.
const DefaultPath = "m/44'/234'/0'"

// DeriveEd25519 derives a private key from a master seed along a hardened
// SLIP-10 path such as DefaultPath.
func DeriveEd25519(seed []byte, path string) (*PrivateKey, error) {
	if len(seed) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "seed")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
