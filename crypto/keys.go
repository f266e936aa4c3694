/*
Package crypto holds the ed25519 keys that sign transactions. A public key
maps to a sigs condition whose address identifies the signer.
*/
package crypto

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is the extension of conditions fulfilled by a signature.
const ExtensionName = "sigs"

// Signer produces signatures without exposing the key material, so a
// hardware device can implement it.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivKeyEd25519 returns a random private key.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives a private key from a 32 byte seed. It
// panics on any other seed length.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if p == nil || len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrHuman, "invalid ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// Verify reports whether sig is a signature of message by this key.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	raw := sig.GetEd25519()
	return len(raw) == ed25519.SignatureSize && ed25519.Verify(p.Ed25519, message, raw)
}

// Condition returns the condition fulfilled by a signature of this key, or
// nil for an empty key.
func (p *PublicKey) Condition() govlock.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return govlock.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address of the key condition.
func (p *PublicKey) Address() govlock.Address {
	if c := p.Condition(); c != nil {
		return c.Address()
	}
	return nil
}
