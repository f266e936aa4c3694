package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestVerify(t *testing.T) {
	key := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32))
	proposal, err := key.Sign([]byte("approve proposal 1"))
	assert.Nil(t, err)
	other, err := key.Sign([]byte("approve proposal 2"))
	assert.Nil(t, err)

	again, err := key.Sign([]byte("approve proposal 1"))
	assert.Nil(t, err)
	assert.Equal(t, proposal, again)

	cases := map[string]struct {
		pub  *PublicKey
		msg  string
		sig  *Signature
		want bool
	}{
		"valid": {
			pub:  key.PublicKey(),
			msg:  "approve proposal 1",
			sig:  proposal,
			want: true,
		},
		"signature of another message": {
			pub: key.PublicKey(),
			msg: "approve proposal 1",
			sig: other,
		},
		"another key": {
			pub: GenPrivKeyEd25519().PublicKey(),
			msg: "approve proposal 1",
			sig: proposal,
		},
		"empty signature": {
			pub: key.PublicKey(),
			msg: "approve proposal 1",
			sig: &Signature{},
		},
		"nil signature": {
			pub: key.PublicKey(),
			msg: "approve proposal 1",
		},
		"truncated signature": {
			pub: key.PublicKey(),
			msg: "approve proposal 1",
			sig: &Signature{Ed25519: proposal.Ed25519[:32]},
		},
		"empty public key": {
			pub: &PublicKey{},
			msg: "approve proposal 1",
			sig: proposal,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pub.Verify([]byte(tc.msg), tc.sig))
		})
	}
}

func TestSignWithInvalidKey(t *testing.T) {
	for name, key := range map[string]*PrivateKey{
		"nil":   nil,
		"empty": {},
		"short": {Ed25519: []byte("too short")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := key.Sign([]byte("anything"))
			assert.IsErr(t, errors.ErrHuman, err)
		})
	}
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{31}, 32)
	key := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, seed, key.Ed25519[:32])
	assert.Equal(t, []byte(key.PublicKey().Ed25519), key.Ed25519[32:])
	assert.Equal(t, key, PrivKeyEd25519FromSeed(seed))

	assert.Panics(t, func() { PrivKeyEd25519FromSeed(nil) })
	assert.Panics(t, func() { PrivKeyEd25519FromSeed(seed[:31]) })
}

func TestCondition(t *testing.T) {
	a, b := GenPrivKeyEd25519().PublicKey(), GenPrivKeyEd25519().PublicKey()
	assert.Nil(t, a.Condition().Validate())
	if bytes.Equal(a.Condition(), b.Condition()) {
		t.Fatal("distinct keys share a condition")
	}
	assert.Equal(t, a.Condition().Address(), a.Address())

	raw, err := a.Marshal()
	assert.Nil(t, err)
	var loaded PublicKey
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, a.Address(), loaded.Address())

	var empty PublicKey
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
}
