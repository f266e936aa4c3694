package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestDeriveEd25519(t *testing.T) {
	seed, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")

	cases := map[string]struct {
		seed    []byte
		path    string
		wantKey string
		wantErr *errors.Error
	}{
		"first hardened child": {
			seed:    seed,
			path:    "m/0'",
			wantKey: "68e0fe46dfb67e368c75379acec591dad19df3cde26e63b93a8e704f1dade7a3",
		},
		"non hardened path": {
			seed:    seed,
			path:    "m/44/234",
			wantErr: errors.ErrInput,
		},
		"malformed path": {
			seed:    seed,
			path:    "44'/234'",
			wantErr: errors.ErrInput,
		},
		"missing seed": {
			path:    DefaultPath,
			wantErr: errors.ErrEmpty,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			key, err := DeriveEd25519(tc.seed, tc.path)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantKey, hex.EncodeToString(key.Ed25519[:32]))
		})
	}
}

func TestDeriveEd25519Deterministic(t *testing.T) {
	seed := []byte("a master seed used for development chains only")
	a, err := DeriveEd25519(seed, DefaultPath)
	assert.Nil(t, err)
	b, err := DeriveEd25519(seed, DefaultPath)
	assert.Nil(t, err)
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())

	other, err := DeriveEd25519(seed, "m/44'/234'/1'")
	assert.Nil(t, err)
	if a.PublicKey().Address().Equals(other.PublicKey().Address()) {
		t.Fatal("different paths derived the same key")
	}
}
