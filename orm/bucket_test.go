package orm

import (
	"testing"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
	"github.com/iov-one/govlock/weavetest/assert"
)

func TestBucketNames(t *testing.T) {
	cases := map[string]bool{
		"signers":     true,
		"sig_ners":    true,
		"ab":          false,
		"Signers":     false,
		"signers1":    false,
		"longerthanx": false,
	}
	for name, valid := range cases {
		t.Run(name, func(t *testing.T) {
			create := func() { NewBucket(name, NewSimpleObj(nil, &signerModel{})) }
			if valid {
				create()
			} else {
				assert.Panics(t, create)
			}
		})
	}
}

func TestBucketStore(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("signers", NewSimpleObj(nil, &signerModel{}))

	obj, err := b.Get(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Nil(t, obj)

	assert.Nil(t, b.Save(db, signer("alice", "board", 2)))
	assert.IsErr(t, errors.ErrInput, b.Save(db, signer("bert", "board", -1)))
	assert.IsErr(t, errors.ErrEmpty, b.Save(db, signer("", "board", 1)))

	obj, err = b.Get(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("alice"), obj.Key())
	assert.Equal(t, &signerModel{Group: "board", Votes: 2}, obj.Value())

	// models live under the bucket prefix
	raw, err := db.Get([]byte("signers:alice"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("model not stored under the bucket prefix")
	}

	assert.Nil(t, b.Delete(db, []byte("alice")))
	obj, err = b.Get(db, []byte("alice"))
	assert.Nil(t, err)
	assert.Nil(t, obj)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("signers", NewSimpleObj(nil, &signerModel{}))
	for _, o := range []*SimpleObj{signer("alice", "a", 1), signer("anna", "a", 1), signer("bert", "b", 1)} {
		assert.Nil(t, b.Save(db, o))
	}

	cases := map[string]struct {
		mod      string
		data     string
		wantKeys []string
		wantErr  *errors.Error
	}{
		"by key":          {mod: govlock.KeyQueryMod, data: "anna", wantKeys: []string{"signers:anna"}},
		"missing key":     {mod: govlock.KeyQueryMod, data: "carl", wantKeys: nil},
		"by prefix":       {mod: govlock.PrefixQueryMod, data: "a", wantKeys: []string{"signers:alice", "signers:anna"}},
		"everything":      {mod: govlock.PrefixQueryMod, data: "", wantKeys: []string{"signers:alice", "signers:anna", "signers:bert"}},
		"unknown mode":    {mod: "range", wantErr: errors.ErrInput},
		"prefix too long": {mod: govlock.PrefixQueryMod, data: "alicex", wantKeys: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			models, err := b.Query(db, tc.mod, []byte(tc.data))
			assert.IsErr(t, tc.wantErr, err)
			var keys []string
			for _, m := range models {
				keys = append(keys, string(m.Key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestIDGenBucket(t *testing.T) {
	db := store.MemStore()
	b := WithSeqIDGenerator(NewBucket("signers", NewSimpleObj(nil, &signerModel{})), SeqID)

	first, err := b.Create(db, &signerModel{Group: "a"})
	assert.Nil(t, err)
	second, err := b.Create(db, &signerModel{Group: "b"})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), first.Key())
	assert.Equal(t, EncodeSequence(2), second.Key())

	_, err = b.Create(db, &signerModel{Votes: -1})
	assert.IsErr(t, errors.ErrInput, err)
}
