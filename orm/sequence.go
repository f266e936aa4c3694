package orm

import (
	"encoding/binary"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// Sequence is a counter stored under "_s.<bucket>:<name>". Its values are
// encoded as 8 byte big endian, so they sort like the numbers they encode.
type Sequence struct {
	key []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// NextInt increments the counter and returns the new value. The first value
// is 1.
func (s Sequence) NextInt(db govlock.KVStore) (int64, error) {
	n, err := s.current(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, err
	}
	return n, nil
}

// NextVal is NextInt returning the encoded value.
func (s Sequence) NextVal(db govlock.KVStore) ([]byte, error) {
	n, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(n), nil
}

// Latest returns the value most recently handed out, zero if none was.
func (s Sequence) Latest(db govlock.ReadOnlyKVStore) (int64, []byte, error) {
	n, err := s.current(db)
	if err != nil {
		return 0, nil, err
	}
	return n, EncodeSequence(n), nil
}

func (s Sequence) current(db govlock.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw)
}

// EncodeSequence returns the 8 byte big endian form of a sequence value.
func EncodeSequence(n int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return b
}

// DecodeSequence reads an encoded sequence value. Nil decodes to zero.
func DecodeSequence(b []byte) (int64, error) {
	switch len(b) {
	case 0:
		if b == nil {
			return 0, nil
		}
		return 0, errors.Wrap(errors.ErrEmpty, "sequence")
	case 8:
		return int64(binary.BigEndian.Uint64(b)), nil
	}
	return 0, errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(b))
}

// IDGenBucket is a bucket creating objects under keys generated by one of
// its sequences.
type IDGenBucket struct {
	Bucket
	seq Sequence
}

// WithSeqIDGenerator returns b keyed by the named sequence.
func WithSeqIDGenerator(b Bucket, seqName string) IDGenBucket {
	return IDGenBucket{Bucket: b, seq: b.Sequence(seqName)}
}

// Create saves data under the next sequence value.
func (b IDGenBucket) Create(db govlock.KVStore, data CloneableData) (Object, error) {
	id, err := b.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "id sequence")
	}
	obj := NewSimpleObj(id, data)
	return obj, b.Save(db, obj)
}
