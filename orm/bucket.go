package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// SeqID is the name of the sequence generating primary keys.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores models of a single type under a common key prefix. Embed it
// in a type safe wrapper of the model.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]index
}

var _ govlock.QueryHandler = Bucket{}

// NewBucket returns a bucket loading its models into clones of proto. It
// panics on an invalid name.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

// WithIndex returns a copy of the bucket maintaining an additional index.
// Indexer returns the index value of a model, nil values are not indexed. A
// unique index rejects a second model with the same value.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}
	indexes := make(map[string]index, len(b.indexes)+1)
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	indexes[name] = newIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	b.indexes = indexes
	return b
}

// Sequence returns the named sequence of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Register exposes the bucket under "/<name>" and every index under
// "/<name>/<index>". An empty name defaults to the bucket name.
func (b Bucket) Register(name string, r govlock.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
	for n, idx := range b.indexes {
		r.Register("/"+name+"/"+n, idx)
	}
}

// Query returns the model stored under a key or all models under a key
// prefix.
func (b Bucket) Query(db govlock.ReadOnlyKVStore, mod string, data []byte) ([]govlock.Model, error) {
	switch mod {
	case govlock.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []govlock.Model{govlock.Pair(key, value)}, nil
	case govlock.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
}

// DBKey returns the store key of given model key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get loads the object stored under key. A missing object is not an error,
// nil is returned instead.
func (b Bucket) Get(db govlock.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "unmarshal %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the object, updating all indexes.
func (b Bucket) Save(db govlock.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrState, "marshal %s: %s", b.name, err)
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object stored under key together with its index
// entries.
func (b Bucket) Delete(db govlock.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) reindex(db govlock.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.update(db, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// GetIndexed returns all objects with given value of the named index, in
// key order.
func (b Bucket) GetIndexed(db govlock.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	keys, err := idx.keys(db, value)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	objs := make([]Object, len(keys))
	for i, k := range keys {
		if objs[i], err = b.Get(db, k); err != nil {
			return nil, err
		}
	}
	return objs, nil
}
