package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// Indexer computes the index value of an object. A nil value leaves the
// object out of the index.
type Indexer func(Object) ([]byte, error)

// index maps an indexed value stored under "_i.<name>:<value>" to a primary
// key (unique) or to a keySet.
type index struct {
	prefix []byte
	name   string
	value  Indexer
	unique bool
	dbKey  func([]byte) []byte
}

var _ govlock.QueryHandler = index{}

func newIndex(name string, indexer Indexer, unique bool, dbKey func([]byte) []byte) index {
	return index{
		prefix: []byte("_i." + name + ":"),
		name:   name,
		value:  indexer,
		unique: unique,
		dbKey:  dbKey,
	}
}

func (i index) entry(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

// update moves the primary key of an object from the entry of its previous
// value to the entry of its next value. A nil prev inserts and a nil next
// removes.
func (i index) update(db govlock.KVStore, prev, next Object) error {
	var (
		from, to []byte
		err      error
		pk       []byte
	)
	if prev != nil {
		pk = prev.Key()
		if from, err = i.value(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if pk != nil && !bytes.Equal(pk, next.Key()) {
			return errors.Wrap(errors.ErrImmutable, "primary key")
		}
		pk = next.Key()
		if to, err = i.value(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(from, to) {
		return nil
	}
	if from != nil {
		if err := i.remove(db, from, pk); err != nil {
			return err
		}
	}
	if to != nil {
		return i.insert(db, to, pk)
	}
	return nil
}

func (i index) insert(db govlock.KVStore, value, pk []byte) error {
	key := i.entry(value)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if raw != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(key, pk)
	}
	set, err := loadKeySet(raw)
	if err != nil {
		return err
	}
	n := sort.Search(len(set.Keys), func(j int) bool { return bytes.Compare(set.Keys[j], pk) >= 0 })
	if n < len(set.Keys) && bytes.Equal(set.Keys[n], pk) {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	set.Keys = append(set.Keys, nil)
	copy(set.Keys[n+1:], set.Keys[n:])
	set.Keys[n] = pk
	return storeKeySet(db, key, set)
}

func (i index) remove(db govlock.KVStore, value, pk []byte) error {
	key := i.entry(value)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
		}
		return db.Delete(key)
	}
	set, err := loadKeySet(raw)
	if err != nil {
		return err
	}
	for n, k := range set.Keys {
		if bytes.Equal(k, pk) {
			set.Keys = append(set.Keys[:n], set.Keys[n+1:]...)
			if len(set.Keys) == 0 {
				return db.Delete(key)
			}
			return storeKeySet(db, key, set)
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
}

// keys returns the primary keys of all objects with given value.
func (i index) keys(db govlock.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.entry(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	set, err := loadKeySet(raw)
	if err != nil {
		return nil, err
	}
	return set.Keys, nil
}

// Query returns the models referenced by an index value (key mode) or by
// all values starting with given prefix (prefix mode).
func (i index) Query(db govlock.ReadOnlyKVStore, mod string, data []byte) ([]govlock.Model, error) {
	var keys [][]byte
	switch mod {
	case govlock.KeyQueryMod:
		found, err := i.keys(db, data)
		if err != nil {
			return nil, err
		}
		keys = found
	case govlock.PrefixQueryMod:
		entries, err := queryPrefix(db, i.entry(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if i.unique {
				keys = append(keys, e.Value)
				continue
			}
			set, err := loadKeySet(e.Value)
			if err != nil {
				return nil, err
			}
			keys = append(keys, set.Keys...)
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
	}

	models := make([]govlock.Model, 0, len(keys))
	for _, k := range keys {
		key := i.dbKey(k)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		models = append(models, govlock.Pair(key, value))
	}
	return models, nil
}

func loadKeySet(raw []byte) (*keySet, error) {
	var set keySet
	if raw == nil {
		return &set, nil
	}
	if err := set.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "index entry: %s", err)
	}
	return &set, nil
}

func storeKeySet(db govlock.KVStore, key []byte, set *keySet) error {
	raw, err := set.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
