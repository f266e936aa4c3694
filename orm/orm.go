/*
Package orm stores protobuf models in prefixed key spaces of a KVStore.

A Bucket holds a single model type under "<name>:<key>". Buckets may keep
secondary indexes, which map a value computed from the model to the keys of
all models producing it, and named sequences used to generate increasing
keys.
*/
package orm

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/x"
)

// ErrInvalidIndex is returned when a bucket has no index of requested name.
var ErrInvalidIndex = errors.Register(100, "invalid index")

// Object is a model together with the key it is stored under.
type Object interface {
	x.Validater
	Cloneable
	Key() []byte
	SetKey([]byte)
	Value() govlock.Persistent
}

// Cloneable creates an empty object of the same kind, used to load models.
type Cloneable interface {
	Clone() Object
}

// CloneableData is a model that can be stored in a SimpleObj.
type CloneableData interface {
	x.Validater
	govlock.Persistent
	Copy() CloneableData
}

// SimpleObj is an Object holding a CloneableData.
type SimpleObj struct {
	key   []byte
	value CloneableData
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value CloneableData) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o *SimpleObj) Key() []byte               { return o.key }
func (o *SimpleObj) SetKey(key []byte)         { o.key = key }
func (o *SimpleObj) Value() govlock.Persistent { return o.value }

// Validate requires a key and a value and validates the value.
func (o *SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

func (o *SimpleObj) Clone() Object {
	c := &SimpleObj{}
	if o.value != nil {
		c.value = o.value.Copy()
	}
	if len(o.key) != 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}

// prefixRange returns the iterator range of all keys starting with prefix.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}

// queryPrefix returns all models whose key starts with prefix.
func queryPrefix(db govlock.ReadOnlyKVStore, prefix []byte) ([]govlock.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var models []govlock.Model
	for it.Valid() {
		models = append(models, govlock.Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return models, nil
}
