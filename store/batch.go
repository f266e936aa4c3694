package store

import "github.com/iov-one/govlock/errors"

// batch queues writes and applies them in order on Write. It is not atomic,
// use it only in front of in memory stores.
type batch struct {
	out SetDeleter
	ops []func(SetDeleter) error
}

var _ Batch = (*batch)(nil)

// NewBatch returns a batch applying its writes to out.
func NewBatch(out SetDeleter) Batch {
	return &batch{out: out}
}

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, func(out SetDeleter) error { return out.Set(key, value) })
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, func(out SetDeleter) error { return out.Delete(key) })
	return nil
}

func (b *batch) Write() error {
	for _, op := range b.ops {
		if err := op(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// empty is a store without data that ignores writes. It is the base layer
// of MemStore.
type empty struct{}

var _ KVStore = empty{}

func (empty) Get([]byte) ([]byte, error)                    { return nil, nil }
func (empty) Has([]byte) (bool, error)                      { return false, nil }
func (empty) Set(_, _ []byte) error                         { return nil }
func (empty) Delete([]byte) error                           { return nil }
func (empty) NewBatch() Batch                               { return NewBatch(empty{}) }
func (empty) Iterator(_, _ []byte) (Iterator, error)        { return exhausted{}, nil }
func (empty) ReverseIterator(_, _ []byte) (Iterator, error) { return exhausted{}, nil }

// exhausted is an iterator without elements.
type exhausted struct{}

func (exhausted) Valid() bool   { return false }
func (exhausted) Next() error   { return errors.Wrap(errors.ErrHuman, "iterator exhausted") }
func (exhausted) Key() []byte   { panic("iterator exhausted") }
func (exhausted) Value() []byte { panic("iterator exhausted") }
func (exhausted) Close()        {}
