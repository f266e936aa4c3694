package store

import (
	"bytes"

	"github.com/iov-one/govlock/errors"
)

// mergeIterator walks the cached entries and the parent iterator together.
// On equal keys the cached entry wins, deleted entries hide the key.
type mergeIterator struct {
	cached  []*entry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []*entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{cached: cached, parent: parent, reverse: reverse}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// cmp compares the heads of both sources in iteration order. Negative means
// the cached entry comes first.
func (it *mergeIterator) cmp() int {
	switch {
	case len(it.cached) == 0:
		return 1
	case !it.parent.Valid():
		return -1
	}
	c := bytes.Compare(it.cached[0].key, it.parent.Key())
	if it.reverse {
		return -c
	}
	return c
}

// advance moves past the current key in both sources.
func (it *mergeIterator) advance() error {
	c := it.cmp()
	if c <= 0 {
		it.cached = it.cached[1:]
	}
	if c >= 0 {
		return it.parent.Next()
	}
	return nil
}

func (it *mergeIterator) skipDeleted() error {
	for len(it.cached) != 0 && it.cached[0].deleted && it.cmp() <= 0 {
		if err := it.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (it *mergeIterator) Valid() bool {
	return len(it.cached) != 0 || it.parent.Valid()
}

func (it *mergeIterator) Next() error {
	if !it.Valid() {
		return errors.Wrap(errors.ErrHuman, "iterator exhausted")
	}
	if err := it.advance(); err != nil {
		return err
	}
	return it.skipDeleted()
}

func (it *mergeIterator) Key() []byte {
	if !it.Valid() {
		panic("iterator exhausted")
	}
	if it.cmp() <= 0 {
		return it.cached[0].key
	}
	return it.parent.Key()
}

func (it *mergeIterator) Value() []byte {
	if !it.Valid() {
		panic("iterator exhausted")
	}
	if it.cmp() <= 0 {
		return it.cached[0].value
	}
	return it.parent.Value()
}

func (it *mergeIterator) Close() {
	it.parent.Close()
	it.cached = nil
}
