package iavl

import (
	"sync"

	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/store"
)

// rangeFunc walks a key range and calls visit for each pair until visit
// returns true.
type rangeFunc func(visit func(key, value []byte) bool)

// streamIterator consumes a range walk running in its own goroutine. The
// walk blocks on every pair until the iterator asks for the next one.
type streamIterator struct {
	pairs <-chan store.Model
	quit  chan struct{}
	stop  sync.Once

	cur   store.Model
	valid bool
}

var _ store.Iterator = (*streamIterator)(nil)

func newStreamIterator(walk rangeFunc) *streamIterator {
	pairs := make(chan store.Model)
	it := &streamIterator{pairs: pairs, quit: make(chan struct{})}
	go func() {
		defer close(pairs)
		walk(func(key, value []byte) bool {
			select {
			case pairs <- store.Model{Key: key, Value: value}:
				return false
			case <-it.quit:
				return true
			}
		})
	}()
	it.advance()
	return it
}

func (it *streamIterator) advance() {
	it.cur, it.valid = <-it.pairs
}

func (it *streamIterator) Next() error {
	if !it.valid {
		return errors.Wrap(errors.ErrHuman, "iterator exhausted")
	}
	it.advance()
	return nil
}

// Close releases the walking goroutine. Calling it again is a no-op.
func (it *streamIterator) Close() {
	it.stop.Do(func() { close(it.quit) })
	it.valid = false
}

func (it *streamIterator) Valid() bool { return it.valid }

func (it *streamIterator) Key() []byte {
	it.mustBeValid()
	return it.cur.Key
}

func (it *streamIterator) Value() []byte {
	it.mustBeValid()
	return it.cur.Value
}

func (it *streamIterator) mustBeValid() {
	if !it.valid {
		panic("iterator exhausted")
	}
}
