package utils

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

type phase uint8

const (
	onCheck phase = 1 << iota
	onDeliver
)

// Savepoint runs the rest of the stack against a cache of the store. The
// cache is written only when the stack succeeds, so a failed transaction
// leaves no partial state behind. A zero Savepoint is a pass through, use
// OnCheck and OnDeliver to enable it.
type Savepoint struct {
	phases phase
}

var _ govlock.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.phases |= onCheck
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.phases |= onDeliver
	return s
}

func (s Savepoint) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (*govlock.CheckResult, error) {
	var res *govlock.CheckResult
	err := s.isolate(onCheck, db, func(db govlock.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (*govlock.DeliverResult, error) {
	var res *govlock.DeliverResult
	err := s.isolate(onDeliver, db, func(db govlock.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) isolate(p phase, db govlock.KVStore, fn func(govlock.KVStore) error) error {
	cacheable, ok := db.(govlock.CacheableKVStore)
	if s.phases&p == 0 || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
