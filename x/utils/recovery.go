package utils

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// Recovery converts a panic down the stack into an ErrPanic error.
type Recovery struct{}

var _ govlock.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (res *govlock.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, db, tx)
	return res, err
}

func (Recovery) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (res *govlock.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, db, tx)
	return res, err
}
