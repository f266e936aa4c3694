package weavetest

import "github.com/iov-one/govlock"

// calls counts the Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler is a govlock.Handler returning preset results. OnCheck and
// OnDeliver, when set, run against the store before the result is returned
// and abort the call with their error.
type Handler struct {
	calls

	CheckResult govlock.CheckResult
	CheckErr    error
	OnCheck     func(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) error

	DeliverResult govlock.DeliverResult
	DeliverErr    error
	OnDeliver     func(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) error
}

var _ govlock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	h.check++
	if err := run(h.OnCheck, ctx, db, tx, h.CheckErr); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	h.deliver++
	if err := run(h.OnDeliver, ctx, db, tx, h.DeliverErr); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, nil
}

func run(fn func(govlock.Context, govlock.KVStore, govlock.Tx) error, ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, preset error) error {
	if fn != nil {
		if err := fn(ctx, db, tx); err != nil {
			return err
		}
	}
	return preset
}

// Decorator is a govlock.Decorator that passes every call down the stack
// unless CheckErr or DeliverErr is set.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ govlock.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (*govlock.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (*govlock.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler that calls h through d.
func Decorate(h govlock.Handler, d govlock.Decorator) govlock.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h govlock.Handler
	d govlock.Decorator
}

func (x decorated) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}
