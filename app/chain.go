package app

import (
	"reflect"

	"github.com/iov-one/govlock"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(app.NewDispatcher(router, calls))
type Decorators []govlock.Decorator

// ChainDecorators starts a stack. The first decorator runs outermost. Nil
// decorators are skipped.
func ChainDecorators(ds ...govlock.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new stack with ds added below the existing decorators.
func (d Decorators) Chain(ds ...govlock.Decorator) Decorators {
	stack := append(Decorators(nil), d...)
	for _, dec := range ds {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		stack = append(stack, dec)
	}
	return stack
}

// WithHandler returns a handler running h inside all decorators.
func (d Decorators) WithHandler(h govlock.Handler) govlock.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = decorated{dec: d[i], next: h}
	}
	return h
}

type decorated struct {
	dec  govlock.Decorator
	next govlock.Handler
}

func (s decorated) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
