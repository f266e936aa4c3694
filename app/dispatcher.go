package app

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// Dispatcher delivers messages to the contract they are addressed to.
//
// Top level transactions are routed using their target. Inner calls issued
// by modules through the Caller interface are decoded with the call registry
// and routed through the same router. No authorization happens here, that is
// the job of the handlers.
type Dispatcher struct {
	router *Router
	calls  *govlock.CallRegistry
}

var _ govlock.Handler = (*Dispatcher)(nil)
var _ govlock.Caller = (*Dispatcher)(nil)

// NewDispatcher returns a dispatcher routing through given router. The call
// registry must know every message that can be delivered as an inner call.
func NewDispatcher(router *Router, calls *govlock.CallRegistry) *Dispatcher {
	return &Dispatcher{router: router, calls: calls}
}

// Check routes the transaction to the contract it targets.
func (d *Dispatcher) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	ctx, err := withTarget(ctx, tx)
	if err != nil {
		return nil, err
	}
	return d.router.Check(ctx, db, tx)
}

// Deliver routes the transaction to the contract it targets.
func (d *Dispatcher) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	ctx, err := withTarget(ctx, tx)
	if err != nil {
		return nil, err
	}
	return d.router.Deliver(ctx, db, tx)
}

func withTarget(ctx govlock.Context, tx govlock.Tx) (govlock.Context, error) {
	ttx, ok := tx.(govlock.TargetedTx)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "transaction %T has no target", tx)
	}
	target := ttx.GetTarget()
	if err := target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target")
	}
	return govlock.WithContract(ctx, target), nil
}

// Call decodes the payload and delivers it to the target contract on behalf
// of the current contract. The call is nested one level deeper than the
// current one.
func (d *Dispatcher) Call(ctx govlock.Context, db govlock.KVStore, target govlock.Address, payload []byte) (*govlock.DeliverResult, error) {
	if err := target.Validate(); err != nil {
		return nil, errors.Wrap(err, "target")
	}
	ctx, err := govlock.WithCallDepth(ctx)
	if err != nil {
		return nil, err
	}
	msg, err := d.calls.Decode(payload)
	if err != nil {
		return nil, errors.Wrap(err, "decode call")
	}
	caller, _ := govlock.GetContract(ctx)
	ctx = govlock.WithLogInfo(ctx,
		"call", msg.Path(),
		"caller", caller,
		"target", target,
		"depth", govlock.GetCallDepth(ctx))
	ctx = govlock.WithContract(ctx, target)
	return d.router.Deliver(ctx, db, &callTx{msg: msg, target: target})
}

// callTx carries a decoded inner call through the router.
type callTx struct {
	msg    govlock.Msg
	target govlock.Address
}

var _ govlock.TargetedTx = (*callTx)(nil)

func (tx *callTx) GetMsg() (govlock.Msg, error) {
	return tx.msg, nil
}

func (tx *callTx) GetTarget() govlock.Address {
	return tx.target
}

func (tx *callTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *callTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "inner calls are never decoded")
}
