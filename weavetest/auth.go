package weavetest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/iov-one/govlock"
)

// Auth authenticates a fixed set of conditions. Signer, when set, is
// reported first.
type Auth struct {
	Signer  govlock.Condition
	Signers []govlock.Condition
}

func (a *Auth) GetConditions(govlock.Context) []govlock.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]govlock.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx govlock.Context, addr govlock.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
// Two instances with different keys do not see each other's conditions.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

// SetConditions returns a context authenticating given conditions.
func (a *CtxAuth) SetConditions(ctx govlock.Context, conds ...govlock.Condition) govlock.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx govlock.Context) []govlock.Condition {
	switch v := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []govlock.Condition:
		return v
	default:
		panic(fmt.Sprintf("unexpected %T stored under %q", v, a.Key))
	}
}

func (a *CtxAuth) HasAddress(ctx govlock.Context, addr govlock.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

func containsAddress(conds []govlock.Condition, addr govlock.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

var condCounter uint64

// NewCondition returns a condition distinct from every condition returned
// before.
func NewCondition() govlock.Condition {
	n := atomic.AddUint64(&condCounter, 1)
	return govlock.NewCondition("test", "mock", []byte(fmt.Sprintf("cond-%d", n)))
}
