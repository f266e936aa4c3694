package timelock

import (
	"context"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/x"
)

type contextKey int

const (
	// private type creates an interface key for Context that cannot be accessed by any other package
	contextKeyTimelock contextKey = iota
)

// Condition returns the condition of the timelock contract. It is
// authenticated while a proposal call is delivered.
func Condition() govlock.Condition {
	return govlock.NewCondition("timelock", "contract", []byte("multisig"))
}

// Address returns the address of the timelock contract.
func Address() govlock.Address {
	return Condition().Address()
}

func withTimelock(ctx govlock.Context) govlock.Context {
	return context.WithValue(ctx, contextKeyTimelock, true)
}

// Authenticate authenticates the timelock contract while it calls a
// proposal target.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the timelock condition if set on this context.
func (Authenticate) GetConditions(ctx govlock.Context) []govlock.Condition {
	if on, _ := ctx.Value(contextKeyTimelock).(bool); on {
		return []govlock.Condition{Condition()}
	}
	return nil
}

// HasAddress returns true iff this address is in GetConditions.
func (a Authenticate) HasAddress(ctx govlock.Context, addr govlock.Address) bool {
	return x.HasAddress(ctx, a, addr)
}
