package sigs

import (
	"context"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/x"
)

type ctxKey int

const signersKey ctxKey = 1

func withSigners(ctx govlock.Context, signers []govlock.Condition) govlock.Context {
	return context.WithValue(ctx, signersKey, signers)
}

// Authenticate reports the keys that signed the current transaction.
// Signatures authenticate the top level message only. An inner call made
// while processing it sees no signers.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx govlock.Context) []govlock.Condition {
	if govlock.GetCallDepth(ctx) > 0 {
		return nil
	}
	signers, _ := ctx.Value(signersKey).([]govlock.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx govlock.Context, addr govlock.Address) bool {
	return x.HasAddress(ctx, a, addr)
}
