package x

import (
	"github.com/iov-one/govlock"
)

// Authenticator reports the conditions a transaction has proven. Handlers
// take one in their constructor so that the source of authentication can
// be swapped.
type Authenticator interface {
	GetConditions(govlock.Context) []govlock.Condition
	HasAddress(govlock.Context, govlock.Address) bool
}

// MultiAuth authenticates everything any of its members authenticates.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth combines authenticators. The order decides which condition is
// reported as the main signer.
func ChainAuth(auths ...Authenticator) MultiAuth {
	return MultiAuth(auths)
}

// GetConditions returns the conditions of all members in order, each
// reported once.
func (m MultiAuth) GetConditions(ctx govlock.Context) []govlock.Condition {
	var conds []govlock.Condition
	for _, a := range m {
		for _, c := range a.GetConditions(ctx) {
			if !containsCondition(conds, c) {
				conds = append(conds, c)
			}
		}
	}
	return conds
}

func (m MultiAuth) HasAddress(ctx govlock.Context, addr govlock.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated condition or nil.
func MainSigner(ctx govlock.Context, auth Authenticator) govlock.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// HasAddress reports whether any condition of the authenticator resolves to
// given address.
func HasAddress(ctx govlock.Context, auth Authenticator, addr govlock.Address) bool {
	for _, c := range auth.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

func containsCondition(conds []govlock.Condition, c govlock.Condition) bool {
	for _, have := range conds {
		if have.Equals(c) {
			return true
		}
	}
	return false
}
