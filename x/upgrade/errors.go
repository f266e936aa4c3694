package upgrade

import (
	"github.com/iov-one/govlock/errors"
)

var (
	// ErrNotOwner is returned when an upgrade permission is requested by
	// anyone but the contract owner.
	ErrNotOwner = errors.RegisterWithParent(220, "caller is not the owner", errors.ErrUnauthorized)
	// ErrNotTimelock is returned when the upgrade authority is granted by
	// anyone but the contract timelock.
	ErrNotTimelock = errors.RegisterWithParent(221, "caller is not the timelock", errors.ErrUnauthorized)
)
