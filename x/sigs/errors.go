package sigs

import (
	"github.com/iov-one/govlock/errors"
)

// x/sigs reserves 20 ~ 29.

// ErrInvalidSequence is returned when the signature sequence does not
// match the one stored for the signer.
var ErrInvalidSequence = errors.RegisterWithParent(20, "invalid sequence", errors.ErrUnauthorized)
