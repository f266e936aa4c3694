package timelock

import (
	"github.com/iov-one/govlock/errors"
)

var (
	ErrNotSigner             = errors.RegisterWithParent(200, "caller is not a signer", errors.ErrUnauthorized)
	ErrInvalidProposalID     = errors.RegisterWithParent(201, "invalid proposal id", errors.ErrNotFound)
	ErrAlreadyApproved       = errors.RegisterWithParent(202, "already approved", errors.ErrDuplicate)
	ErrAlreadyExecuted       = errors.RegisterWithParent(203, "already executed", errors.ErrState)
	ErrCanceled              = errors.RegisterWithParent(204, "proposal canceled", errors.ErrState)
	ErrInsufficientApprovals = errors.RegisterWithParent(205, "insufficient approvals", errors.ErrState)
	ErrDelayNotElapsed       = errors.RegisterWithParent(206, "delay not elapsed", errors.ErrState)
	ErrExecutionFailed       = errors.RegisterWithParent(207, "execution failed", errors.ErrState)
)
