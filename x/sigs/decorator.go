/*
Package sigs verifies ed25519 signatures of transactions and keeps a
sequence per signing key, so a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// gasPerSignature is charged on check for every verified signature.
const gasPerSignature = 500

// RegisterQuery exposes accounts under "/auth".
func RegisterQuery(qr govlock.QueryRouter) {
	NewAccountBucket().Register("auth", qr)
}

// Decorator authenticates signed transactions. Every signed transaction must
// carry at least one valid signature. Signers are available down the stack
// through Authenticate.
type Decorator struct{}

var _ govlock.Decorator = Decorator{}

// NewDecorator returns the signature verifying decorator.
func NewDecorator() Decorator {
	return Decorator{}
}

func (Decorator) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (*govlock.CheckResult, error) {
	ctx, n, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(n * gasPerSignature)
	return res, nil
}

func (Decorator) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (*govlock.DeliverResult, error) {
	ctx, _, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate verifies the signatures of a signed transaction and returns
// the context carrying the signers. Unsigned transaction types pass
// unchanged.
func authenticate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (govlock.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, govlock.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
