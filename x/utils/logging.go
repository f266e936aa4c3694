package utils

import (
	"time"

	"github.com/iov-one/govlock"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one entry per processed transaction to the context logger.
// Failures are logged as errors. Successful checks are logged at debug
// level and successful deliveries at info level.
type Logging struct{}

var _ govlock.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Checker) (*govlock.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("check failed", "err", err)
	default:
		logger.Debug("check", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx, next govlock.Deliverer) (*govlock.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		logger.Error("deliver failed", "err", err)
	default:
		logger.Info("deliver", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx govlock.Context, tx govlock.Tx, start time.Time) log.Logger {
	logger := govlock.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if tx == nil {
		return logger
	}
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		logger = logger.With("path", msg.Path())
	}
	if t, ok := tx.(govlock.TargetedTx); ok && len(t.GetTarget()) != 0 {
		logger = logger.With("contract", t.GetTarget())
	}
	return logger
}
