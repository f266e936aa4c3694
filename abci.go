package govlock

import (
	"fmt"

	"github.com/iov-one/govlock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful DeliverTx. Failures are
// reported as errors instead.
type DeliverResult struct {
	// Data is a machine readable return value, such as a proposal id.
	Data []byte
	Log  string
	// Tags are indexed by tendermint to search the transaction history.
	Tags    []common.KVPair
	GasUsed int64
}

func (d *DeliverResult) AddTag(key, value []byte) {
	d.Tags = append(d.Tags, common.KVPair{Key: key, Value: value})
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags, GasUsed: d.GasUsed}
}

// CheckResult is the outcome of a successful CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum amount of work the transaction may do.
	GasAllocated int64
	// GasPayment is what the transaction pays for its execution.
	GasPayment int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverResponse builds the DeliverTx response from a handler result.
// Outside of debug mode the error log is redacted.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err == nil {
		return res.ToABCI()
	}
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: fmt.Sprintf("cannot deliver tx: %s", log)}
}

// CheckResponse builds the CheckTx response from a handler result.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err == nil {
		return res.ToABCI()
	}
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: fmt.Sprintf("cannot check tx: %s", log)}
}

func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}
