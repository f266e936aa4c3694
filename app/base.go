package app

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp routes CheckTx and DeliverTx through a handler on top of the
// state kept by StoreApp.
type BaseApp struct {
	*StoreApp
	decoder govlock.TxDecoder
	handler govlock.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder govlock.TxDecoder, handler govlock.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(raw, "deliver_tx")
	if err != nil {
		return govlock.DeliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return govlock.DeliverResponse(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(raw, "check_tx")
	if err != nil {
		return govlock.CheckResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return govlock.CheckResponse(res, err, b.debug)
}

// prepare decodes the transaction and builds the context it is processed
// in. A panicking decoder is reported as an error.
func (b BaseApp) prepare(raw []byte, call string) (tx govlock.Tx, ctx govlock.Context, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = govlock.WithLogInfo(b.BlockContext(), "call", call, "path", govlock.GetPath(tx))
	return tx, ctx, nil
}
