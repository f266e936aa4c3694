package weavetest

import (
	"context"
	"time"

	"github.com/iov-one/govlock"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ChainID is used by all contexts created by this package.
const ChainID = "test-chain"

// BlockContext returns a context that is prepared the same way the
// application prepares it for processing a block of given height and time.
func BlockContext(height int64, now time.Time) govlock.Context {
	ctx := context.Background()
	ctx = govlock.WithHeader(ctx, abci.Header{
		ChainID: ChainID,
		Height:  height,
		Time:    now,
	})
	ctx = govlock.WithHeight(ctx, height)
	ctx = govlock.WithChainID(ctx, ChainID)
	return ctx
}
