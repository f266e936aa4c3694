package govlock

import (
	"encoding/json"
)

// Handler processes the messages routed to it.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction in the mempool without applying it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer applies a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, for example to authenticate the
// transaction or to roll back its writes on failure.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// Initializer loads the state of an extension from the genesis file.
type Initializer interface {
	FromGenesis(opts Options, params GenesisParams, kv KVStore) error
}

// GenesisParams are the values of the genesis file outside of app_state.
type GenesisParams struct {
	ChainID string
	Time    UnixTime
}

// Options is the genesis app_state. Each extension reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}
