package app

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...govlock.Initializer) govlock.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []govlock.Initializer
}

var _ govlock.Initializer = chainInitializer{}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts govlock.Options, params govlock.GenesisParams, kv govlock.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, params, kv); err != nil {
			return errors.Wrapf(err, "%T", i)
		}
	}
	return nil
}

// _wv: is a prefix for framework internal data
const chainIDKey = "_wv:chainID"

// loadChainID returns the chain id stored if any
func loadChainID(kv govlock.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv govlock.KVStore, chainID string) error {
	if !govlock.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrImmutable, "chain id set at genesis")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
