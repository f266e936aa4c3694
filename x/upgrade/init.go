package upgrade

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

// GenesisContract is the genesis declaration of a governed contract.
type GenesisContract struct {
	Address        govlock.Address `json:"address"`
	Owner          govlock.Address `json:"owner"`
	Timelock       govlock.Address `json:"timelock"`
	Implementation []byte          `json:"implementation"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ govlock.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial contracts info from genesis and save it in
// the database.
func (*Initializer) FromGenesis(opts govlock.Options, params govlock.GenesisParams, db govlock.KVStore) error {
	var conf struct {
		Contracts []GenesisContract `json:"contracts"`
	}
	if err := opts.ReadOptions("upgrade", &conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot load upgrade genesis: %s", err)
	}

	bucket := NewContractBucket()
	for i, gc := range conf.Contracts {
		if err := Register(db, bucket, gc); err != nil {
			return errors.Wrapf(err, "contract #%d", i)
		}
	}
	return nil
}

// Register creates a governed contract record. It fails if a contract with
// the same address already exists.
func Register(db govlock.KVStore, bucket *ContractBucket, gc GenesisContract) error {
	switch _, err := bucket.GetContract(db, gc.Address); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "contract %s", gc.Address)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	c := &Contract{
		Metadata:       &govlock.Metadata{Schema: 1},
		Address:        gc.Address,
		Owner:          gc.Owner,
		Timelock:       gc.Timelock,
		Implementation: gc.Implementation,
		Version:        1,
	}
	return bucket.Put(db, c)
}
