package timelock

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/gconf"
	"github.com/iov-one/govlock/x/upgrade"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ govlock.Initializer = (*Initializer)(nil)

// FromGenesis stores the signer set from the "conf.timelock" genesis section
// and registers the timelock as a governed contract of itself.
func (*Initializer) FromGenesis(opts govlock.Options, params govlock.GenesisParams, db govlock.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, ConfigPackage, &conf); err != nil {
		return errors.Wrap(err, "init configuration")
	}
	self := upgrade.GenesisContract{
		Address:  Address(),
		Timelock: Address(),
	}
	if err := upgrade.Register(db, upgrade.NewContractBucket(), self); err != nil {
		return errors.Wrap(err, "register timelock contract")
	}
	return nil
}
