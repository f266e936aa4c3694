package upgrade

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/orm"
)

const (
	// BucketName is where governed contracts are stored.
	BucketName = "contracts"

	maxImplementationLength = 64
)

var _ orm.CloneableData = (*Contract)(nil)

// Validate ensures the contract state is consistent.
func (c *Contract) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Address", c.Address.Validate())
	errs = errors.AppendField(errs, "Timelock", c.Timelock.Validate())
	errs = errors.AppendField(errs, "Owner", validateOptional(c.Owner))
	errs = errors.AppendField(errs, "UpgradeAuthority", validateOptional(c.UpgradeAuthority))
	errs = errors.AppendField(errs, "PendingUpgradeRequester", validateOptional(c.PendingUpgradeRequester))
	if len(c.Implementation) > maxImplementationLength {
		errs = errors.AppendField(errs, "Implementation",
			errors.Wrapf(errors.ErrModel, "longer than %d bytes", maxImplementationLength))
	}
	return errs
}

func validateOptional(a govlock.Address) error {
	if a == nil {
		return nil
	}
	return a.Validate()
}

// Copy returns a deep copy of the contract.
func (c *Contract) Copy() orm.CloneableData {
	return &Contract{
		Metadata:                c.Metadata.Copy(),
		Address:                 cloneAddr(c.Address),
		Owner:                   cloneAddr(c.Owner),
		Timelock:                cloneAddr(c.Timelock),
		UpgradeAuthority:        cloneAddr(c.UpgradeAuthority),
		PendingUpgradeRequester: cloneAddr(c.PendingUpgradeRequester),
		Implementation:          append([]byte(nil), c.Implementation...),
		Version:                 c.Version,
	}
}

func cloneAddr(a govlock.Address) govlock.Address {
	if a == nil {
		return nil
	}
	return append(govlock.Address(nil), a...)
}

// ContractBucket stores governed contracts by their address.
type ContractBucket struct {
	orm.Bucket
}

// NewContractBucket returns a bucket for governed contracts.
func NewContractBucket() *ContractBucket {
	return &ContractBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Contract{})),
	}
}

// GetContract loads the contract with given address. ErrNotFound is returned
// for unknown addresses.
func (b *ContractBucket) GetContract(db govlock.ReadOnlyKVStore, addr govlock.Address) (*Contract, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "load contract")
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "contract %s", addr)
	}
	c, ok := obj.Value().(*Contract)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return c, nil
}

// Put saves the contract under its own address.
func (b *ContractBucket) Put(db govlock.KVStore, c *Contract) error {
	if err := b.Save(db, orm.NewSimpleObj(c.Address, c)); err != nil {
		return errors.Wrap(err, "save contract")
	}
	return nil
}
