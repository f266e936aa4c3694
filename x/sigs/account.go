package sigs

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/crypto"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/orm"
)

// maxSequence is the greatest nonce a javascript client can represent.
const maxSequence = 1<<53 - 1

var _ orm.CloneableData = (*Account)(nil)

func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if a.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	}
	if a.Sequence < 0 || a.Sequence > maxSequence {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

func (a *Account) Copy() orm.CloneableData {
	return &Account{
		Metadata: a.Metadata.Copy(),
		Pubkey:   a.Pubkey,
		Sequence: a.Sequence,
	}
}

// consume accepts a signature made for the current sequence and moves the
// account to the next one.
func (a *Account) consume(seq int64) error {
	if seq != a.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", a.Sequence, seq)
	}
	if a.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	a.Sequence++
	return nil
}

// AccountBucket stores an Account per key address.
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket returns a bucket that stores accounts.
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		Bucket: orm.NewBucket("sigs", orm.NewSimpleObj(nil, &Account{})),
	}
}

// Load returns the account of given key. A key that never signed yields a
// fresh account starting at sequence zero.
func (b AccountBucket) Load(db govlock.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*Account, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, errors.Wrap(err, "load account")
	}
	if obj == nil || obj.Value() == nil {
		return &Account{Metadata: &govlock.Metadata{Schema: 1}, Pubkey: pubkey}, nil
	}
	acc, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return acc, nil
}

// Store writes given account under its key address.
func (b AccountBucket) Store(db govlock.KVStore, acc *Account) error {
	return b.Save(db, orm.NewSimpleObj(acc.Pubkey.Address(), acc))
}

// NextSequence returns the sequence the next signature of given address must
// carry.
func NextSequence(db govlock.ReadOnlyKVStore, addr govlock.Address) (int64, error) {
	obj, err := NewAccountBucket().Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil || obj.Value() == nil {
		return 0, nil
	}
	return obj.Value().(*Account).Sequence, nil
}
