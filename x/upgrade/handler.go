package upgrade

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/x"
	"github.com/iov-one/govlock/x/eventlog"
)

const (
	requestCost = 0
	grantCost   = 0
	upgradeCost = 0
)

const tagContract = "contract"

// RegisterQuery registers contract buckets for querying.
func RegisterQuery(qr govlock.QueryRouter) {
	NewContractBucket().Register("contracts", qr)
}

// RegisterRoutes registers handlers for governed contract messages.
func RegisterRoutes(r govlock.Registry, auth x.Authenticator) {
	bucket := NewContractBucket()
	r.Handle(pathRequestUpgradePermissionMsg, &RequestUpgradePermissionHandler{auth: auth, bucket: bucket})
	r.Handle(pathGrantUpgradeAuthorityMsg, &GrantUpgradeAuthorityHandler{auth: auth, bucket: bucket})
	r.Handle(pathUpgradeImplementationMsg, &UpgradeImplementationHandler{auth: auth, bucket: bucket})
}

// loadContract returns the contract the message is addressed to.
func loadContract(ctx govlock.Context, db govlock.KVStore, b *ContractBucket) (*Contract, error) {
	addr, ok := govlock.GetContract(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "message is not addressed to a contract")
	}
	return b.GetContract(db, addr)
}

func contractTag(res *govlock.DeliverResult, c *Contract) {
	res.AddTag([]byte(tagContract), []byte(c.Address.String()))
}

// RequestUpgradePermissionHandler encodes the call that grants the upgrade
// authority to the requester. Only the owner can request it.
type RequestUpgradePermissionHandler struct {
	auth   x.Authenticator
	bucket *ContractBucket
}

var _ govlock.Handler = (*RequestUpgradePermissionHandler)(nil)

func (h RequestUpgradePermissionHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	_, _, payload, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &govlock.CheckResult{Data: payload, GasAllocated: requestCost}, nil
}

func (h RequestUpgradePermissionHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	contract, requester, payload, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contract.PendingUpgradeRequester = requester
	if err := h.bucket.Put(db, contract); err != nil {
		return nil, err
	}
	if _, err := eventlog.Emit(ctx, db, &UpgradePermissionRequestedEvent{Requester: requester}); err != nil {
		return nil, err
	}
	res := &govlock.DeliverResult{Data: payload}
	contractTag(res, contract)
	return res, nil
}

func (h RequestUpgradePermissionHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*Contract, govlock.Address, []byte, error) {
	var msg RequestUpgradePermissionMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := loadContract(ctx, db, h.bucket)
	if err != nil {
		return nil, nil, nil, err
	}
	if contract.Owner == nil || !h.auth.HasAddress(ctx, contract.Owner) {
		return nil, nil, nil, errors.Wrapf(ErrNotOwner, "contract %s", contract.Address)
	}
	requester := msg.Requester
	if requester == nil {
		requester = x.MainSigner(ctx, h.auth).Address()
	}
	payload, err := govlock.EncodeCall(&GrantUpgradeAuthorityMsg{
		Metadata:     &govlock.Metadata{Schema: 1},
		NewAuthority: requester,
	})
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "encode grant")
	}
	return contract, requester, payload, nil
}

// GrantUpgradeAuthorityHandler transfers the upgrade authority. It must be
// called by the contract timelock.
type GrantUpgradeAuthorityHandler struct {
	auth   x.Authenticator
	bucket *ContractBucket
}

var _ govlock.Handler = (*GrantUpgradeAuthorityHandler)(nil)

func (h GrantUpgradeAuthorityHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &govlock.CheckResult{GasAllocated: grantCost}, nil
}

func (h GrantUpgradeAuthorityHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contract.UpgradeAuthority = msg.NewAuthority
	contract.PendingUpgradeRequester = nil
	if err := h.bucket.Put(db, contract); err != nil {
		return nil, err
	}
	if _, err := eventlog.Emit(ctx, db, &UpgradeAuthorityGrantedEvent{NewAuthority: msg.NewAuthority}); err != nil {
		return nil, err
	}
	govlock.GetLogger(ctx).Info("upgrade authority granted",
		"module", "upgrade", "contract", contract.Address, "authority", msg.NewAuthority)
	res := &govlock.DeliverResult{}
	contractTag(res, contract)
	return res, nil
}

func (h GrantUpgradeAuthorityHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*GrantUpgradeAuthorityMsg, *Contract, error) {
	var msg GrantUpgradeAuthorityMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := loadContract(ctx, db, h.bucket)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, contract.Timelock) {
		return nil, nil, errors.Wrapf(ErrNotTimelock, "contract %s", contract.Address)
	}
	return &msg, contract, nil
}

// UpgradeImplementationHandler replaces the contract implementation. It must
// be called by the upgrade authority.
type UpgradeImplementationHandler struct {
	auth   x.Authenticator
	bucket *ContractBucket
}

var _ govlock.Handler = (*UpgradeImplementationHandler)(nil)

func (h UpgradeImplementationHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &govlock.CheckResult{GasAllocated: upgradeCost}, nil
}

func (h UpgradeImplementationHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	msg, contract, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	contract.Implementation = msg.Implementation
	contract.Version++
	if err := h.bucket.Put(db, contract); err != nil {
		return nil, err
	}
	event := &ContractUpgradedEvent{Implementation: contract.Implementation, Version: contract.Version}
	if _, err := eventlog.Emit(ctx, db, event); err != nil {
		return nil, err
	}
	res := &govlock.DeliverResult{}
	contractTag(res, contract)
	return res, nil
}

func (h UpgradeImplementationHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*UpgradeImplementationMsg, *Contract, error) {
	var msg UpgradeImplementationMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	contract, err := loadContract(ctx, db, h.bucket)
	if err != nil {
		return nil, nil, err
	}
	if contract.UpgradeAuthority == nil || !h.auth.HasAddress(ctx, contract.UpgradeAuthority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "upgrade authority signature required")
	}
	return &msg, contract, nil
}
