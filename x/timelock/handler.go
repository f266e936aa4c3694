package timelock

import (
	"fmt"
	"time"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/gconf"
	"github.com/iov-one/govlock/x"
	"github.com/iov-one/govlock/x/eventlog"
	"github.com/iov-one/govlock/x/upgrade"
)

const (
	proposalCost = 0
	approveCost  = 0
	executeCost  = 0
	cancelCost   = 0
)

const (
	tagProposal = "proposal"
	tagProposer = "proposer"
)

// RegisterQuery registers proposals and the configuration for querying.
func RegisterQuery(qr govlock.QueryRouter) {
	NewProposalBucket().Register("proposals", qr)
	qr.Register("/timelock/config", gconf.NewQueryHandler(ConfigPackage))
}

// RegisterRoutes registers handlers for timelock message processing. Caller
// is used to deliver the calls of executed proposals.
func RegisterRoutes(r govlock.Registry, auth x.Authenticator, caller govlock.Caller) {
	bucket := NewProposalBucket()
	r.Handle(pathCreateProposalMsg, &CreateProposalHandler{auth: auth, bucket: bucket})
	r.Handle(pathCreateUpgradeContractProposalMsg, &CreateUpgradeContractProposalHandler{auth: auth, bucket: bucket})
	r.Handle(pathApproveProposalMsg, &ApproveProposalHandler{auth: auth, bucket: bucket})
	r.Handle(pathExecuteProposalMsg, &ExecuteProposalHandler{auth: auth, bucket: bucket, caller: caller})
	r.Handle(pathCancelProposalMsg, &CancelProposalHandler{auth: auth, bucket: bucket})
}

// prepare ensures the message is addressed to the timelock and loads the
// configuration together with the block time.
func prepare(ctx govlock.Context, db govlock.ReadOnlyKVStore) (*Configuration, time.Time, error) {
	if addr, ok := govlock.GetContract(ctx); !ok || !addr.Equals(Address()) {
		return nil, time.Time{}, errors.Wrapf(errors.ErrInput, "message must be addressed to the timelock %s", Address())
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, time.Time{}, err
	}
	now, err := govlock.BlockTime(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return conf, now, nil
}

// actingSigner returns the address acting on behalf of the signer set. An
// explicitly declared actor must be authenticated, otherwise the main signer
// is used.
func actingSigner(ctx govlock.Context, auth x.Authenticator, conf *Configuration, declared govlock.Address) (govlock.Address, error) {
	actor := declared
	if actor == nil {
		main := x.MainSigner(ctx, auth)
		if main == nil {
			return nil, errors.Wrap(ErrNotSigner, "no signature")
		}
		actor = main.Address()
	} else if !auth.HasAddress(ctx, actor) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", actor)
	}
	if !conf.IsSigner(actor) {
		return nil, errors.Wrapf(ErrNotSigner, "%s", actor)
	}
	return actor, nil
}

func proposalTag(res *govlock.DeliverResult, id uint64) {
	res.AddTag([]byte(tagProposal), []byte(fmt.Sprintf("%X", ProposalKey(id))))
}

func proposalLogger(ctx govlock.Context, p *Proposal) govlock.Context {
	return govlock.WithLogInfo(ctx, "module", "timelock", "proposal", p.ID, "target", p.Target)
}

// createProposal stores a new open proposal and emits its creation event.
func createProposal(ctx govlock.Context, db govlock.KVStore, b *ProposalBucket, proposer, target govlock.Address, payload []byte, now time.Time) (*govlock.DeliverResult, error) {
	p := &Proposal{
		Metadata:  &govlock.Metadata{Schema: 1},
		Proposer:  proposer,
		Target:    target,
		Payload:   payload,
		CreatedAt: govlock.AsUnixTime(now),
		Status:    ProposalStatusOpen,
	}
	if err := b.Create(db, p); err != nil {
		return nil, err
	}
	event := &ProposalCreatedEvent{
		ID:        p.ID,
		Target:    p.Target,
		Payload:   p.Payload,
		CreatedAt: p.CreatedAt,
	}
	if _, err := eventlog.Emit(ctx, db, event); err != nil {
		return nil, err
	}
	govlock.GetLogger(proposalLogger(ctx, p)).Info("proposal created", "proposer", proposer)

	res := &govlock.DeliverResult{Data: ProposalKey(p.ID)}
	proposalTag(res, p.ID)
	res.AddTag([]byte(tagProposer), []byte(proposer.String()))
	return res, nil
}

// nextProposalID returns the id the next created proposal gets.
func nextProposalID(db govlock.ReadOnlyKVStore, b *ProposalBucket) ([]byte, error) {
	n, err := b.Count(db)
	if err != nil {
		return nil, err
	}
	return ProposalKey(n), nil
}

// CreateProposalHandler stores a new proposal created by a signer.
type CreateProposalHandler struct {
	auth   x.Authenticator
	bucket *ProposalBucket
}

var _ govlock.Handler = (*CreateProposalHandler)(nil)

func (h CreateProposalHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	id, err := nextProposalID(db, h.bucket)
	if err != nil {
		return nil, err
	}
	return &govlock.CheckResult{Data: id, GasAllocated: proposalCost}, nil
}

func (h CreateProposalHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	msg, proposer, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return createProposal(ctx, db, h.bucket, proposer, msg.Target, msg.Payload, now)
}

func (h CreateProposalHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*CreateProposalMsg, govlock.Address, time.Time, error) {
	var msg CreateProposalMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, time.Time{}, errors.Wrap(err, "load msg")
	}
	conf, now, err := prepare(ctx, db)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	proposer, err := actingSigner(ctx, h.auth, conf, msg.Proposer)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	return &msg, proposer, now, nil
}

// CreateUpgradeContractProposalHandler stores a proposal that grants the
// upgrade authority over the timelock contract itself.
type CreateUpgradeContractProposalHandler struct {
	auth   x.Authenticator
	bucket *ProposalBucket
}

var _ govlock.Handler = (*CreateUpgradeContractProposalHandler)(nil)

func (h CreateUpgradeContractProposalHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	id, err := nextProposalID(db, h.bucket)
	if err != nil {
		return nil, err
	}
	return &govlock.CheckResult{Data: id, GasAllocated: proposalCost}, nil
}

func (h CreateUpgradeContractProposalHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	payload, proposer, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return createProposal(ctx, db, h.bucket, proposer, Address(), payload, now)
}

func (h CreateUpgradeContractProposalHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) ([]byte, govlock.Address, time.Time, error) {
	var msg CreateUpgradeContractProposalMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, time.Time{}, errors.Wrap(err, "load msg")
	}
	conf, now, err := prepare(ctx, db)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	proposer, err := actingSigner(ctx, h.auth, conf, msg.Proposer)
	if err != nil {
		return nil, nil, time.Time{}, err
	}
	payload, err := govlock.EncodeCall(&upgrade.GrantUpgradeAuthorityMsg{
		Metadata:     &govlock.Metadata{Schema: 1},
		NewAuthority: msg.NewAuthority,
	})
	if err != nil {
		return nil, nil, time.Time{}, errors.Wrap(err, "encode grant")
	}
	return payload, proposer, now, nil
}

// ApproveProposalHandler records the approval of a signer.
type ApproveProposalHandler struct {
	auth   x.Authenticator
	bucket *ProposalBucket
}

var _ govlock.Handler = (*ApproveProposalHandler)(nil)

func (h ApproveProposalHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &govlock.CheckResult{GasAllocated: approveCost}, nil
}

func (h ApproveProposalHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	proposal, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	proposal.ApprovedBy = append(proposal.ApprovedBy, signer)
	if err := h.bucket.Update(db, proposal); err != nil {
		return nil, err
	}
	if _, err := eventlog.Emit(ctx, db, &ProposalApprovedEvent{ID: proposal.ID, Signer: signer}); err != nil {
		return nil, err
	}
	govlock.GetLogger(proposalLogger(ctx, proposal)).Debug("proposal approved",
		"signer", signer, "approvals", proposal.ApprovalCount())

	res := &govlock.DeliverResult{}
	proposalTag(res, proposal.ID)
	return res, nil
}

func (h ApproveProposalHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*Proposal, govlock.Address, error) {
	var msg ApproveProposalMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, _, err := prepare(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	signer, err := actingSigner(ctx, h.auth, conf, msg.Signer)
	if err != nil {
		return nil, nil, err
	}
	proposal, err := h.bucket.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, nil, err
	}
	if proposal.HasApproved(signer) {
		return nil, nil, errors.Wrapf(ErrAlreadyApproved, "proposal %d by %s", proposal.ID, signer)
	}
	switch proposal.Status {
	case ProposalStatusExecuted:
		return nil, nil, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", proposal.ID)
	case ProposalStatusCanceled:
		return nil, nil, errors.Wrapf(ErrCanceled, "proposal %d", proposal.ID)
	}
	return proposal, signer, nil
}

// ExecuteProposalHandler delivers the call of a proposal that collected
// enough approvals and waited out the delay.
type ExecuteProposalHandler struct {
	auth   x.Authenticator
	bucket *ProposalBucket
	caller govlock.Caller
}

var _ govlock.Handler = (*ExecuteProposalHandler)(nil)

func (h ExecuteProposalHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &govlock.CheckResult{GasAllocated: executeCost}, nil
}

// Deliver marks the proposal executed before delivering its call. Both happen
// in a cache of the store that is written only if the call succeeds.
func (h ExecuteProposalHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	proposal, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	cstore, ok := db.(govlock.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "execution requires a cacheable store")
	}
	ctx = proposalLogger(ctx, proposal)
	log := govlock.GetLogger(ctx)

	cache := cstore.CacheWrap()
	if err := proposal.transition(ProposalStatusExecuted, govlock.AsUnixTime(now)); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := h.bucket.Update(cache, proposal); err != nil {
		cache.Discard()
		return nil, err
	}

	res, err := h.caller.Call(withTimelock(ctx), cache, proposal.Target, proposal.Payload)
	if err != nil {
		cache.Discard()
		log.Info("proposal execution failed", "err", err)
		return nil, errors.Wrapf(ErrExecutionFailed, "proposal %d: %s", proposal.ID, err)
	}

	event := &ProposalExecutedEvent{
		ID:         proposal.ID,
		Success:    true,
		ReturnData: res.Data,
	}
	if _, err := eventlog.Emit(ctx, cache, event); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write execution")
	}
	log.Info("proposal executed")

	out := &govlock.DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}
	proposalTag(out, proposal.ID)
	return out, nil
}

func (h ExecuteProposalHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*Proposal, time.Time, error) {
	var msg ExecuteProposalMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "load msg")
	}
	conf, now, err := prepare(ctx, db)
	if err != nil {
		return nil, time.Time{}, err
	}
	switch {
	case !conf.PublicExecution:
		if _, err := actingSigner(ctx, h.auth, conf, msg.Executor); err != nil {
			return nil, time.Time{}, err
		}
	case msg.Executor != nil && !h.auth.HasAddress(ctx, msg.Executor):
		return nil, time.Time{}, errors.Wrapf(errors.ErrUnauthorized, "%s did not sign", msg.Executor)
	}

	proposal, err := h.bucket.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, time.Time{}, err
	}
	switch proposal.State(now, conf) {
	case StateExecuted:
		return nil, time.Time{}, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", proposal.ID)
	case StateCanceled:
		return nil, time.Time{}, errors.Wrapf(ErrCanceled, "proposal %d", proposal.ID)
	case StatePending:
		return nil, time.Time{}, errors.Wrapf(ErrInsufficientApprovals,
			"proposal %d has %d of %d", proposal.ID, proposal.ApprovalCount(), conf.RequiredApprovals)
	case StateApproved:
		return nil, time.Time{}, errors.Wrapf(ErrDelayNotElapsed,
			"proposal %d executable at %s", proposal.ID, proposal.CreatedAt.Add(conf.Delay()))
	}
	return proposal, now, nil
}

// CancelProposalHandler terminates an open proposal. It is available only
// if the configuration allows cancellation.
type CancelProposalHandler struct {
	auth   x.Authenticator
	bucket *ProposalBucket
}

var _ govlock.Handler = (*CancelProposalHandler)(nil)

func (h CancelProposalHandler) Check(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &govlock.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelProposalHandler) Deliver(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*govlock.DeliverResult, error) {
	proposal, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := proposal.transition(ProposalStatusCanceled, govlock.AsUnixTime(now)); err != nil {
		return nil, err
	}
	if err := h.bucket.Update(db, proposal); err != nil {
		return nil, err
	}
	if _, err := eventlog.Emit(ctx, db, &ProposalCanceledEvent{ID: proposal.ID}); err != nil {
		return nil, err
	}
	govlock.GetLogger(proposalLogger(ctx, proposal)).Info("proposal canceled")

	res := &govlock.DeliverResult{}
	proposalTag(res, proposal.ID)
	return res, nil
}

func (h CancelProposalHandler) validate(ctx govlock.Context, db govlock.KVStore, tx govlock.Tx) (*Proposal, time.Time, error) {
	var msg CancelProposalMsg
	if err := govlock.LoadMsg(tx, &msg); err != nil {
		return nil, time.Time{}, errors.Wrap(err, "load msg")
	}
	conf, now, err := prepare(ctx, db)
	if err != nil {
		return nil, time.Time{}, err
	}
	if !conf.AllowCancel {
		return nil, time.Time{}, errors.Wrap(errors.ErrState, "cancellation is disabled")
	}
	if _, err := actingSigner(ctx, h.auth, conf, msg.Signer); err != nil {
		return nil, time.Time{}, err
	}
	proposal, err := h.bucket.GetProposal(db, msg.ProposalID)
	if err != nil {
		return nil, time.Time{}, err
	}
	switch proposal.Status {
	case ProposalStatusExecuted:
		return nil, time.Time{}, errors.Wrapf(ErrAlreadyExecuted, "proposal %d", proposal.ID)
	case ProposalStatusCanceled:
		return nil, time.Time{}, errors.Wrapf(ErrCanceled, "proposal %d", proposal.ID)
	}
	return proposal, now, nil
}
