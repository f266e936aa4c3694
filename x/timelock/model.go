package timelock

import (
	"time"

	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
	"github.com/iov-one/govlock/orm"
)

const (
	// BucketName is where proposals are stored.
	BucketName = "proposals"

	indexNameTarget = "target"
	maxPayloadSize  = 4096
)

// State is the lifecycle stage of a proposal, derived from its stored status,
// the approvals and the block time.
type State int

const (
	StatePending State = iota
	StateApproved
	StateExecutable
	StateExecuted
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateApproved:
		return "approved"
	case StateExecutable:
		return "executable"
	case StateExecuted:
		return "executed"
	case StateCanceled:
		return "canceled"
	}
	return "unknown"
}

var _ orm.CloneableData = (*Proposal)(nil)

// Validate ensures the proposal is consistent.
func (p *Proposal) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "Proposer", p.Proposer.Validate())
	errs = errors.AppendField(errs, "Target", p.Target.Validate())
	errs = errors.AppendField(errs, "Payload", validatePayload(p.Payload))
	errs = errors.AppendField(errs, "CreatedAt", p.CreatedAt.Validate())
	for i, a := range p.ApprovedBy {
		if err := a.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("ApprovedBy", err, "approval %d", i))
		}
	}
	switch p.Status {
	case ProposalStatusOpen:
		if !p.ExecutedAt.IsZero() || !p.CanceledAt.IsZero() {
			errs = errors.AppendField(errs, "Status", errors.Wrap(errors.ErrModel, "open proposal with a terminal time"))
		}
	case ProposalStatusExecuted:
		if p.ExecutedAt.IsZero() {
			errs = errors.AppendField(errs, "ExecutedAt", errors.Wrap(errors.ErrEmpty, "required"))
		}
	case ProposalStatusCanceled:
		if p.CanceledAt.IsZero() {
			errs = errors.AppendField(errs, "CanceledAt", errors.Wrap(errors.ErrEmpty, "required"))
		}
	default:
		errs = errors.AppendField(errs, "Status", errors.Wrapf(errors.ErrModel, "unknown status %d", p.Status))
	}
	return errs
}

func validatePayload(payload []byte) error {
	switch n := len(payload); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "required")
	case n > maxPayloadSize:
		return errors.Wrapf(errors.ErrInput, "longer than %d bytes", maxPayloadSize)
	}
	return nil
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() orm.CloneableData {
	var approved []govlock.Address
	for _, a := range p.ApprovedBy {
		approved = append(approved, append(govlock.Address(nil), a...))
	}
	return &Proposal{
		Metadata:   p.Metadata.Copy(),
		ID:         p.ID,
		Proposer:   append(govlock.Address(nil), p.Proposer...),
		Target:     append(govlock.Address(nil), p.Target...),
		Payload:    append([]byte(nil), p.Payload...),
		CreatedAt:  p.CreatedAt,
		ApprovedBy: approved,
		Status:     p.Status,
		ExecutedAt: p.ExecutedAt,
		CanceledAt: p.CanceledAt,
	}
}

// HasApproved returns true if given signer approved this proposal.
func (p *Proposal) HasApproved(signer govlock.Address) bool {
	for _, a := range p.ApprovedBy {
		if a.Equals(signer) {
			return true
		}
	}
	return false
}

// ApprovalCount returns the number of distinct approvals.
func (p *Proposal) ApprovalCount() int {
	return len(p.ApprovedBy)
}

// ThresholdMet returns true if the proposal collected enough approvals.
func (p *Proposal) ThresholdMet(conf *Configuration) bool {
	return p.ApprovalCount() >= int(conf.RequiredApprovals)
}

// DelayElapsed returns true if the delay since the proposal creation has
// passed at given time. The delay end is inclusive.
func (p *Proposal) DelayElapsed(now time.Time, conf *Configuration) bool {
	return !now.Before(p.CreatedAt.Time().Add(conf.Delay()))
}

// State returns the lifecycle stage of the proposal at given time.
func (p *Proposal) State(now time.Time, conf *Configuration) State {
	switch {
	case p.Status == ProposalStatusExecuted:
		return StateExecuted
	case p.Status == ProposalStatusCanceled:
		return StateCanceled
	case !p.ThresholdMet(conf):
		return StatePending
	case !p.DelayElapsed(now, conf):
		return StateApproved
	default:
		return StateExecutable
	}
}

// transition moves an open proposal into a terminal status. It fails if the
// proposal already reached a terminal status.
func (p *Proposal) transition(to ProposalStatus, now govlock.UnixTime) error {
	switch p.Status {
	case ProposalStatusExecuted:
		return errors.Wrapf(ErrAlreadyExecuted, "proposal %d", p.ID)
	case ProposalStatusCanceled:
		return errors.Wrapf(ErrCanceled, "proposal %d", p.ID)
	}
	switch to {
	case ProposalStatusExecuted:
		p.ExecutedAt = now
	case ProposalStatusCanceled:
		p.CanceledAt = now
	default:
		return errors.Wrapf(errors.ErrHuman, "invalid transition to %d", to)
	}
	p.Status = to
	return nil
}

// ProposalBucket stores proposals under their 8 byte big endian id.
type ProposalBucket struct {
	orm.Bucket
	seq orm.Sequence
}

// NewProposalBucket returns a bucket for managing proposals.
func NewProposalBucket() *ProposalBucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Proposal{})).
		WithIndex(indexNameTarget, targetIndexer, false)
	return &ProposalBucket{
		Bucket: b,
		seq:    b.Sequence(orm.SeqID),
	}
}

func targetIndexer(obj orm.Object) ([]byte, error) {
	p, err := asProposal(obj)
	if err != nil {
		return nil, err
	}
	return p.Target, nil
}

func asProposal(obj orm.Object) (*Proposal, error) {
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrap(ErrInvalidProposalID, "unknown id")
	}
	p, ok := obj.Value().(*Proposal)
	if !ok {
		return nil, errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return p, nil
}

// ProposalKey returns the database key of a proposal.
func ProposalKey(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}

// Count returns the number of proposals ever created, which is also the id
// the next proposal gets.
func (b *ProposalBucket) Count(db govlock.ReadOnlyKVStore) (uint64, error) {
	n, _, err := b.seq.Latest(db)
	if err != nil {
		return 0, errors.Wrap(err, "proposal sequence")
	}
	return uint64(n), nil
}

// Create assigns the next id to the proposal and saves it.
func (b *ProposalBucket) Create(db govlock.KVStore, p *Proposal) error {
	n, err := b.seq.NextInt(db)
	if err != nil {
		return errors.Wrap(err, "proposal sequence")
	}
	p.ID = uint64(n - 1)
	return b.Update(db, p)
}

// Update saves the proposal under its id.
func (b *ProposalBucket) Update(db govlock.KVStore, p *Proposal) error {
	if err := b.Save(db, orm.NewSimpleObj(ProposalKey(p.ID), p)); err != nil {
		return errors.Wrapf(err, "save proposal %d", p.ID)
	}
	return nil
}

// GetProposal loads the proposal with given id. ErrInvalidProposalID is
// returned for ids that were never assigned.
func (b *ProposalBucket) GetProposal(db govlock.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	count, err := b.Count(db)
	if err != nil {
		return nil, err
	}
	if id >= count {
		return nil, errors.Wrapf(ErrInvalidProposalID, "id %d, count %d", id, count)
	}
	obj, err := b.Get(db, ProposalKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "load proposal %d", id)
	}
	return asProposal(obj)
}

// ByTarget returns all proposals calling given target, oldest first.
func (b *ProposalBucket) ByTarget(db govlock.ReadOnlyKVStore, target govlock.Address) ([]*Proposal, error) {
	objs, err := b.GetIndexed(db, indexNameTarget, target)
	if err != nil {
		return nil, err
	}
	res := make([]*Proposal, 0, len(objs))
	for _, o := range objs {
		p, err := asProposal(o)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

// ProposalCount returns the number of proposals ever created.
func ProposalCount(db govlock.ReadOnlyKVStore) (uint64, error) {
	return NewProposalBucket().Count(db)
}

// GetProposal returns the proposal with given id.
func GetProposal(db govlock.ReadOnlyKVStore, id uint64) (*Proposal, error) {
	return NewProposalBucket().GetProposal(db, id)
}

// ApprovalCount returns the number of signers that approved given proposal.
func ApprovalCount(db govlock.ReadOnlyKVStore, id uint64) (int, error) {
	p, err := GetProposal(db, id)
	if err != nil {
		return 0, err
	}
	return p.ApprovalCount(), nil
}

// ThresholdMet returns true if given proposal collected the required number
// of approvals.
func ThresholdMet(db govlock.ReadOnlyKVStore, id uint64) (bool, error) {
	p, err := GetProposal(db, id)
	if err != nil {
		return false, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	return p.ThresholdMet(conf), nil
}

// DelayElapsed returns true if the delay of given proposal has passed at the
// time of the current block.
func DelayElapsed(ctx govlock.Context, db govlock.ReadOnlyKVStore, id uint64) (bool, error) {
	p, err := GetProposal(db, id)
	if err != nil {
		return false, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	now, err := govlock.BlockTime(ctx)
	if err != nil {
		return false, err
	}
	return p.DelayElapsed(now, conf), nil
}
