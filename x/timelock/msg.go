package timelock

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

const (
	pathCreateProposalMsg                = "timelock/create_proposal"
	pathCreateUpgradeContractProposalMsg = "timelock/create_upgrade_contract_proposal"
	pathApproveProposalMsg               = "timelock/approve_proposal"
	pathExecuteProposalMsg               = "timelock/execute_proposal"
	pathCancelProposalMsg                = "timelock/cancel_proposal"
)

// RegisterCalls makes all messages of this package decodable from an
// encoded call, so that proposals can call the timelock itself.
func RegisterCalls(r *govlock.CallRegistry) {
	r.Register(&CreateProposalMsg{})
	r.Register(&CreateUpgradeContractProposalMsg{})
	r.Register(&ApproveProposalMsg{})
	r.Register(&ExecuteProposalMsg{})
	r.Register(&CancelProposalMsg{})
}

// validateActor checks an optional actor address.
func validateActor(field string, a govlock.Address) error {
	if a == nil {
		return nil
	}
	return errors.Field(field, a.Validate(), "invalid address")
}

var _ govlock.Msg = (*CreateProposalMsg)(nil)

func (CreateProposalMsg) Path() string {
	return pathCreateProposalMsg
}

func (m *CreateProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Target", m.Target.Validate())
	errs = errors.AppendField(errs, "Payload", validatePayload(m.Payload))
	return errors.Append(errs, validateActor("Proposer", m.Proposer))
}

var _ govlock.Msg = (*CreateUpgradeContractProposalMsg)(nil)

func (CreateUpgradeContractProposalMsg) Path() string {
	return pathCreateUpgradeContractProposalMsg
}

func (m *CreateUpgradeContractProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "NewAuthority", m.NewAuthority.Validate())
	return errors.Append(errs, validateActor("Proposer", m.Proposer))
}

var _ govlock.Msg = (*ApproveProposalMsg)(nil)

func (ApproveProposalMsg) Path() string {
	return pathApproveProposalMsg
}

func (m *ApproveProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.Append(errs, validateActor("Signer", m.Signer))
}

var _ govlock.Msg = (*ExecuteProposalMsg)(nil)

func (ExecuteProposalMsg) Path() string {
	return pathExecuteProposalMsg
}

func (m *ExecuteProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.Append(errs, validateActor("Executor", m.Executor))
}

var _ govlock.Msg = (*CancelProposalMsg)(nil)

func (CancelProposalMsg) Path() string {
	return pathCancelProposalMsg
}

func (m *CancelProposalMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	return errors.Append(errs, validateActor("Signer", m.Signer))
}

func (ProposalCreatedEvent) Kind() string  { return "timelock/proposal_created" }
func (ProposalApprovedEvent) Kind() string { return "timelock/proposal_approved" }
func (ProposalExecutedEvent) Kind() string { return "timelock/proposal_executed" }
func (ProposalCanceledEvent) Kind() string { return "timelock/proposal_canceled" }
