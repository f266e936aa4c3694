package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
)

// Configuration is the signer set of the timelock. It is loaded from genesis
// and never changes afterwards.
type Configuration struct {
	Metadata          *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Signers           []govlock.Address `protobuf:"bytes,2,rep,name=signers,proto3" json:"signers,omitempty"`
	RequiredApprovals uint32            `protobuf:"varint,3,opt,name=required_approvals,json=requiredApprovals,proto3" json:"required_approvals,omitempty"`
	DelaySeconds      int64             `protobuf:"varint,4,opt,name=delay_seconds,json=delaySeconds,proto3" json:"delay_seconds,omitempty"`
	// AllowCancel enables the cancel proposal message.
	AllowCancel bool `protobuf:"varint,5,opt,name=allow_cancel,json=allowCancel,proto3" json:"allow_cancel,omitempty"`
	// PublicExecution allows anyone to execute a ready proposal. By default
	// only signers can.
	PublicExecution bool `protobuf:"varint,6,opt,name=public_execution,json=publicExecution,proto3" json:"public_execution,omitempty"`
}

// ProposalStatus is the stored lifecycle status of a proposal.
type ProposalStatus int32

const (
	ProposalStatusOpen     ProposalStatus = 0
	ProposalStatusExecuted ProposalStatus = 1
	ProposalStatusCanceled ProposalStatus = 2
)

// Proposal is a call waiting for approvals and delay to pass.
type Proposal struct {
	Metadata   *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ID         uint64            `protobuf:"varint,2,opt,name=id,proto3" json:"id,omitempty"`
	Proposer   govlock.Address   `protobuf:"bytes,3,opt,name=proposer,proto3" json:"proposer,omitempty"`
	Target     govlock.Address   `protobuf:"bytes,4,opt,name=target,proto3" json:"target,omitempty"`
	Payload    []byte            `protobuf:"bytes,5,opt,name=payload,proto3" json:"payload,omitempty"`
	CreatedAt  govlock.UnixTime  `protobuf:"varint,6,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
	ApprovedBy []govlock.Address `protobuf:"bytes,7,rep,name=approved_by,json=approvedBy,proto3" json:"approved_by,omitempty"`
	Status     ProposalStatus    `protobuf:"varint,8,opt,name=status,proto3" json:"status,omitempty"`
	ExecutedAt govlock.UnixTime  `protobuf:"varint,9,opt,name=executed_at,json=executedAt,proto3" json:"executed_at,omitempty"`
	CanceledAt govlock.UnixTime  `protobuf:"varint,10,opt,name=canceled_at,json=canceledAt,proto3" json:"canceled_at,omitempty"`
}

// CreateProposalMsg stores a new proposal. Proposer defaults to the main
// signer.
type CreateProposalMsg struct {
	Metadata *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Target   govlock.Address   `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Payload  []byte            `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	Proposer govlock.Address   `protobuf:"bytes,4,opt,name=proposer,proto3" json:"proposer,omitempty"`
}

// CreateUpgradeContractProposalMsg stores a proposal that grants the upgrade
// authority over the timelock contract to a new address.
type CreateUpgradeContractProposalMsg struct {
	Metadata     *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	NewAuthority govlock.Address   `protobuf:"bytes,2,opt,name=new_authority,json=newAuthority,proto3" json:"new_authority,omitempty"`
	Proposer     govlock.Address   `protobuf:"bytes,3,opt,name=proposer,proto3" json:"proposer,omitempty"`
}

// ApproveProposalMsg adds the approval of a signer to a proposal.
type ApproveProposalMsg struct {
	Metadata   *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ProposalID uint64            `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
	Signer     govlock.Address   `protobuf:"bytes,3,opt,name=signer,proto3" json:"signer,omitempty"`
}

// ExecuteProposalMsg delivers the call of a ready proposal.
type ExecuteProposalMsg struct {
	Metadata   *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ProposalID uint64            `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
	Executor   govlock.Address   `protobuf:"bytes,3,opt,name=executor,proto3" json:"executor,omitempty"`
}

// CancelProposalMsg terminates a proposal without executing it.
type CancelProposalMsg struct {
	Metadata   *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	ProposalID uint64            `protobuf:"varint,2,opt,name=proposal_id,json=proposalId,proto3" json:"proposal_id,omitempty"`
	Signer     govlock.Address   `protobuf:"bytes,3,opt,name=signer,proto3" json:"signer,omitempty"`
}

type ProposalCreatedEvent struct {
	ID        uint64           `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Target    govlock.Address  `protobuf:"bytes,2,opt,name=target,proto3" json:"target,omitempty"`
	Payload   []byte           `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload,omitempty"`
	CreatedAt govlock.UnixTime `protobuf:"varint,4,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
}

type ProposalApprovedEvent struct {
	ID     uint64          `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Signer govlock.Address `protobuf:"bytes,2,opt,name=signer,proto3" json:"signer,omitempty"`
}

type ProposalExecutedEvent struct {
	ID         uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Success    bool   `protobuf:"varint,2,opt,name=success,proto3" json:"success,omitempty"`
	ReturnData []byte `protobuf:"bytes,3,opt,name=return_data,json=returnData,proto3" json:"return_data,omitempty"`
}

type ProposalCanceledEvent struct {
	ID uint64 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
}

type configurationCodec Configuration

func (m *configurationCodec) Reset()         { *m = configurationCodec{} }
func (m *configurationCodec) String() string { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationCodec)(m)) }
func (m *Configuration) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*configurationCodec)(m)) }

type proposalCodec Proposal

func (m *proposalCodec) Reset()         { *m = proposalCodec{} }
func (m *proposalCodec) String() string { return proto.CompactTextString(m) }
func (*proposalCodec) ProtoMessage()    {}

func (m *Proposal) Marshal() ([]byte, error) { return proto.Marshal((*proposalCodec)(m)) }
func (m *Proposal) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalCodec)(m)) }

type createProposalMsgCodec CreateProposalMsg

func (m *createProposalMsgCodec) Reset()         { *m = createProposalMsgCodec{} }
func (m *createProposalMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createProposalMsgCodec) ProtoMessage()    {}

func (m *CreateProposalMsg) Marshal() ([]byte, error) { return proto.Marshal((*createProposalMsgCodec)(m)) }
func (m *CreateProposalMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*createProposalMsgCodec)(m)) }

type createUpgradeContractProposalMsgCodec CreateUpgradeContractProposalMsg

func (m *createUpgradeContractProposalMsgCodec) Reset()         { *m = createUpgradeContractProposalMsgCodec{} }
func (m *createUpgradeContractProposalMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createUpgradeContractProposalMsgCodec) ProtoMessage()    {}

func (m *CreateUpgradeContractProposalMsg) Marshal() ([]byte, error) { return proto.Marshal((*createUpgradeContractProposalMsgCodec)(m)) }
func (m *CreateUpgradeContractProposalMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*createUpgradeContractProposalMsgCodec)(m)) }

type approveProposalMsgCodec ApproveProposalMsg

func (m *approveProposalMsgCodec) Reset()         { *m = approveProposalMsgCodec{} }
func (m *approveProposalMsgCodec) String() string { return proto.CompactTextString(m) }
func (*approveProposalMsgCodec) ProtoMessage()    {}

func (m *ApproveProposalMsg) Marshal() ([]byte, error) { return proto.Marshal((*approveProposalMsgCodec)(m)) }
func (m *ApproveProposalMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*approveProposalMsgCodec)(m)) }

type executeProposalMsgCodec ExecuteProposalMsg

func (m *executeProposalMsgCodec) Reset()         { *m = executeProposalMsgCodec{} }
func (m *executeProposalMsgCodec) String() string { return proto.CompactTextString(m) }
func (*executeProposalMsgCodec) ProtoMessage()    {}

func (m *ExecuteProposalMsg) Marshal() ([]byte, error) { return proto.Marshal((*executeProposalMsgCodec)(m)) }
func (m *ExecuteProposalMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*executeProposalMsgCodec)(m)) }

type cancelProposalMsgCodec CancelProposalMsg

func (m *cancelProposalMsgCodec) Reset()         { *m = cancelProposalMsgCodec{} }
func (m *cancelProposalMsgCodec) String() string { return proto.CompactTextString(m) }
func (*cancelProposalMsgCodec) ProtoMessage()    {}

func (m *CancelProposalMsg) Marshal() ([]byte, error) { return proto.Marshal((*cancelProposalMsgCodec)(m)) }
func (m *CancelProposalMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*cancelProposalMsgCodec)(m)) }

type proposalCreatedEventCodec ProposalCreatedEvent

func (m *proposalCreatedEventCodec) Reset()         { *m = proposalCreatedEventCodec{} }
func (m *proposalCreatedEventCodec) String() string { return proto.CompactTextString(m) }
func (*proposalCreatedEventCodec) ProtoMessage()    {}

func (m *ProposalCreatedEvent) Marshal() ([]byte, error) { return proto.Marshal((*proposalCreatedEventCodec)(m)) }
func (m *ProposalCreatedEvent) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalCreatedEventCodec)(m)) }

type proposalApprovedEventCodec ProposalApprovedEvent

func (m *proposalApprovedEventCodec) Reset()         { *m = proposalApprovedEventCodec{} }
func (m *proposalApprovedEventCodec) String() string { return proto.CompactTextString(m) }
func (*proposalApprovedEventCodec) ProtoMessage()    {}

func (m *ProposalApprovedEvent) Marshal() ([]byte, error) { return proto.Marshal((*proposalApprovedEventCodec)(m)) }
func (m *ProposalApprovedEvent) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalApprovedEventCodec)(m)) }

type proposalExecutedEventCodec ProposalExecutedEvent

func (m *proposalExecutedEventCodec) Reset()         { *m = proposalExecutedEventCodec{} }
func (m *proposalExecutedEventCodec) String() string { return proto.CompactTextString(m) }
func (*proposalExecutedEventCodec) ProtoMessage()    {}

func (m *ProposalExecutedEvent) Marshal() ([]byte, error) { return proto.Marshal((*proposalExecutedEventCodec)(m)) }
func (m *ProposalExecutedEvent) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalExecutedEventCodec)(m)) }

type proposalCanceledEventCodec ProposalCanceledEvent

func (m *proposalCanceledEventCodec) Reset()         { *m = proposalCanceledEventCodec{} }
func (m *proposalCanceledEventCodec) String() string { return proto.CompactTextString(m) }
func (*proposalCanceledEventCodec) ProtoMessage()    {}

func (m *ProposalCanceledEvent) Marshal() ([]byte, error) { return proto.Marshal((*proposalCanceledEventCodec)(m)) }
func (m *ProposalCanceledEvent) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*proposalCanceledEventCodec)(m)) }
