package upgrade

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/govlock"
)

// Contract is the state of a governed contract, stored under its address.
type Contract struct {
	Metadata *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Address  govlock.Address   `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
	// Owner is the administrator allowed to request an upgrade permission.
	Owner govlock.Address `protobuf:"bytes,3,opt,name=owner,proto3" json:"owner,omitempty"`
	// Timelock is the only caller allowed to grant the upgrade authority.
	Timelock         govlock.Address `protobuf:"bytes,4,opt,name=timelock,proto3" json:"timelock,omitempty"`
	UpgradeAuthority govlock.Address `protobuf:"bytes,5,opt,name=upgrade_authority,json=upgradeAuthority,proto3" json:"upgrade_authority,omitempty"`
	// PendingUpgradeRequester is set between the permission request and the
	// grant.
	PendingUpgradeRequester govlock.Address `protobuf:"bytes,6,opt,name=pending_upgrade_requester,json=pendingUpgradeRequester,proto3" json:"pending_upgrade_requester,omitempty"`
	// Implementation is the hash of the code currently backing the contract.
	Implementation []byte `protobuf:"bytes,7,opt,name=implementation,proto3" json:"implementation,omitempty"`
	Version        uint32 `protobuf:"varint,8,opt,name=version,proto3" json:"version,omitempty"`
}

// RequestUpgradePermissionMsg asks the contract for an encoded call granting
// the upgrade authority to the requester.
type RequestUpgradePermissionMsg struct {
	Metadata  *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Requester govlock.Address   `protobuf:"bytes,2,opt,name=requester,proto3" json:"requester,omitempty"`
}

// GrantUpgradeAuthorityMsg transfers the upgrade authority over the contract.
type GrantUpgradeAuthorityMsg struct {
	Metadata     *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	NewAuthority govlock.Address   `protobuf:"bytes,2,opt,name=new_authority,json=newAuthority,proto3" json:"new_authority,omitempty"`
}

// UpgradeImplementationMsg replaces the code backing the contract.
type UpgradeImplementationMsg struct {
	Metadata       *govlock.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Implementation []byte            `protobuf:"bytes,2,opt,name=implementation,proto3" json:"implementation,omitempty"`
}

// UpgradePermissionRequestedEvent is emitted when the owner requests an
// upgrade permission.
type UpgradePermissionRequestedEvent struct {
	Requester govlock.Address `protobuf:"bytes,1,opt,name=requester,proto3" json:"requester,omitempty"`
}

// UpgradeAuthorityGrantedEvent is emitted when the timelock grants the
// upgrade authority.
type UpgradeAuthorityGrantedEvent struct {
	NewAuthority govlock.Address `protobuf:"bytes,1,opt,name=new_authority,json=newAuthority,proto3" json:"new_authority,omitempty"`
}

// ContractUpgradedEvent is emitted when the implementation is replaced.
type ContractUpgradedEvent struct {
	Implementation []byte `protobuf:"bytes,1,opt,name=implementation,proto3" json:"implementation,omitempty"`
	Version        uint32 `protobuf:"varint,2,opt,name=version,proto3" json:"version,omitempty"`
}

type contractCodec Contract

func (m *contractCodec) Reset()         { *m = contractCodec{} }
func (m *contractCodec) String() string { return proto.CompactTextString(m) }
func (*contractCodec) ProtoMessage()    {}

func (m *Contract) Marshal() ([]byte, error) { return proto.Marshal((*contractCodec)(m)) }
func (m *Contract) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*contractCodec)(m)) }

type requestUpgradePermissionMsgCodec RequestUpgradePermissionMsg

func (m *requestUpgradePermissionMsgCodec) Reset() {
	*m = requestUpgradePermissionMsgCodec{}
}
func (m *requestUpgradePermissionMsgCodec) String() string { return proto.CompactTextString(m) }
func (*requestUpgradePermissionMsgCodec) ProtoMessage()    {}

func (m *RequestUpgradePermissionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*requestUpgradePermissionMsgCodec)(m))
}
func (m *RequestUpgradePermissionMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*requestUpgradePermissionMsgCodec)(m))
}

type grantUpgradeAuthorityMsgCodec GrantUpgradeAuthorityMsg

func (m *grantUpgradeAuthorityMsgCodec) Reset()         { *m = grantUpgradeAuthorityMsgCodec{} }
func (m *grantUpgradeAuthorityMsgCodec) String() string { return proto.CompactTextString(m) }
func (*grantUpgradeAuthorityMsgCodec) ProtoMessage()    {}

func (m *GrantUpgradeAuthorityMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*grantUpgradeAuthorityMsgCodec)(m))
}
func (m *GrantUpgradeAuthorityMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*grantUpgradeAuthorityMsgCodec)(m))
}

type upgradeImplementationMsgCodec UpgradeImplementationMsg

func (m *upgradeImplementationMsgCodec) Reset()         { *m = upgradeImplementationMsgCodec{} }
func (m *upgradeImplementationMsgCodec) String() string { return proto.CompactTextString(m) }
func (*upgradeImplementationMsgCodec) ProtoMessage()    {}

func (m *UpgradeImplementationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*upgradeImplementationMsgCodec)(m))
}
func (m *UpgradeImplementationMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*upgradeImplementationMsgCodec)(m))
}

type upgradePermissionRequestedEventCodec UpgradePermissionRequestedEvent

func (m *upgradePermissionRequestedEventCodec) Reset() {
	*m = upgradePermissionRequestedEventCodec{}
}
func (m *upgradePermissionRequestedEventCodec) String() string { return proto.CompactTextString(m) }
func (*upgradePermissionRequestedEventCodec) ProtoMessage()    {}

func (m *UpgradePermissionRequestedEvent) Marshal() ([]byte, error) {
	return proto.Marshal((*upgradePermissionRequestedEventCodec)(m))
}
func (m *UpgradePermissionRequestedEvent) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*upgradePermissionRequestedEventCodec)(m))
}

type upgradeAuthorityGrantedEventCodec UpgradeAuthorityGrantedEvent

func (m *upgradeAuthorityGrantedEventCodec) Reset()         { *m = upgradeAuthorityGrantedEventCodec{} }
func (m *upgradeAuthorityGrantedEventCodec) String() string { return proto.CompactTextString(m) }
func (*upgradeAuthorityGrantedEventCodec) ProtoMessage()    {}

func (m *UpgradeAuthorityGrantedEvent) Marshal() ([]byte, error) {
	return proto.Marshal((*upgradeAuthorityGrantedEventCodec)(m))
}
func (m *UpgradeAuthorityGrantedEvent) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*upgradeAuthorityGrantedEventCodec)(m))
}

type contractUpgradedEventCodec ContractUpgradedEvent

func (m *contractUpgradedEventCodec) Reset()         { *m = contractUpgradedEventCodec{} }
func (m *contractUpgradedEventCodec) String() string { return proto.CompactTextString(m) }
func (*contractUpgradedEventCodec) ProtoMessage()    {}

func (m *ContractUpgradedEvent) Marshal() ([]byte, error) {
	return proto.Marshal((*contractUpgradedEventCodec)(m))
}
func (m *ContractUpgradedEvent) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*contractUpgradedEventCodec)(m))
}
