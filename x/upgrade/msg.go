package upgrade

import (
	"github.com/iov-one/govlock"
	"github.com/iov-one/govlock/errors"
)

const (
	pathRequestUpgradePermissionMsg = "upgrade/request_upgrade_permission"
	pathGrantUpgradeAuthorityMsg    = "upgrade/grant_upgrade_authority"
	pathUpgradeImplementationMsg    = "upgrade/upgrade_implementation"
)

var _ govlock.Msg = (*RequestUpgradePermissionMsg)(nil)

func (RequestUpgradePermissionMsg) Path() string {
	return pathRequestUpgradePermissionMsg
}

func (m *RequestUpgradePermissionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Requester != nil {
		if err := m.Requester.Validate(); err != nil {
			return errors.Field("Requester", err, "invalid address")
		}
	}
	return nil
}

var _ govlock.Msg = (*GrantUpgradeAuthorityMsg)(nil)

func (GrantUpgradeAuthorityMsg) Path() string {
	return pathGrantUpgradeAuthorityMsg
}

func (m *GrantUpgradeAuthorityMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.NewAuthority.Validate(); err != nil {
		return errors.Field("NewAuthority", err, "invalid address")
	}
	return nil
}

var _ govlock.Msg = (*UpgradeImplementationMsg)(nil)

func (UpgradeImplementationMsg) Path() string {
	return pathUpgradeImplementationMsg
}

func (m *UpgradeImplementationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	switch n := len(m.Implementation); {
	case n == 0:
		return errors.Field("Implementation", errors.ErrEmpty, "required")
	case n > maxImplementationLength:
		return errors.Field("Implementation", errors.ErrInput, "longer than %d bytes", maxImplementationLength)
	}
	return nil
}

// RegisterCalls makes all messages of this package decodable from an
// encoded call.
func RegisterCalls(r *govlock.CallRegistry) {
	r.Register(&RequestUpgradePermissionMsg{})
	r.Register(&GrantUpgradeAuthorityMsg{})
	r.Register(&UpgradeImplementationMsg{})
}

func (UpgradePermissionRequestedEvent) Kind() string { return "upgrade/permission_requested" }
func (UpgradeAuthorityGrantedEvent) Kind() string    { return "upgrade/authority_granted" }
func (ContractUpgradedEvent) Kind() string           { return "upgrade/contract_upgraded" }
