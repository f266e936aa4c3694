package weavetest

import "github.com/iov-one/govlock"

// Tx carries a single message to a target contract. It cannot be
// serialized.
type Tx struct {
	Msg    govlock.Msg
	Target govlock.Address
	// Err is returned instead of the message.
	Err error
}

var _ govlock.TargetedTx = (*Tx)(nil)

func (tx *Tx) GetMsg() (govlock.Msg, error) { return tx.Msg, tx.Err }
func (tx *Tx) GetTarget() govlock.Address   { return tx.Target }
func (tx *Tx) Marshal() ([]byte, error)     { panic("weavetest.Tx cannot be marshaled") }
func (tx *Tx) Unmarshal([]byte) error       { panic("weavetest.Tx cannot be unmarshaled") }

// Msg is routed to RoutePath and serializes to Serialized. A non nil Err
// fails validation and serialization.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ govlock.Msg = (*Msg)(nil)

func (m *Msg) Path() string             { return m.RoutePath }
func (m *Msg) Validate() error          { return m.Err }
func (m *Msg) Marshal() ([]byte, error) { return m.Serialized, m.Err }

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
