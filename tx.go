package govlock

import (
	"reflect"

	"github.com/iov-one/govlock/errors"
)

// Marshaller serializes a value. Marshal may validate the value first.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a value that can be stored and loaded back. Unmarshal
// usually requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg requests a single state transition.
type Msg interface {
	Persistent

	// Path routes the message to its handler. Several message types may
	// share a path. It must match [0-9A-Za-z_\-/]+.
	Path() string

	Validate() error
}

// Tx carries a message together with the data needed to authenticate it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TargetedTx is a transaction addressed to a contract. The message is
// processed on behalf of that contract.
type TargetedTx interface {
	Tx
	GetTarget() Address
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the path of the transaction message or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the transaction message into dst, which must point to a
// value of the message type, and validates it.
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() != reflect.Ptr || src.Type() != ptr.Type() || src.IsNil() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", dst, msg)
	}
	ptr.Elem().Set(src.Elem())
	return errors.Wrap(msg.Validate(), "invalid message")
}
