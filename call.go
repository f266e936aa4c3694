package govlock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"

	"github.com/iov-one/govlock/errors"
)

// SelectorLength is the size of the message selector that prefixes every
// encoded call.
const SelectorLength = 4

// MaxCallDepth limits how many inner calls can be nested while processing a
// single transaction.
const MaxCallDepth = 8

// Caller issues an encoded call against a contract. It is the only way a
// module can act on behalf of itself on another contract.
//
// The call is executed within the caller's store. Any error returned must
// be treated as a failure of the whole unit of work that issued the call.
type Caller interface {
	Call(ctx Context, db KVStore, target Address, payload []byte) (*DeliverResult, error)
}

// CallSelector returns the selector of a message with the given path. The
// selector is the first bytes of the sha256 digest of the path.
func CallSelector(path string) []byte {
	h := sha256.Sum256([]byte(path))
	return h[:SelectorLength]
}

// EncodeCall serializes given message into a payload that can be delivered
// to a contract. The payload is the message selector followed by the
// protobuf serialized message.
func EncodeCall(msg Msg) ([]byte, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	payload := make([]byte, 0, SelectorLength+len(raw))
	payload = append(payload, CallSelector(msg.Path())...)
	return append(payload, raw...), nil
}

// CallRegistry maps call selectors to message types. It is the decoding side
// of EncodeCall.
type CallRegistry struct {
	types map[string]reflect.Type
}

// NewCallRegistry returns a registry that does not know any message.
func NewCallRegistry() *CallRegistry {
	return &CallRegistry{
		types: make(map[string]reflect.Type),
	}
}

// Register adds the type of given message to the registry. The prototype must
// be a pointer to a struct.
// panics if the selector is already used
func (r *CallRegistry) Register(prototype Msg) {
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("message prototype must be a pointer to a struct, got %T", prototype))
	}
	key := hex.EncodeToString(CallSelector(prototype.Path()))
	if prev, ok := r.types[key]; ok {
		panic(fmt.Sprintf("selector %s of %T already used by %s", key, prototype, prev))
	}
	r.types[key] = t.Elem()
}

// Decode returns the message represented by given payload. Message is
// validated before returning.
func (r *CallRegistry) Decode(payload []byte) (Msg, error) {
	if len(payload) < SelectorLength {
		return nil, errors.Wrap(errors.ErrInput, "payload too short")
	}
	key := hex.EncodeToString(payload[:SelectorLength])
	t, ok := r.types[key]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown selector %s", key)
	}
	msg := reflect.New(t).Interface().(Msg)
	if err := msg.Unmarshal(payload[SelectorLength:]); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode %T: %s", msg, err)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	return msg, nil
}

// WithCallDepth returns a context that is one call deeper than given one. It
// fails if the call depth would exceed MaxCallDepth.
func WithCallDepth(ctx Context) (Context, error) {
	depth := GetCallDepth(ctx) + 1
	if depth > MaxCallDepth {
		return ctx, errors.Wrapf(errors.ErrState, "call depth exceeds %d", MaxCallDepth)
	}
	return context.WithValue(ctx, contextKeyCallDepth, depth), nil
}

// GetCallDepth returns how many inner calls are currently nested. Top level
// transaction processing has depth zero.
func GetCallDepth(ctx Context) int {
	depth, _ := ctx.Value(contextKeyCallDepth).(int)
	return depth
}
