package errors

import (
	"fmt"
)

// Root errors shared by all extensions. The code is returned to ABCI
// clients and must never change.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	ErrModel        = Register(5, "invalid model")
	// ErrDuplicate is returned when a unique key or index is already taken.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman marks a code path that a correct setup never reaches.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	ErrInput     = Register(14, "invalid input")
	ErrOverflow  = Register(16, "an operation cannot be completed due to value overflow")
	// ErrSchema is returned for an unsupported schema version.
	ErrSchema   = Register(17, "invalid schema")
	ErrDatabase = Register(18, "database")
	// ErrPanic wraps recovered panics. Its message is always redacted.
	ErrPanic = Register(111222, "panic")
)

// Code 1 is reserved for errors without a code of their own.
var registered = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error. It panics when the code is taken, so it
// must only be called while the program starts.
func Register(code uint32, description string) *Error {
	if e, ok := registered[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	registered[code] = e
	return e
}

// RegisterWithParent declares a root error that Is also recognizes as
// parent, for example a role check failure that is still ErrUnauthorized.
func RegisterWithParent(code uint32, description string, parent *Error) *Error {
	e := Register(code, description)
	e.parent = parent
	return e
}

// Error is a root error. Every error returned by a handler should wrap one.
type Error struct {
	code   uint32
	desc   string
	parent *Error
}

func (e *Error) Error() string    { return e.desc }
func (e *Error) ABCICode() uint32 { return e.code }

// New wraps e with description, same as Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Is reports whether err is an instance of e. It looks through wrapped
// errors, error groups and parents of registered errors. A nil e matches
// nil errors only.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		switch x := err.(type) {
		case *Error:
			for p := x; p != nil; p = p.parent {
				if p == e {
					return true
				}
			}
			return false
		case unpacker:
			for _, member := range x.Unpack() {
				if e.Is(member) {
					return true
				}
			}
			return false
		case causer:
			err = x.Cause()
		default:
			return false
		}
	}
	return false
}
