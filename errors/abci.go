package errors

import (
	"errors"
)

// SuccessABCICode is the code of a response without an error.
const SuccessABCICode = 0

// Errors that do not carry an ABCI code are internal. They share a single
// code and their message is hidden outside of debug mode.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response describing err.
func ABCIInfo(err error, debug bool) (uint32, string) {
	switch code := abciCode(err); {
	case code == SuccessABCICode:
		return code, ""
	case code != internalABCICode, debug:
		return code, err.Error()
	default:
		return code, internalABCILog
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode unwraps err until it finds an ABCI code. Of a group of errors
// the first one decides.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		switch e := err.(type) {
		case coder:
			return e.ABCICode()
		case causer:
			err = e.Cause()
		case unpacker:
			errs := e.Unpack()
			if len(errs) == 0 {
				return internalABCICode
			}
			err = errs[0]
		default:
			return internalABCICode
		}
	}
}

// Redact replaces internal errors and recovered panics with a generic error.
// It returns err unchanged in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
