/*
Package errors implements the error classes used across the ledger.

Reuse the root errors declared in this package whenever possible. Extensions
that need a distinct ABCI code register their own with Register, or with
RegisterWithParent when the new class refines a root error (for example a
role check failure that is still an ErrUnauthorized).

Create errors at the point of failure with ErrXyz.New("...") or
errors.Wrap(err, "...") so that a stack trace is attached. Only the first wrap
records the trace.

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
