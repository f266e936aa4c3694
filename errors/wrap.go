package errors

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// causer is implemented by errors wrapping another error.
type causer interface {
	Cause() error
}

// unpacker is implemented by errors grouping several errors.
type unpacker interface {
	Unpack() []error
}

// Wrap adds description to err. The innermost wrap records a stack trace.
// Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string { return e.msg + ": " + e.parent.Error() }
func (e *wrappedError) Cause() error  { return e.parent }

// Format prints the message for %s. %v appends the [file:line] the error
// was created at and %+v prints the whole stack trace first.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		fmt.Fprint(s, e.Error())
		return
	}
	stack := trimStack(stackTrace(e))
	switch {
	case s.Flag('+'):
		fmt.Fprintf(s, "%+v\n%s", stack, e.Error())
	case len(stack) != 0:
		file, line := frameLine(stack[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, "%s [%s:%d]", e.Error(), file, line)
	default:
		fmt.Fprint(s, e.Error())
	}
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// isNilErr also treats a typed nil pointer as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// stackTrace returns the first stack trace found while unwrapping err.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for {
		switch x := err.(type) {
		case stackTracer:
			return x.StackTrace()
		case causer:
			err = x.Cause()
		default:
			return nil
		}
	}
}

// constructors create errors and are never the interesting frame.
var constructors = []string{
	"github.com/iov-one/govlock/errors.Wrap",
	"github.com/iov-one/govlock/errors.Field",
	"github.com/iov-one/govlock/errors.(*Error).New",
	"runtime.",
}

// trimStack drops constructor and runtime frames at the top and the
// runtime and testing frames at the bottom.
func trimStack(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && frameIn(st[0], constructors...) {
		st = st[1:]
	}
	for len(st) > 1 && frameIn(st[len(st)-1], "runtime.", "testing.") {
		st = st[:len(st)-1]
	}
	return st
}

func frameIn(f errors.Frame, prefixes ...string) bool {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(fn.Name(), p) {
			return true
		}
	}
	return false
}

func frameLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.FileLine(pc)
	}
	return "unknown", 0
}
