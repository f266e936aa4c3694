package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attributes err to a named attribute of a validated model. Nested
// attributes use dot notation and list elements their index, for example
// Signers.2. A stack trace is attached unless err carries one already. Field
// returns nil for a nil err.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds the error of a named attribute to errs. A nil fieldErr
// leaves errs unchanged.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors collects every error attributed to the named field, looking
// through wrapped errors and error groups.
func FieldErrors(err error, name string) []error {
	for !isNilErr(err) {
		if f, ok := err.(interface{ Field() string }); ok && f.Field() == name {
			return []error{err}
		}
		if u, ok := err.(unpacker); ok {
			var found []error
			for _, e := range u.Unpack() {
				found = append(found, FieldErrors(e, name)...)
			}
			return found
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
