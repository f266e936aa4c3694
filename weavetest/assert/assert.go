// Package assert provides the few assertions used across the test suites.
// Every failed assertion stops the test.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/govlock/errors"
)

// Tester is the part of testing.TB the assertions need.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if value is not nil. Typed nil values such as a nil
// pointer stored in an interface are nil as well.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test unless want and got are deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the want kind. A nil want matches
// only a nil error.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if is, ok := want.(interface{ Is(error) bool }); ok && is.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails the test unless err carries exactly one error for given
// field and that error is of the want kind. A nil want requires that the
// field has no error.
func FieldError(t testing.TB, err error, field string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("%s: want no error, got %q", field, errs)
		}
		return
	}
	if len(errs) != 1 {
		t.Fatalf("%s: want one %q error, got %q", field, want, errs)
	}
	if !want.Is(errs[0]) {
		t.Fatalf("%s: want %q, got %q", field, want, errs[0])
	}
}
