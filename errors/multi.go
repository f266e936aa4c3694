package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If none or only nil errors are provided, nil is returned. If only a single
// non nil error is provided, it is returned unchanged. Appending a group of
// errors flattens it.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr is a group of errors. It is never empty and never contains a
// nested group.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(points, "\n\t"))
}

// Unpack returns all errors of this group.
func (errs multiErr) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first error. The first error decides as
// the validation is expected to fail fast.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}
