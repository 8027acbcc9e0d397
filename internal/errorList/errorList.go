package errorList

import (
	"errors"
	"fmt"
)

// ErrTooManyErrors is added to the ErrorList by the Trim method.
var ErrTooManyErrors = errors.New("too many errors")

// ErrorList wraps multiple errors as a single error.
type ErrorList []error

func (errs ErrorList) Error() string {
	switch len(errs) {
	case 0:
		return "<no errors>"
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs[1:]))
	}
}

// Unwrap allows errors.Is and errors.As to match any error in the list.
func (errs ErrorList) Unwrap() []error { return errs }

// ErrOrNil returns nil if ErrorList is empty, or the error otherwise.
func (errs ErrorList) ErrOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Append an error to the list.
//
// If err is an instance of ErrorList, the lists are concatenated together,
// otherwise err is appended at the end of the list. If err is nil, the list is
// returned unmodified.
func (errs ErrorList) Append(err error) ErrorList {
	if err == nil {
		return errs
	}
	if err, ok := err.(ErrorList); ok {
		return append(errs, err...)
	}
	return append(errs, err)
}

// Trim the error list if it has more than limit errors. If the list is trimmed,
// all extraneous errors are replaced with a single ErrTooManyErrors, making the
// returned ErrorList length of limit+1.
func (errs ErrorList) Trim(limit int) ErrorList {
	if len(errs) <= limit {
		return errs
	}

	return append(errs[:limit], ErrTooManyErrors)
}
