package errorList

import (
	"errors"
	"io/fs"
	"testing"
)

func TestErrorList(t *testing.T) {
	var errs ErrorList
	if err := errs.ErrOrNil(); err != nil {
		t.Fatalf("Got: empty list ErrOrNil() = %v. Want: nil.", err)
	}

	errs = errs.Append(nil)
	errs = errs.Append(fs.ErrNotExist)
	if got, want := errs.Error(), fs.ErrNotExist.Error(); got != want {
		t.Errorf("Got: single error message %q. Want: %q.", got, want)
	}

	errs = errs.Append(ErrorList{errors.New("a"), errors.New("b")})
	if got, want := errs.Error(), "file does not exist (and 2 more errors)"; got != want {
		t.Errorf("Got: error message %q. Want: %q.", got, want)
	}
	if !errors.Is(errs.ErrOrNil(), fs.ErrNotExist) {
		t.Errorf("Got: errors.Is(list, fs.ErrNotExist) = false. Want: true.")
	}

	trimmed := errs.Trim(1)
	if len(trimmed) != 2 || trimmed[1] != ErrTooManyErrors {
		t.Errorf("Got: trimmed list %v. Want: first error followed by ErrTooManyErrors.", trimmed)
	}
}
