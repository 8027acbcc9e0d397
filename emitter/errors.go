package emitter

import (
	"errors"
	"fmt"
)

// ErrAlreadyCompiled is returned when an Emitter is used after Compile.
var ErrAlreadyCompiled = errors.New("source map has already been compiled")

// SourceReadError indicates that the original source content couldn't be
// embedded into an inline source map.
type SourceReadError struct {
	Path string // Original source path, as given by the origin.
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("failed to read source content of %q: %s", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
