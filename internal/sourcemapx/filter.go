package sourcemapx

import (
	"fmt"
	"io"

	"github.com/gopherjs/emitmap/emitter"
)

// Filter implements io.Writer which extracts source map hints from the written
// stream and records them with the Emitter if it's not nil. Encoded hints are
// always filtered out of the output stream.
//
// A hint must be written within a single Write call.
type Filter struct {
	Writer  io.Writer
	Emitter *emitter.Emitter
}

func (f *Filter) Write(p []byte) (n int, err error) {
	var n2 int
	for {
		i := FindHint(p)
		w := p
		if i != -1 {
			w = p[:i]
		}

		if f.Emitter != nil && len(w) > 0 {
			if _, err := f.Emitter.Out(string(w), nil); err != nil {
				return n, err
			}
		}
		n2, err = f.Writer.Write(w)
		n += n2

		if err != nil || i == -1 {
			return
		}
		h, length := ReadHint(p[i:])
		if f.Emitter != nil {
			origin, err := h.origin()
			if err != nil {
				return n, fmt.Errorf("failed to unpack source map hint: %w", err)
			}
			// The mapping is recorded at the current position, which is where
			// the text following the hint starts.
			if _, err := f.Emitter.Out("", &origin); err != nil {
				return n, err
			}
		}
		p = p[i+length:]
		n += length
	}
}

func (h *Hint) origin() (emitter.Origin, error) {
	value, err := h.Unpack()
	if err != nil {
		return emitter.Origin{}, err
	}
	switch value := value.(type) {
	case emitter.Origin:
		return value, nil
	case Identifier:
		return value.origin(), nil
	default:
		return emitter.Origin{}, fmt.Errorf("unexpected source map hint type: %T", value)
	}
}
