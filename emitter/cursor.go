package emitter

import (
	"fmt"
	"strings"
)

// Cursor is the position of the next character in the generated output.
// Both Line and Column are 1-based. Columns are measured in UTF-16 code units,
// the same way browsers interpret source map columns.
type Cursor struct {
	Line   int
	Column int
}

// NewCursor returns a cursor at the very beginning of the output.
func NewCursor() Cursor {
	return Cursor{Line: 1, Column: 1}
}

// Advance moves the cursor past the fragment.
//
// Only the number of newlines and the text after the last one matter, lengths
// of the intermediate lines are irrelevant.
func (c *Cursor) Advance(fragment string) {
	idx := strings.LastIndexByte(fragment, '\n')
	if idx == -1 {
		c.Column += columns(fragment)
		return
	}
	c.Line += strings.Count(fragment, "\n")
	c.Column = columns(fragment[idx:])
}

// columns returns the length of s in UTF-16 code units. Runes outside of the
// basic multilingual plane take a surrogate pair.
func columns(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line, c.Column)
}
