package build

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gopherjs/emitmap/emitter"
	"github.com/gopherjs/emitmap/internal/errorList"
)

// maxTraceErrors limits the number of reported malformed trace lines.
const maxTraceErrors = 10

// Fragment is one recorded emission call.
type Fragment struct {
	Text   string
	Origin *emitter.Origin
}

type traceRecord struct {
	Text   *string      `json:"text"`
	Origin *traceOrigin `json:"origin,omitempty"`
}

type traceOrigin struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file"`
	Name   string `json:"name,omitempty"`
}

// ReadTrace parses a trace in the JSON Lines format, one emission call per
// line:
//
//	{"text": "body", "origin": {"line": 1, "column": 1, "file": "main.styl"}}
//	{"text": " {\n"}
//
// Blank lines are ignored. All malformed lines are reported together.
func ReadTrace(r io.Reader) ([]Fragment, error) {
	var (
		fragments []Fragment
		errs      errorList.ErrorList
	)
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if strings.TrimSpace(line) != "" {
			fragment, perr := parseTraceLine(line)
			if perr != nil {
				errs = errs.Append(fmt.Errorf("line %d: %w", lineNo, perr))
			} else {
				fragments = append(fragments, fragment)
			}
		}
		if err != nil {
			break
		}
	}
	if err := errs.Trim(maxTraceErrors).ErrOrNil(); err != nil {
		return nil, err
	}
	return fragments, nil
}

func parseTraceLine(line string) (Fragment, error) {
	var rec traceRecord
	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return Fragment{}, err
	}
	if rec.Text == nil {
		return Fragment{}, errors.New(`missing "text"`)
	}
	f := Fragment{Text: *rec.Text}
	if o := rec.Origin; o != nil {
		f.Origin = &emitter.Origin{Line: o.Line, Column: o.Column, File: o.File, Name: o.Name}
	}
	return f, nil
}

// WriteTrace writes fragments in the format understood by ReadTrace.
func WriteTrace(w io.Writer, fragments []Fragment) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range fragments {
		rec := traceRecord{Text: &f.Text}
		if o := f.Origin; o != nil {
			rec.Origin = &traceOrigin{Line: o.Line, Column: o.Column, File: o.File, Name: o.Name}
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
