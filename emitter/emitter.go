package emitter

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"unicode/utf8"

	"github.com/neelance/sourcemap"
	log "github.com/sirupsen/logrus"
)

// Comment describes how the generated language spells the trailing source map
// reference: Prefix + URL + Suffix.
type Comment struct {
	Prefix string
	Suffix string
}

var (
	// CSSComment is the trailer understood by CSS tooling.
	CSSComment = Comment{Prefix: "/*# sourceMappingURL=", Suffix: " */"}
	// JSComment is the trailer understood by JavaScript tooling.
	JSComment = Comment{Prefix: "//# sourceMappingURL=", Suffix: "\n"}
)

// Options configure a single compilation.
type Options struct {
	// File is the name of the generated output file. Its base name becomes the
	// "file" field of the source map, and the external map is referenced as
	// File + ".map".
	File string
	// RootURL is recorded as the sourceRoot of the map. Omitted if empty.
	RootURL string
	// Inline embeds the map into the output as a data URI together with the
	// contents of all referenced sources.
	Inline bool
	// Comment is the trailer syntax, CSSComment if unset.
	Comment Comment
	// ReadFile is used to read original sources in inline mode, OSReader if nil.
	ReadFile ReadFileFunc
	// Codec receives the mapping table. If nil, a Document is created.
	Codec Codec
}

// Origin is the location in the original source a generated fragment comes
// from. Line and Column are 1-based, File is a file system path.
type Origin struct {
	Line   int
	Column int
	File   string
	Name   string // Original identifier name, optional.
}

func (o Origin) String() string {
	return fmt.Sprintf("%s:%d:%d", o.File, o.Line, o.Column)
}

// Emitter tracks the position in the generated output and records a source
// map entry for each fragment with a known origin.
//
// An Emitter serves exactly one compilation and must not be used concurrently.
type Emitter struct {
	options  Options
	codec    Codec
	cursor   Cursor
	contents map[string]bool
	compiled bool
}

// New creates an Emitter positioned at the beginning of the output.
func New(options Options) *Emitter {
	if options.Comment == (Comment{}) {
		options.Comment = CSSComment
	}
	if options.ReadFile == nil {
		options.ReadFile = OSReader
	}
	codec := options.Codec
	if codec == nil {
		file := ""
		if options.File != "" {
			file = path.Base(NormalizePath(options.File))
		}
		codec = NewDocument(file, options.RootURL)
	}
	return &Emitter{
		options:  options,
		codec:    codec,
		cursor:   NewCursor(),
		contents: map[string]bool{},
	}
}

// Cursor returns the position the next fragment will start at.
func (e *Emitter) Cursor() Cursor { return e.cursor }

// Out passes a generated fragment through the emitter and returns it
// unchanged. If origin is not nil and has a line number, a mapping from the
// current cursor to the origin is recorded before the cursor is advanced.
//
// In inline mode the first reference to each source file reads its content.
// Read failures are fatal to the compilation and are reported as
// *SourceReadError. Codec errors are returned as is.
func (e *Emitter) Out(fragment string, origin *Origin) (string, error) {
	if e.compiled {
		return "", ErrAlreadyCompiled
	}
	if origin != nil && origin.Line >= 1 {
		source := NormalizePath(origin.File)
		if e.options.Inline {
			if err := e.embed(source, origin.File); err != nil {
				return "", err
			}
		}
		if err := e.codec.AddMapping(newMapping(e.cursor, *origin, source)); err != nil {
			return "", err
		}
	}
	e.cursor.Advance(fragment)
	return fragment, nil
}

// newMapping is the only place where 1-based columns of the cursor and the
// origin are converted into the 0-based columns of the source map.
func newMapping(generated Cursor, origin Origin, source string) *sourcemap.Mapping {
	return &sourcemap.Mapping{
		GeneratedLine:   generated.Line,
		GeneratedColumn: zeroBased(generated.Column),
		OriginalFile:    source,
		OriginalLine:    origin.Line,
		OriginalColumn:  zeroBased(origin.Column),
		OriginalName:    origin.Name,
	}
}

func zeroBased(column int) int {
	if column < 1 {
		return 0
	}
	return column - 1
}

func (e *Emitter) embed(source, file string) error {
	if e.contents[source] {
		return nil
	}
	content, err := e.options.ReadFile(file)
	if err != nil {
		return &SourceReadError{Path: file, Err: err}
	}
	if !utf8.Valid(content) {
		return &SourceReadError{Path: file, Err: ErrInvalidUTF8}
	}
	if err := e.codec.SetSourceContent(source, string(content)); err != nil {
		return err
	}
	e.contents[source] = true
	log.Debugf("Embedded %d bytes of source content for %q.", len(content), source)
	return nil
}

// SourceMappingURL returns the URL the generated output refers to its source
// map by: a data URI with the whole encoded map in inline mode, otherwise the
// output file name with the ".map" suffix.
func (e *Emitter) SourceMappingURL() (string, error) {
	if !e.options.Inline {
		return NormalizePath(e.options.File) + ".map", nil
	}
	buf := &bytes.Buffer{}
	if err := e.codec.Encode(buf); err != nil {
		return "", err
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return "data:application/json;base64," + base64.StdEncoding.EncodeToString(payload), nil
}

// Compile finalizes the compilation by appending the source map reference to
// the generated text. It must be called once, after the last fragment. The
// map itself is not written anywhere, see WriteMap.
func (e *Emitter) Compile(text string) (string, error) {
	if e.compiled {
		return "", ErrAlreadyCompiled
	}
	url, err := e.SourceMappingURL()
	if err != nil {
		return "", err
	}
	e.compiled = true
	log.Debugf("Compiled source map for %q at %s.", e.options.File, e.cursor)
	return text + e.options.Comment.Prefix + url + e.options.Comment.Suffix, nil
}

// WriteMap writes the encoded source map, for persisting it as an external
// file next to the generated output.
func (e *Emitter) WriteMap(w io.Writer) error {
	return e.codec.Encode(w)
}
