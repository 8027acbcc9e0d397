package emitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/neelance/sourcemap"
)

// ErrInvalidMapping is returned by Document.AddMapping for entries that can't
// be represented in a source map.
var ErrInvalidMapping = errors.New("invalid source map entry")

// Codec accumulates mapping entries and embedded source contents and encodes
// them into the source map wire format.
//
// Emitter only ever appends to the codec and never reads the table back.
type Codec interface {
	AddMapping(m *sourcemap.Mapping) error
	SetSourceContent(source, content string) error
	Encode(w io.Writer) error
}

// Document is the default Codec, producing revision 3 source maps on top of
// github.com/neelance/sourcemap, extended with the sourcesContent field.
type Document struct {
	m        sourcemap.Map
	contents map[string]string
}

var _ Codec = (*Document)(nil)

// NewDocument creates an empty source map for the given generated file name.
// An empty sourceRoot is omitted from the encoded document.
func NewDocument(file, sourceRoot string) *Document {
	return &Document{
		m:        sourcemap.Map{Version: 3, File: file, SourceRoot: sourceRoot},
		contents: map[string]string{},
	}
}

// AddMapping appends an entry to the mapping table. Lines are 1-based, columns
// are 0-based.
func (d *Document) AddMapping(m *sourcemap.Mapping) error {
	if m.GeneratedLine < 1 || m.GeneratedColumn < 0 {
		return fmt.Errorf("%w: generated position %d:%d", ErrInvalidMapping, m.GeneratedLine, m.GeneratedColumn)
	}
	if m.OriginalFile != "" && (m.OriginalLine < 1 || m.OriginalColumn < 0) {
		return fmt.Errorf("%w: original position %s:%d:%d", ErrInvalidMapping, m.OriginalFile, m.OriginalLine, m.OriginalColumn)
	}
	if m.OriginalFile == "" && (m.OriginalLine != 0 || m.OriginalName != "") {
		return fmt.Errorf("%w: original position without a source", ErrInvalidMapping)
	}
	d.m.AddMapping(m)
	return nil
}

// SetSourceContent attaches the full text of the original source. Setting the
// content for the same source again replaces it.
func (d *Document) SetSourceContent(source, content string) error {
	if source == "" {
		return fmt.Errorf("%w: source content without a source name", ErrInvalidMapping)
	}
	d.contents[source] = content
	return nil
}

// wireMap is the JSON layout of a revision 3 source map.
type wireMap struct {
	Version        int       `json:"version"`
	File           string    `json:"file,omitempty"`
	SourceRoot     string    `json:"sourceRoot,omitempty"`
	Sources        []string  `json:"sources"`
	SourcesContent []*string `json:"sourcesContent,omitempty"`
	Names          []string  `json:"names"`
	Mappings       string    `json:"mappings"`
}

// Encode writes the source map as a single line of JSON terminated by a
// newline. Mappings are ordered by generated position, sources and names by
// first use.
func (d *Document) Encode(w io.Writer) error {
	d.m.EncodeMappings()

	wm := wireMap{
		Version:    d.m.Version,
		File:       d.m.File,
		SourceRoot: d.m.SourceRoot,
		Sources:    d.m.Sources,
		Names:      d.m.Names,
		Mappings:   d.m.Mappings,
	}
	if wm.Sources == nil {
		wm.Sources = []string{}
	}
	if wm.Names == nil {
		wm.Names = []string{}
	}
	if len(d.contents) > 0 {
		wm.SourcesContent = make([]*string, len(wm.Sources))
		for i, source := range wm.Sources {
			if content, ok := d.contents[source]; ok {
				wm.SourcesContent[i] = &content
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wm); err != nil {
		return fmt.Errorf("failed to encode source map: %w", err)
	}
	return nil
}
