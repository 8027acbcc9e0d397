package sourcemapx

import "github.com/gopherjs/emitmap/emitter"

// Identifier represents a generated code identifier with the associated
// original identifier information, which ends up in the "names" table of the
// source map.
type Identifier struct {
	Name         string         // Identifier to use in the generated code.
	OriginalName string         // Original identifier name.
	Origin       emitter.Origin // Original identifier position.
}

// String returns generated code identifier name.
func (i Identifier) String() string {
	return i.Name
}

// EncodeHint returns a string with an encoded source map hint. The hint can be
// inserted into the generated code to be later extracted by the Filter.
func (i Identifier) EncodeHint() string {
	return encodeHint(i)
}

// origin returns the identifier position, named after the original identifier.
func (i Identifier) origin() emitter.Origin {
	o := i.Origin
	o.Name = i.OriginalName
	return o
}
