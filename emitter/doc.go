// Package emitter produces source maps for generated text, intended to work
// with github.com/neelance/sourcemap.
//
// A compiler passes every fragment of its output through Emitter.Out, together
// with the original source location the fragment was produced from, if known.
// The emitter keeps track of the line and column in the generated output and
// records one mapping per attributed fragment:
//
//	e := emitter.New(emitter.Options{File: "main.css"})
//	css, _ := e.Out("body", &emitter.Origin{Line: 1, Column: 1, File: "main.styl"})
//	more, _ := e.Out(" {\n", nil)
//	out, err := e.Compile(css + more)
//
// Compile appends the trailing sourceMappingURL comment, which either refers to
// an external ".map" file (see Emitter.WriteMap) or, in inline mode, contains
// the whole map together with the original sources as a base64 data URI.
package emitter
