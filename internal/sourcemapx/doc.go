// Package sourcemapx lets compilers that write their output into an io.Writer
// attach source locations to the written stream, to be recorded by an
// emitter.Emitter.
//
// The code generator writes hints inline, right before the text they describe.
// A hint is marked by the special `\b` (0x08) magic byte, followed by a
// variable-length sequence of bytes, which can be extracted from the byte slice
// using ReadHint() function.
//
// '\b' was chosen as a magic symbol because it would never occur unescaped in
// the generated code, other than when explicitly inserted by a hint. See Hint
// type documentation for the details of the encoded format.
//
// The following payloads are supported:
//
//   - emitter.Origin indicates the position in the original source the next
//     written text corresponds to.
//   - Identifier maps a generated identifier to the original name it
//     represents.
//
// Filter type extracts the hints from the written stream and passes the text
// with its origin to the emitter. It also ensures that the encoded hints don't
// make it into the final output.
package sourcemapx
