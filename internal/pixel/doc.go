// Package pixel defines the canonical image representation used by every
// transformation engine in this module.
//
// A Buffer is a row-major sequence of RGBA pixels tagged with its width and
// height. The pixel at (x, y) lives at index y*width + x. Buffers are built
// from the flat channel-interleaved bytes a decoder or display surface works
// with, and convert back to the same layout with Bytes.
//
// # Coordinate System
//
// (0,0) is the top-left pixel, X grows to the right and Y grows downward,
// matching the convention of the imaging package.
//
// # Immutability
//
// Buffers are never modified after construction. Engines read a source Buffer
// and always allocate a fresh one for their output, so a single source may be
// shared between goroutines without locking.
//
// # Errors
//
// Validation failures are reported with the sentinel errors declared in
// errors.go. They are wrapped with additional context, so callers should test
// for them with errors.Is.
package pixel
