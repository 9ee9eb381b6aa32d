package png

import "github.com/pkg/errors"

// ErrBadMagic is returned when a byte stream does not begin with the
// PNG signature.
var ErrBadMagic = errors.New("png: not a PNG stream (bad signature)")

// ErrDecompression wraps a failure from the DEFLATE bridge while
// inflating IDAT (or a compressed text/ICC) payload.
var ErrDecompression = errors.New("png: decompression failed")

// ErrCompression wraps a failure from the DEFLATE bridge while
// deflating pixel or text data on save.
var ErrCompression = errors.New("png: compression failed")

// ErrPaletteTooLarge is returned by SetPalette when given no entries
// or more than 256 entries.
var ErrPaletteTooLarge = errors.New("png: palette must have 1..256 entries")

// ErrKeywordTooLong is returned by the text setters when a keyword
// exceeds 79 Latin-1 characters or is empty.
var ErrKeywordTooLong = errors.New("png: keyword must be 1..79 characters")

// ErrUnsupportedConversion is returned by SetColorMode when the
// requested conversion has no defined semantics (currently: anything
// converting into Indexed). Converting an Indexed image to another
// mode is supported — it resolves each pixel's palette index first.
var ErrUnsupportedConversion = errors.New("png: unsupported color mode conversion")

// ErrInvalidDimensions is returned by Create/SetDimensions for a zero
// width or height.
var ErrInvalidDimensions = errors.New("png: width and height must be non-zero")

// CorruptChunkError reports a chunk that failed its CRC check or
// otherwise failed to parse.
type CorruptChunkError struct {
	ChunkType string
	Offset    int64
	Cause     error
}

func (e *CorruptChunkError) Error() string {
	return "png: corrupt " + e.ChunkType + " chunk: " + e.Cause.Error()
}

func (e *CorruptChunkError) Unwrap() error { return e.Cause }

// ChunkOrderViolationError reports a chunk appearing somewhere the
// PNG chunk-ordering rules (spec.md invariants I1/I2) forbid.
type ChunkOrderViolationError struct {
	ChunkType string
	Reason    string
}

func (e *ChunkOrderViolationError) Error() string {
	return "png: " + e.ChunkType + " out of order: " + e.Reason
}

// UnsupportedFeatureError reports a structurally valid PNG stream
// using a feature this codec does not implement (interlacing, bit
// depths other than 8/16, an unrecognized critical chunk).
type UnsupportedFeatureError struct{ What string }

func (e *UnsupportedFeatureError) Error() string {
	return "png: unsupported feature: " + e.What
}
