// Package deflatebridge adapts the PNG codec to an external DEFLATE
// implementation. PNG's compression method 0 is zlib-wrapped deflate
// (RFC 1950 over RFC 1951), so the bridge speaks zlib framing, not raw
// deflate.
//
// The bridge is deliberately thin: PNG treats DEFLATE as a black box
// that turns a byte slice into another byte slice, nothing more. It
// grows the output buffer until the stream reports completion and
// trims it to the exact produced length — callers never see a
// half-filled buffer.
package deflatebridge

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// Level mirrors the handful of compression levels PNG encoders
// typically expose; positive values are passed through to the
// underlying implementation after clamping.
type Level int

const (
	DefaultLevel Level = -1
	NoCompression Level = 0
	BestSpeed Level = 1
	BestCompression Level = 9
)

func (l Level) clamp() int {
	v := int(l)
	switch {
	case l == DefaultLevel:
		return zlib.DefaultCompression
	case v < zlib.NoCompression:
		return zlib.NoCompression
	case v > zlib.BestCompression:
		return zlib.BestCompression
	default:
		return v
	}
}

// Inflate decompresses a zlib-wrapped DEFLATE stream, as found
// concatenated across a PNG's IDAT chunks.
func Inflate(input []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, errors.Wrap(err, "deflatebridge: open zlib stream")
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "deflatebridge: inflate")
	}
	return out, nil
}

// Deflate compresses input at the given level, returning a
// zlib-wrapped DEFLATE stream suitable for an IDAT payload (or for
// zTXt/iCCP/compressed iTXt bodies, which use the same framing).
func Deflate(input []byte, level Level) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level.clamp())
	if err != nil {
		return nil, errors.Wrap(err, "deflatebridge: open zlib writer")
	}
	if _, err := w.Write(input); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, "deflatebridge: deflate")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "deflatebridge: close zlib writer")
	}
	return buf.Bytes(), nil
}
