// Package chunkcodec parses and serializes the payload of every PNG
// chunk type this codec understands.
package chunkcodec

import (
	"github.com/alice39/pngimage/internal/byteorder"
	"github.com/pkg/errors"
)

// IHDRLength is the fixed byte length of an IHDR payload.
const IHDRLength = 13

// IHDR is the decoded image header chunk.
type IHDR struct {
	Width, Height             uint32
	BitDepth, ColorType       uint8
	CompressionMethod         uint8
	FilterMethod              uint8
	InterlaceMethod           uint8
}

// ParseIHDR decodes and validates an IHDR payload against the subset
// of the PNG format this codec supports: bit depth 8 or 16,
// compression method 0, filter method 0, no interlacing.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != IHDRLength {
		return IHDR{}, errors.Errorf("chunkcodec: IHDR length %d, want %d", len(data), IHDRLength)
	}
	h := IHDR{
		Width:             byteorder.Uint32(data[0:4]),
		Height:            byteorder.Uint32(data[4:8]),
		BitDepth:          data[8],
		ColorType:         data[9],
		CompressionMethod: data[10],
		FilterMethod:      data[11],
		InterlaceMethod:   data[12],
	}
	if h.Width == 0 || h.Height == 0 {
		return IHDR{}, errors.New("chunkcodec: IHDR width/height must be non-zero")
	}
	if h.BitDepth != 8 && h.BitDepth != 16 {
		return IHDR{}, &UnsupportedFeatureError{What: "bit depth"}
	}
	if h.CompressionMethod != 0 {
		return IHDR{}, &UnsupportedFeatureError{What: "compression method"}
	}
	if h.FilterMethod != 0 {
		return IHDR{}, &UnsupportedFeatureError{What: "filter method"}
	}
	if h.InterlaceMethod != 0 {
		return IHDR{}, &UnsupportedFeatureError{What: "interlacing"}
	}
	return h, nil
}

// EncodeIHDR serializes h into its 13-byte wire form.
func EncodeIHDR(h IHDR) []byte {
	out := make([]byte, IHDRLength)
	byteorder.PutUint32(out[0:4], h.Width)
	byteorder.PutUint32(out[4:8], h.Height)
	out[8] = h.BitDepth
	out[9] = h.ColorType
	out[10] = h.CompressionMethod
	out[11] = h.FilterMethod
	out[12] = h.InterlaceMethod
	return out
}

// UnsupportedFeatureError reports a structurally valid but unsupported
// field value (e.g. an interlace method other than 0).
type UnsupportedFeatureError struct{ What string }

func (e *UnsupportedFeatureError) Error() string {
	return "chunkcodec: unsupported feature: " + e.What
}
