// Package scanline converts between a PNG's on-wire filtered scanline
// stream and a packed, unfiltered pixel grid.
//
// A filtered scanline is one leading filter-type byte followed by
// width*bpp pixel bytes; a filtered stream is height such scanlines
// back to back. bpp ("bytes per pixel") is the byte distance the Sub,
// Average and Paeth filters look back to find the "corresponding"
// byte from the previous pixel (Up only uses the byte directly above,
// in the previous row) — it is a byte count, not a pixel
// count, so multi-byte (16-bit) samples and multi-channel pixels both
// fall out of the same loop.
package scanline

import "github.com/pkg/errors"

// Filter type bytes, per the PNG spec.
const (
	FilterNone    = 0
	FilterSub     = 1
	FilterUp      = 2
	FilterAverage = 3
	FilterPaeth   = 4
)

// UnsupportedFilterError reports a filter-type byte outside 0..4.
type UnsupportedFilterError struct{ Type byte }

func (e *UnsupportedFilterError) Error() string {
	return "scanline: unsupported filter type"
}

// paeth is the Paeth predictor: pick whichever of a, b, c is closest
// to p = a+b-c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Unfilter reconstructs the packed pixel grid from a filtered scanline
// stream. filtered must be exactly height*(1+width*bpp) bytes.
//
// Filter bytes reference the *reconstructed* bytes of the current and
// previous row — never the still-filtered raw bytes — so each output
// byte is written back into place before moving on, exactly as the
// PNG spec requires.
func Unfilter(filtered []byte, width, height, bpp int) ([]byte, error) {
	rowBytes := width * bpp
	stride := 1 + rowBytes
	want := stride * height
	if len(filtered) != want {
		return nil, errors.Errorf("scanline: filtered stream is %d bytes, want %d", len(filtered), want)
	}

	out := make([]byte, rowBytes*height)
	var prevRow []byte // reconstructed previous row, nil for row 0

	for y := 0; y < height; y++ {
		rowStart := y * stride
		filterType := filtered[rowStart]
		row := filtered[rowStart+1 : rowStart+1+rowBytes]

		switch filterType {
		case FilterNone:
			// nothing to add
		case FilterSub:
			for x := 0; x < rowBytes; x++ {
				var a byte
				if x >= bpp {
					a = row[x-bpp]
				}
				row[x] += a
			}
		case FilterUp:
			for x := 0; x < rowBytes; x++ {
				var b byte
				if prevRow != nil {
					b = prevRow[x]
				}
				row[x] += b
			}
		case FilterAverage:
			for x := 0; x < rowBytes; x++ {
				var a, b int
				if x >= bpp {
					a = int(row[x-bpp])
				}
				if prevRow != nil {
					b = int(prevRow[x])
				}
				row[x] += byte((a + b) / 2)
			}
		case FilterPaeth:
			for x := 0; x < rowBytes; x++ {
				var a, b, c byte
				if x >= bpp {
					a = row[x-bpp]
				}
				if prevRow != nil {
					b = prevRow[x]
					if x >= bpp {
						c = prevRow[x-bpp]
					}
				}
				row[x] += paeth(a, b, c)
			}
		default:
			return nil, &UnsupportedFilterError{Type: filterType}
		}

		copy(out[y*rowBytes:(y+1)*rowBytes], row)
		prevRow = row
	}
	return out, nil
}

// Filter produces the on-wire filtered scanline stream for a packed
// pixel grid. This implementation always uses filter type 0 (None) —
// adaptive per-row filter selection is a deliberate non-goal, matching
// a decoder that must accept all five filter types but an encoder
// that only ever emits the simplest one.
func Filter(pixels []byte, width, height, bpp int) []byte {
	rowBytes := width * bpp
	stride := 1 + rowBytes
	out := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		out[y*stride] = FilterNone
		copy(out[y*stride+1:(y+1)*stride], pixels[y*rowBytes:(y+1)*rowBytes])
	}
	return out
}
