// Package colorcodec maps between PNG's (color-type, bit-depth) pixel
// byte layouts and a high-level Color value, and converts Color values
// between modes.
package colorcodec

import "github.com/pkg/errors"

// Mode is the PNG color-type family, independent of bit depth.
type Mode int

const (
	Grayscale Mode = iota
	GrayscaleAlpha
	RGB
	RGBA
	Indexed
)

// ColorType returns the on-wire PNG color-type byte.
func (m Mode) ColorType() byte {
	switch m {
	case Grayscale:
		return 0
	case RGB:
		return 2
	case Indexed:
		return 3
	case GrayscaleAlpha:
		return 4
	case RGBA:
		return 6
	}
	return 0
}

// ModeFromColorType maps a wire color-type byte back to a Mode.
func ModeFromColorType(ct byte) (Mode, bool) {
	switch ct {
	case 0:
		return Grayscale, true
	case 2:
		return RGB, true
	case 3:
		return Indexed, true
	case 4:
		return GrayscaleAlpha, true
	case 6:
		return RGBA, true
	default:
		return 0, false
	}
}

// String names a Mode for diagnostics.
func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "Grayscale"
	case GrayscaleAlpha:
		return "GrayscaleAlpha"
	case RGB:
		return "RGB"
	case RGBA:
		return "RGBA"
	case Indexed:
		return "Indexed"
	}
	return "Unknown"
}

// Channels returns the sample count per pixel for mode.
func (m Mode) Channels() int {
	switch m {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// BytesPerPixel returns the number of bytes a single pixel occupies
// for the given mode and bit depth. Indexed is always 8-bit regardless
// of depth in this implementation (depth-1/2/4 palettes are a
// documented restriction, see DESIGN.md).
func BytesPerPixel(m Mode, depth uint8) int {
	if m == Indexed {
		return 1
	}
	bytesPerSample := 1
	if depth == 16 {
		bytesPerSample = 2
	}
	return m.Channels() * bytesPerSample
}

// Color is a generic pixel value; only the fields relevant to the
// current color mode are meaningful. Samples are always carried in a
// 16-bit domain: they round-trip losslessly through 16-bit depth, while
// 8-bit depth keeps only the high byte and decodes a byte v as v<<8|v.
type Color struct {
	Gray  uint16
	R, G, B uint16
	A     uint16
	Index uint8
}

func GrayColor(v uint16) Color            { return Color{Gray: v, A: 0xffff} }
func GrayAlphaColor(v, a uint16) Color    { return Color{Gray: v, A: a} }
func RGBColor(r, g, b uint16) Color       { return Color{R: r, G: g, B: b, A: 0xffff} }
func RGBAColor(r, g, b, a uint16) Color   { return Color{R: r, G: g, B: b, A: a} }
func IndexColor(i uint8) Color            { return Color{Index: i} }

// Decode reads one pixel's worth of bytes (BytesPerPixel(mode, depth)
// of them) and returns the Color it encodes.
func Decode(data []byte, m Mode, depth uint8) Color {
	if depth == 16 {
		sample := func(i int) uint16 {
			return uint16(data[2*i])<<8 | uint16(data[2*i+1])
		}
		switch m {
		case Grayscale:
			return GrayColor(sample(0))
		case GrayscaleAlpha:
			return GrayAlphaColor(sample(0), sample(1))
		case RGB:
			return RGBColor(sample(0), sample(1), sample(2))
		case RGBA:
			return RGBAColor(sample(0), sample(1), sample(2), sample(3))
		}
	}

	widen := func(v byte) uint16 { return uint16(v)<<8 | uint16(v) }
	switch m {
	case Grayscale:
		return GrayColor(widen(data[0]))
	case GrayscaleAlpha:
		return GrayAlphaColor(widen(data[0]), widen(data[1]))
	case RGB:
		return RGBColor(widen(data[0]), widen(data[1]), widen(data[2]))
	case RGBA:
		return RGBAColor(widen(data[0]), widen(data[1]), widen(data[2]), widen(data[3]))
	case Indexed:
		return IndexColor(data[0])
	}
	return Color{}
}

// Encode writes c into out (which must be BytesPerPixel(mode, depth)
// bytes long) in the byte layout mode/depth requires.
func Encode(c Color, m Mode, depth uint8, out []byte) {
	if depth == 16 {
		put := func(i int, v uint16) {
			out[2*i] = byte(v >> 8)
			out[2*i+1] = byte(v)
		}
		switch m {
		case Grayscale:
			put(0, c.Gray)
		case GrayscaleAlpha:
			put(0, c.Gray)
			put(1, c.A)
		case RGB:
			put(0, c.R)
			put(1, c.G)
			put(2, c.B)
		case RGBA:
			put(0, c.R)
			put(1, c.G)
			put(2, c.B)
			put(3, c.A)
		}
		return
	}

	// Narrow 16→8 by taking the high byte, not "& 0xFF" (the low byte):
	// the high byte is the value's best 8-bit approximation.
	narrow := func(v uint16) byte { return byte(v >> 8) }
	switch m {
	case Grayscale:
		out[0] = narrow(c.Gray)
	case GrayscaleAlpha:
		out[0] = narrow(c.Gray)
		out[1] = narrow(c.A)
	case RGB:
		out[0] = narrow(c.R)
		out[1] = narrow(c.G)
		out[2] = narrow(c.B)
	case RGBA:
		out[0] = narrow(c.R)
		out[1] = narrow(c.G)
		out[2] = narrow(c.B)
		out[3] = narrow(c.A)
	case Indexed:
		out[0] = c.Index
	}
}

// ErrUnsupportedConversion is returned by Convert when converting to
// Indexed without a palette lookup, which the color engine does not perform
// on its own (spec.md §4.6: "conversion *to* indexed ... may fail").
// It is also returned when converting from Indexed, whose index must
// first be resolved with ResolveIndexed.
var ErrUnsupportedConversion = errors.New("colorcodec: unsupported conversion")

// Convert maps a Color from one mode's semantics to another's. Alpha
// is preserved where both modes carry it and defaults to fully opaque
// otherwise. Converting away from Indexed requires the caller to have
// already resolved the palette index to RGB via ResolveIndexed;
// converting *to* Indexed is not supported here.
func Convert(c Color, from, to Mode) (Color, error) {
	if to == Indexed {
		return Color{}, errors.Wrapf(ErrUnsupportedConversion, "%v to Indexed", from)
	}
	if from == Indexed {
		return Color{}, errors.Wrap(ErrUnsupportedConversion, "Indexed source requires palette resolution first")
	}

	fromHasAlpha := from == GrayscaleAlpha || from == RGBA
	toHasAlpha := to == GrayscaleAlpha || to == RGBA
	alpha := uint16(0xffff)
	if fromHasAlpha && toHasAlpha {
		alpha = c.A
	}

	switch to {
	case Grayscale, GrayscaleAlpha:
		gray := c.Gray
		if from == RGB || from == RGBA {
			gray = uint16((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
		}
		return Color{Gray: gray, A: alpha}, nil
	case RGB, RGBA:
		r, g, b := c.R, c.G, c.B
		if from == Grayscale || from == GrayscaleAlpha {
			r, g, b = c.Gray, c.Gray, c.Gray
		}
		return Color{R: r, G: g, B: b, A: alpha}, nil
	}
	return Color{}, errors.Wrapf(ErrUnsupportedConversion, "%v to %v", from, to)
}

// ResolveIndexed looks up the RGB triple a palette index names, used
// before Convert when the source mode is Indexed.
func ResolveIndexed(index uint8, palette [][3]byte) (Color, error) {
	if int(index) >= len(palette) {
		return Color{}, errors.Errorf("colorcodec: palette index %d out of range (palette has %d entries)", index, len(palette))
	}
	p := palette[index]
	return RGBColor(uint16(p[0])<<8|uint16(p[0]), uint16(p[1])<<8|uint16(p[1]), uint16(p[2])<<8|uint16(p[2])), nil
}
