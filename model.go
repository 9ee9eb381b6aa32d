// Package png implements a from-scratch PNG codec: decoding and
// encoding the image header, palette, transparency, color metadata,
// textual annotations and compressed, filtered pixel data that make
// up a PNG stream.
//
// The package works entirely in its own Image type rather than
// adapting to a generic image.Image; a PNG carries far more optional,
// order-sensitive metadata than Go's standard image model exposes,
// and round-tripping that metadata losslessly is a first-class goal
// here.
package png

import "github.com/alice39/pngimage/internal/colorcodec"

// ColorMode names a PNG color-type family, independent of bit depth.
type ColorMode = colorcodec.Mode

const (
	Grayscale      = colorcodec.Grayscale
	GrayscaleAlpha = colorcodec.GrayscaleAlpha
	RGB            = colorcodec.RGB
	RGBA           = colorcodec.RGBA
	Indexed        = colorcodec.Indexed
)

// PaletteEntry is one 8-bit RGB palette color.
type PaletteEntry struct {
	R, G, B byte
}

// Chromaticity holds the cHRM white point and RGB primaries, each
// coordinate scaled by 100000 (so 0.3127 is stored as 31270).
type Chromaticity struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

// SignificantBits records, per channel, how many of the stored bits
// are meaningful (sBIT). Only the fields relevant to the image's
// color mode are used.
type SignificantBits struct {
	Gray, Red, Green, Blue, Alpha byte
}

// Timestamp is the decoded tIME chunk: the image's last-modification
// time in UTC, to the second.
type Timestamp struct {
	Year                              uint16
	Month, Day, Hour, Minute, Second byte
}

// TextEntry is one textual annotation. Compressed and International
// distinguish the three textual chunk types (tEXt, zTXt, iTXt) on
// write; on read, all three are normalized into this one shape.
type TextEntry struct {
	Keyword     string
	Text        string
	Compressed  bool
	Language    string // iTXt only; empty for tEXt/zTXt
	Translated  string // iTXt only; empty for tEXt/zTXt
	International bool
}

// Image is a decoded (or in-progress) PNG image: its pixel grid plus
// every piece of metadata this codec understands. A nil pointer field
// (or, for sRGB, a nil *byte) means the corresponding chunk is absent;
// writing it out back-fills only the chunks actually present.
type Image struct {
	width, height int
	mode          ColorMode
	depth         uint8
	pixels        []colorcodec.Color // row-major, len == width*height

	palette      []PaletteEntry
	transparency *transparency

	gamma           *uint32
	chromaticity    *Chromaticity
	significantBits *SignificantBits
	srgbIntent      *uint8
	iccProfile      *ICCProfile
	timestamp       *Timestamp

	// text preserves insertion order; keywords are unique within it
	// (the last SetText/SetInternationalText for a keyword wins, same
	// slot, same position).
	text []TextEntry

	// skippedChunks lists unknown ancillary chunk types Open ignored,
	// in stream order. Empty for an image built with Create. The codec
	// itself never logs these; a caller that wants to knows to check
	// SkippedChunks after Open.
	skippedChunks []string
}

// ICCProfile is a decoded (decompressed) iCCP chunk.
type ICCProfile struct {
	Name    string
	Profile []byte
}

// transparency is the resolved tRNS payload in a mode-appropriate
// shape. Exactly one of the three groups of fields is meaningful,
// matching the image's color mode at the time it was set.
type transparency struct {
	indexAlpha []byte // Indexed: per-palette-entry alpha
	grayKey    uint16 // Grayscale: the gray value treated as transparent
	hasGray    bool
	rgbKeyR    uint16
	rgbKeyG    uint16
	rgbKeyB    uint16
	hasRGB     bool
}

func (i *Image) index(x, y int) int { return y*i.width + x }

func (i *Image) inBounds(x, y int) bool {
	return x >= 0 && x < i.width && y >= 0 && y < i.height
}
