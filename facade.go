package png

import (
	"github.com/alice39/pngimage/internal/colorcodec"
	"github.com/pkg/errors"
)

// Create returns a new width×height image in mode at 8-bit depth,
// every pixel opaque black (or palette index 0 for Indexed — callers
// must still call SetPalette before saving an Indexed image).
func Create(width, height int, mode ColorMode) (*Image, error) {
	return CreateDepth(width, height, mode, 8)
}

// CreateDepth is Create with an explicit bit depth (8 or 16).
func CreateDepth(width, height int, mode ColorMode, depth uint8) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if depth != 8 && depth != 16 {
		return nil, &UnsupportedFeatureError{What: "bit depth"}
	}
	img := &Image{
		width:  width,
		height: height,
		mode:   mode,
		depth:  depth,
		pixels: make([]colorcodec.Color, width*height),
	}
	if mode != Indexed {
		zero := colorcodec.Color{A: 0xffff}
		for i := range img.pixels {
			img.pixels[i] = zero
		}
	}
	return img, nil
}

// Dimensions returns the image's width and height in pixels.
func (i *Image) Dimensions() (width, height int) { return i.width, i.height }

// SetDimensions resizes the image, discarding existing pixel data and
// resetting every pixel to opaque black (or index 0). Metadata other
// than the pixel grid is left untouched.
func (i *Image) SetDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	i.width, i.height = width, height
	i.pixels = make([]colorcodec.Color, width*height)
	if i.mode != Indexed {
		zero := colorcodec.Color{A: 0xffff}
		for k := range i.pixels {
			i.pixels[k] = zero
		}
	}
	return nil
}

// ColorModeOf returns the image's current color mode.
func (i *Image) ColorModeOf() ColorMode { return i.mode }

// SetColorMode converts every pixel in place to mode. Converting an
// Indexed image to a non-Indexed mode resolves each pixel's palette
// index through PaletteOf() first. Converting *to* Indexed is not
// supported and returns ErrUnsupportedConversion; an Indexed image is
// built with Create(..., Indexed), SetPalette and SetPixel with
// palette indices.
func (i *Image) SetColorMode(mode ColorMode) error {
	if mode == i.mode {
		return nil
	}
	if mode == Indexed {
		return errors.Wrapf(ErrUnsupportedConversion, "%v to Indexed", i.mode)
	}
	if i.mode == Indexed {
		palette := make([][3]byte, len(i.palette))
		for k, p := range i.palette {
			palette[k] = [3]byte{p.R, p.G, p.B}
		}
		for k, c := range i.pixels {
			rgb, err := colorcodec.ResolveIndexed(c.Index, palette)
			if err != nil {
				return errors.Wrap(ErrUnsupportedConversion, err.Error())
			}
			converted, err := colorcodec.Convert(rgb, colorcodec.RGB, mode)
			if err != nil {
				return errors.Wrap(ErrUnsupportedConversion, err.Error())
			}
			i.pixels[k] = converted
		}
		i.mode = mode
		return nil
	}
	for k, c := range i.pixels {
		converted, err := colorcodec.Convert(c, i.mode, mode)
		if err != nil {
			return errors.Wrap(ErrUnsupportedConversion, err.Error())
		}
		i.pixels[k] = converted
	}
	i.mode = mode
	return nil
}

// BitDepth returns the image's bit depth (8 or 16).
func (i *Image) BitDepth() uint8 { return i.depth }

// Pixel returns the color at (x, y). Out-of-bounds coordinates
// silently return the zero Color; callers are expected to honour
// Dimensions themselves.
func (i *Image) Pixel(x, y int) colorcodec.Color {
	if !i.inBounds(x, y) {
		return colorcodec.Color{}
	}
	return i.pixels[i.index(x, y)]
}

// SetPixel sets the color at (x, y). Out-of-bounds coordinates are a
// silent no-op; callers are expected to honour Dimensions themselves.
func (i *Image) SetPixel(x, y int, c colorcodec.Color) {
	if !i.inBounds(x, y) {
		return
	}
	i.pixels[i.index(x, y)] = c
}

// Gamma returns the image's gAMA value (scaled by 100000) and whether
// one is set.
func (i *Image) Gamma() (value uint32, ok bool) {
	if i.gamma == nil {
		return 0, false
	}
	return *i.gamma, true
}

// SetGamma sets the gAMA chunk's value. A value of 0 removes the
// chunk, like ClearGamma.
func (i *Image) SetGamma(value uint32) {
	if value == 0 {
		i.gamma = nil
		return
	}
	i.gamma = &value
}

// ClearGamma removes the gAMA chunk.
func (i *Image) ClearGamma() { i.gamma = nil }

// ChromaticityOf returns the image's cHRM value and whether one is set.
func (i *Image) ChromaticityOf() (Chromaticity, bool) {
	if i.chromaticity == nil {
		return Chromaticity{}, false
	}
	return *i.chromaticity, true
}

// SetChromaticity sets the cHRM chunk's value. An all-zero value
// removes the chunk, like ClearChromaticity.
func (i *Image) SetChromaticity(c Chromaticity) {
	if c == (Chromaticity{}) {
		i.chromaticity = nil
		return
	}
	i.chromaticity = &c
}

// ClearChromaticity removes the cHRM chunk.
func (i *Image) ClearChromaticity() { i.chromaticity = nil }

// SignificantBitsOf returns the image's sBIT value and whether one is
// set.
func (i *Image) SignificantBitsOf() (SignificantBits, bool) {
	if i.significantBits == nil {
		return SignificantBits{}, false
	}
	return *i.significantBits, true
}

// SetSignificantBits sets the sBIT chunk's value. An all-zero value
// removes the chunk, like ClearSignificantBits.
func (i *Image) SetSignificantBits(s SignificantBits) {
	if s == (SignificantBits{}) {
		i.significantBits = nil
		return
	}
	i.significantBits = &s
}

// ClearSignificantBits removes the sBIT chunk.
func (i *Image) ClearSignificantBits() { i.significantBits = nil }

// SRGBIntent returns the image's sRGB rendering intent (0..3) and
// whether the sRGB chunk is present.
func (i *Image) SRGBIntent() (intent uint8, ok bool) {
	if i.srgbIntent == nil {
		return 0, false
	}
	return *i.srgbIntent, true
}

// SetSRGBIntent sets the sRGB chunk's rendering intent. Per the PNG
// spec, a stream should not carry both sRGB and iCCP; SetSRGBIntent
// does not enforce this, it only mirrors the original's leniency —
// ToBytes writes whatever is present.
func (i *Image) SetSRGBIntent(intent uint8) error {
	if intent > 3 {
		return errors.Errorf("png: sRGB rendering intent %d out of range 0..3", intent)
	}
	i.srgbIntent = &intent
	return nil
}

// ClearSRGBIntent removes the sRGB chunk.
func (i *Image) ClearSRGBIntent() { i.srgbIntent = nil }

// ICCProfileOf returns the image's ICC profile and whether one is set.
func (i *Image) ICCProfileOf() (ICCProfile, bool) {
	if i.iccProfile == nil {
		return ICCProfile{}, false
	}
	return *i.iccProfile, true
}

// SetICCProfile sets the iCCP chunk's profile. name must be 1..79
// Latin-1 characters.
func (i *Image) SetICCProfile(name string, profile []byte) error {
	if len(name) == 0 || len(name) > 79 {
		return ErrKeywordTooLong
	}
	cp := make([]byte, len(profile))
	copy(cp, profile)
	i.iccProfile = &ICCProfile{Name: name, Profile: cp}
	return nil
}

// ClearICCProfile removes the iCCP chunk.
func (i *Image) ClearICCProfile() { i.iccProfile = nil }

// TimestampOf returns the image's tIME value and whether one is set.
func (i *Image) TimestampOf() (Timestamp, bool) {
	if i.timestamp == nil {
		return Timestamp{}, false
	}
	return *i.timestamp, true
}

// SetTimestamp sets the tIME chunk's value. An all-zero value removes
// the chunk, like ClearTimestamp.
func (i *Image) SetTimestamp(t Timestamp) {
	if t == (Timestamp{}) {
		i.timestamp = nil
		return
	}
	i.timestamp = &t
}

// ClearTimestamp removes the tIME chunk.
func (i *Image) ClearTimestamp() { i.timestamp = nil }

// PaletteOf returns a copy of the image's palette.
func (i *Image) PaletteOf() []PaletteEntry {
	out := make([]PaletteEntry, len(i.palette))
	copy(out, i.palette)
	return out
}

// SetPalette replaces the image's palette. It is required before
// saving an Indexed image and has no effect on non-Indexed pixel data.
func (i *Image) SetPalette(entries []PaletteEntry) error {
	if len(entries) == 0 || len(entries) > 256 {
		return ErrPaletteTooLarge
	}
	i.palette = append([]PaletteEntry(nil), entries...)
	return nil
}

// SetTransparencyIndex sets per-palette-entry alpha for an Indexed
// image (tRNS).
func (i *Image) SetTransparencyIndex(alpha []byte) error {
	if i.mode != Indexed {
		return errors.New("png: indexed transparency requires Indexed color mode")
	}
	cp := make([]byte, len(alpha))
	copy(cp, alpha)
	i.transparency = &transparency{indexAlpha: cp}
	return nil
}

// SetTransparencyGray sets the single gray value treated as
// transparent for a Grayscale image (tRNS).
func (i *Image) SetTransparencyGray(key uint16) error {
	if i.mode != Grayscale {
		return errors.New("png: gray transparency key requires Grayscale color mode")
	}
	i.transparency = &transparency{grayKey: key, hasGray: true}
	return nil
}

// SetTransparencyRGB sets the single RGB triple treated as transparent
// for an RGB image (tRNS).
func (i *Image) SetTransparencyRGB(r, g, b uint16) error {
	if i.mode != RGB {
		return errors.New("png: RGB transparency key requires RGB color mode")
	}
	i.transparency = &transparency{rgbKeyR: r, rgbKeyG: g, rgbKeyB: b, hasRGB: true}
	return nil
}

// ClearTransparency removes the tRNS chunk.
func (i *Image) ClearTransparency() { i.transparency = nil }

// SetText adds or replaces a tEXt (or zTXt, if compress is true)
// entry. Keywords are unique: setting an existing keyword replaces it
// in place, preserving its position in TextKeys order.
func (i *Image) SetText(keyword, text string, compress bool) error {
	if len(keyword) == 0 || len(keyword) > 79 {
		return ErrKeywordTooLong
	}
	entry := TextEntry{Keyword: keyword, Text: text, Compressed: compress}
	i.upsertText(entry)
	return nil
}

// SetInternationalText adds or replaces an iTXt entry, which may carry
// a language tag, a translated keyword, and UTF-8 text.
func (i *Image) SetInternationalText(keyword, language, translatedKeyword, text string, compress bool) error {
	if len(keyword) == 0 || len(keyword) > 79 {
		return ErrKeywordTooLong
	}
	entry := TextEntry{
		Keyword:        keyword,
		Text:           text,
		Compressed:     compress,
		Language:       language,
		Translated:     translatedKeyword,
		International:  true,
	}
	i.upsertText(entry)
	return nil
}

func (i *Image) upsertText(entry TextEntry) {
	for k, existing := range i.text {
		if existing.Keyword == entry.Keyword {
			i.text[k] = entry
			return
		}
	}
	i.text = append(i.text, entry)
}

// Text returns the entry for keyword and whether it exists.
func (i *Image) Text(keyword string) (TextEntry, bool) {
	for _, e := range i.text {
		if e.Keyword == keyword {
			return e, true
		}
	}
	return TextEntry{}, false
}

// TextKeys returns the image's textual keywords in insertion order.
func (i *Image) TextKeys() []string {
	out := make([]string, len(i.text))
	for k, e := range i.text {
		out[k] = e.Keyword
	}
	return out
}

// DeleteText removes the entry for keyword, if present.
func (i *Image) DeleteText(keyword string) {
	for k, e := range i.text {
		if e.Keyword == keyword {
			i.text = append(i.text[:k], i.text[k+1:]...)
			return
		}
	}
}

// Copy returns a deep copy of the image.
func (i *Image) Copy() *Image {
	out := *i
	out.pixels = append([]colorcodec.Color(nil), i.pixels...)
	out.palette = append([]PaletteEntry(nil), i.palette...)
	out.text = append([]TextEntry(nil), i.text...)
	out.skippedChunks = append([]string(nil), i.skippedChunks...)
	if i.transparency != nil {
		t := *i.transparency
		t.indexAlpha = append([]byte(nil), i.transparency.indexAlpha...)
		out.transparency = &t
	}
	if i.gamma != nil {
		v := *i.gamma
		out.gamma = &v
	}
	if i.chromaticity != nil {
		v := *i.chromaticity
		out.chromaticity = &v
	}
	if i.significantBits != nil {
		v := *i.significantBits
		out.significantBits = &v
	}
	if i.srgbIntent != nil {
		v := *i.srgbIntent
		out.srgbIntent = &v
	}
	if i.iccProfile != nil {
		v := *i.iccProfile
		v.Profile = append([]byte(nil), i.iccProfile.Profile...)
		out.iccProfile = &v
	}
	if i.timestamp != nil {
		v := *i.timestamp
		out.timestamp = &v
	}
	return &out
}

// SkippedChunks returns the unknown ancillary chunk types Open
// ignored while reading img, in stream order. It is always empty for
// an image built with Create. The codec does not log these itself;
// callers that want a record of them can do so with this.
func (i *Image) SkippedChunks() []string {
	return append([]string(nil), i.skippedChunks...)
}

// Close releases img's resources. Image holds no OS handles, so Close
// is a no-op that is safe to call any number of times; it exists so
// callers can use a consistent defer img.Close() idiom across formats.
func (i *Image) Close() error { return nil }
