package png

import (
	"bytes"
	"io"
	"os"

	"github.com/alice39/pngimage/internal/chunkcodec"
	"github.com/alice39/pngimage/internal/chunkio"
	"github.com/alice39/pngimage/internal/colorcodec"
	"github.com/alice39/pngimage/internal/deflatebridge"
	"github.com/alice39/pngimage/internal/scanline"
	"github.com/pkg/errors"
)

var signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// OpenFile reads and decodes the PNG file at path.
func OpenFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "png: open file")
	}
	defer f.Close()
	return Open(f)
}

// decodeState accumulates chunk data across the single pass Open makes
// over the stream, in the order PNG requires: IHDR first, PLTE/tRNS
// and the color-metadata ancillary chunks before the first IDAT, text
// and tIME chunks anywhere after IHDR, all IDAT chunks contiguous,
// IEND last.
type decodeState struct {
	haveIHDR  bool
	ihdr      chunkcodec.IHDR
	havePLTE  bool
	palette   []chunkcodec.RGB
	haveTRNS  bool
	trns      chunkcodec.TRNS
	idat      bytes.Buffer
	haveIDAT  bool
	idatDone  bool // true once a non-IDAT chunk has been seen after IDAT began
	img       *Image
	skipped   []string // unknown ancillary chunk types, in stream order
}

// Open decodes a PNG stream from r.
func Open(r io.Reader) (*Image, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, errors.Wrap(ErrBadMagic, err.Error())
	}
	if sig != signature {
		return nil, ErrBadMagic
	}

	var st decodeState
	var offset int64 = 8

	for {
		c, err := chunkio.Read(r, offset)
		if err != nil {
			if mismatch, ok := err.(*chunkio.CRCMismatchError); ok {
				return nil, &CorruptChunkError{ChunkType: mismatch.Type, Offset: mismatch.Offset, Cause: chunkio.ErrCRCMismatch}
			}
			if errors.Is(err, io.EOF) || errors.Is(errors.Cause(err), io.EOF) {
				return nil, errors.New("png: truncated stream, missing IEND")
			}
			return nil, errors.Wrap(err, "png: read chunk")
		}
		offset += int64(8 + len(c.Data) + 4)

		typ := c.TypeString()
		if typ == "IEND" {
			break
		}
		if err := st.dispatch(typ, c.Data); err != nil {
			return nil, err
		}
	}

	if !st.haveIHDR {
		return nil, &ChunkOrderViolationError{ChunkType: "IHDR", Reason: "missing"}
	}
	if !st.haveIDAT {
		return nil, &ChunkOrderViolationError{ChunkType: "IDAT", Reason: "missing"}
	}

	return st.finish()
}

func (st *decodeState) dispatch(typ string, data []byte) error {
	switch typ {
	case "IHDR":
		if st.haveIHDR {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "duplicate"}
		}
		h, err := chunkcodec.ParseIHDR(data)
		if err != nil {
			if uf, ok := err.(*chunkcodec.UnsupportedFeatureError); ok {
				return &UnsupportedFeatureError{What: uf.What}
			}
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		if _, ok := colorcodec.ModeFromColorType(h.ColorType); !ok {
			return &UnsupportedFeatureError{What: "color type"}
		}
		st.ihdr = h
		st.haveIHDR = true
		return nil

	case "IDAT":
		if !st.haveIHDR {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "before IHDR"}
		}
		if st.idatDone {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "not contiguous with earlier IDAT"}
		}
		st.haveIDAT = true
		st.idat.Write(data)
		return nil

	default:
		if st.haveIDAT {
			st.idatDone = true
		}
	}

	if !st.haveIHDR {
		return &ChunkOrderViolationError{ChunkType: typ, Reason: "before IHDR"}
	}

	switch typ {
	case "PLTE":
		if st.havePLTE {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "duplicate"}
		}
		if st.haveIDAT {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "after IDAT"}
		}
		pal, err := chunkcodec.ParsePLTE(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.palette = pal
		st.havePLTE = true
		return nil

	case "tRNS":
		if st.haveIDAT {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "after IDAT"}
		}
		mode, _ := colorcodec.ModeFromColorType(st.ihdr.ColorType)
		if mode == Indexed && !st.havePLTE {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "before PLTE"}
		}
		t, err := chunkcodec.ParseTRNS(data, st.ihdr.ColorType)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.trns = t
		st.haveTRNS = true
		return nil

	case "cHRM", "gAMA", "iCCP", "sBIT", "sRGB":
		if st.haveIDAT {
			return &ChunkOrderViolationError{ChunkType: typ, Reason: "after IDAT"}
		}
		return st.dispatchColorMetadata(typ, data)

	case "tEXt", "zTXt", "iTXt", "tIME":
		return st.dispatchText(typ, data)

	default:
		if chunkio.Critical(typ) {
			return &UnsupportedFeatureError{What: "critical chunk " + typ}
		}
		st.skipped = append(st.skipped, typ)
		return nil // unknown ancillary chunk, safely ignored
	}
}

func (st *decodeState) ensureImage() {
	if st.img == nil {
		mode, _ := colorcodec.ModeFromColorType(st.ihdr.ColorType)
		st.img = &Image{
			width:  int(st.ihdr.Width),
			height: int(st.ihdr.Height),
			mode:   mode,
			depth:  st.ihdr.BitDepth,
		}
	}
}

func (st *decodeState) dispatchColorMetadata(typ string, data []byte) error {
	st.ensureImage()
	switch typ {
	case "cHRM":
		c, err := chunkcodec.ParseChromaticity(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.chromaticity = &Chromaticity{
			WhiteX: c.WhiteX, WhiteY: c.WhiteY,
			RedX: c.RedX, RedY: c.RedY,
			GreenX: c.GreenX, GreenY: c.GreenY,
			BlueX: c.BlueX, BlueY: c.BlueY,
		}
	case "gAMA":
		g, err := chunkcodec.ParseGamma(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.gamma = &g
	case "iCCP":
		ic, err := chunkcodec.ParseICCP(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		profile, err := deflatebridge.Inflate(ic.CompressedProfile)
		if err != nil {
			return errors.Wrap(ErrDecompression, err.Error())
		}
		st.img.iccProfile = &ICCProfile{Name: ic.Name, Profile: profile}
	case "sBIT":
		s, err := chunkcodec.ParseSignificantBits(data, st.ihdr.ColorType)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.significantBits = &SignificantBits{Gray: s.Gray, Red: s.Red, Green: s.Green, Blue: s.Blue, Alpha: s.Alpha}
	case "sRGB":
		intent, err := chunkcodec.ParseSRGBIntent(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.srgbIntent = &intent
	}
	return nil
}

func (st *decodeState) dispatchText(typ string, data []byte) error {
	st.ensureImage()
	switch typ {
	case "tIME":
		t, err := chunkcodec.ParseTime(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.timestamp = &Timestamp{Year: t.Year, Month: t.Month, Day: t.Day, Hour: t.Hour, Minute: t.Minute, Second: t.Second}
	case "tEXt":
		t, err := chunkcodec.ParseTEXT(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		st.img.upsertText(TextEntry{Keyword: t.Keyword, Text: t.Text})
	case "zTXt":
		z, err := chunkcodec.ParseZTXT(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		text, err := deflatebridge.Inflate(z.CompressedText)
		if err != nil {
			return errors.Wrap(ErrDecompression, err.Error())
		}
		st.img.upsertText(TextEntry{Keyword: z.Keyword, Text: string(text), Compressed: true})
	case "iTXt":
		it, err := chunkcodec.ParseITXT(data)
		if err != nil {
			return &CorruptChunkError{ChunkType: typ, Cause: err}
		}
		text := it.Text
		if it.Compressed {
			inflated, err := deflatebridge.Inflate(it.Text)
			if err != nil {
				return errors.Wrap(ErrDecompression, err.Error())
			}
			text = inflated
		}
		st.img.upsertText(TextEntry{
			Keyword:       it.Keyword,
			Text:          string(text),
			Compressed:    it.Compressed,
			Language:      it.LanguageTag,
			Translated:    it.TranslatedKeyword,
			International: true,
		})
	}
	return nil
}

func (st *decodeState) finish() (*Image, error) {
	st.ensureImage()
	img := st.img
	mode := img.mode
	depth := img.depth
	width, height := img.width, img.height

	if mode == Indexed && !st.havePLTE {
		return nil, &ChunkOrderViolationError{ChunkType: "PLTE", Reason: "required for indexed color but missing"}
	}

	raw, err := deflatebridge.Inflate(st.idat.Bytes())
	if err != nil {
		return nil, errors.Wrap(ErrDecompression, err.Error())
	}

	bpp := colorcodec.BytesPerPixel(mode, depth)
	packed, err := scanline.Unfilter(raw, width, height, bpp)
	if err != nil {
		if uf, ok := err.(*scanline.UnsupportedFilterError); ok {
			return nil, &UnsupportedFeatureError{What: "filter type " + string(rune('0'+uf.Type))}
		}
		return nil, &CorruptChunkError{ChunkType: "IDAT", Cause: err}
	}

	img.pixels = make([]colorcodec.Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			start := (y*width + x) * bpp
			img.pixels[y*width+x] = colorcodec.Decode(packed[start:start+bpp], mode, depth)
		}
	}

	if st.havePLTE {
		img.palette = make([]PaletteEntry, len(st.palette))
		for k, c := range st.palette {
			img.palette[k] = PaletteEntry{R: c.R, G: c.G, B: c.B}
		}
	}
	if st.haveTRNS {
		switch st.trns.Kind {
		case chunkcodec.TRNSIndexed:
			img.transparency = &transparency{indexAlpha: st.trns.IndexAlpha}
		case chunkcodec.TRNSGray:
			img.transparency = &transparency{grayKey: st.trns.GrayKey, hasGray: true}
		case chunkcodec.TRNSRGB:
			img.transparency = &transparency{rgbKeyR: st.trns.RGBKeyR, rgbKeyG: st.trns.RGBKeyG, rgbKeyB: st.trns.RGBKeyB, hasRGB: true}
		}
	}

	img.skippedChunks = st.skipped

	return img, nil
}
