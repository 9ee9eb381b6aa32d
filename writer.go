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

// Save encodes img and writes it to the file at path, creating or
// truncating it.
func (i *Image) Save(path string) error {
	data, err := i.ToBytes()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "png: write file")
}

// ToBytes encodes img to its complete PNG byte representation at the
// default compression level.
func (i *Image) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := i.encodeTo(&buf, deflatebridge.DefaultLevel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (i *Image) encodeTo(w io.Writer, level deflatebridge.Level) error {
	if i.mode == Indexed && len(i.palette) == 0 {
		return errors.New("png: indexed image requires a palette; call SetPalette")
	}

	if _, err := w.Write(signature[:]); err != nil {
		return errors.Wrap(err, "png: write signature")
	}

	ihdr := chunkcodec.IHDR{
		Width:     uint32(i.width),
		Height:    uint32(i.height),
		BitDepth:  i.depth,
		ColorType: i.mode.ColorType(),
	}
	if err := chunkio.Write(w, "IHDR", chunkcodec.EncodeIHDR(ihdr)); err != nil {
		return err
	}

	if i.chromaticity != nil {
		c := chunkcodec.Chromaticity{
			WhiteX: i.chromaticity.WhiteX, WhiteY: i.chromaticity.WhiteY,
			RedX: i.chromaticity.RedX, RedY: i.chromaticity.RedY,
			GreenX: i.chromaticity.GreenX, GreenY: i.chromaticity.GreenY,
			BlueX: i.chromaticity.BlueX, BlueY: i.chromaticity.BlueY,
		}
		if err := chunkio.Write(w, "cHRM", chunkcodec.EncodeChromaticity(c)); err != nil {
			return err
		}
	}
	if i.gamma != nil {
		if err := chunkio.Write(w, "gAMA", chunkcodec.EncodeGamma(*i.gamma)); err != nil {
			return err
		}
	}
	if i.iccProfile != nil {
		compressed, err := deflatebridge.Deflate(i.iccProfile.Profile, level)
		if err != nil {
			return errors.Wrap(ErrCompression, err.Error())
		}
		ic := chunkcodec.ICCP{Name: i.iccProfile.Name, CompressedProfile: compressed}
		if err := chunkio.Write(w, "iCCP", chunkcodec.EncodeICCP(ic)); err != nil {
			return err
		}
	}
	if i.significantBits != nil {
		s := chunkcodec.SignificantBits{
			Gray: i.significantBits.Gray, Red: i.significantBits.Red,
			Green: i.significantBits.Green, Blue: i.significantBits.Blue,
			Alpha: i.significantBits.Alpha,
		}
		if err := chunkio.Write(w, "sBIT", chunkcodec.EncodeSignificantBits(s, i.mode.ColorType())); err != nil {
			return err
		}
	}
	if i.srgbIntent != nil {
		if err := chunkio.Write(w, "sRGB", chunkcodec.EncodeSRGBIntent(*i.srgbIntent)); err != nil {
			return err
		}
	}

	if i.mode == Indexed {
		pal := make([]chunkcodec.RGB, len(i.palette))
		for k, p := range i.palette {
			pal[k] = chunkcodec.RGB{R: p.R, G: p.G, B: p.B}
		}
		if err := chunkio.Write(w, "PLTE", chunkcodec.EncodePLTE(pal)); err != nil {
			return err
		}
	}

	if i.transparency != nil {
		var t chunkcodec.TRNS
		switch {
		case i.mode == Indexed:
			t = chunkcodec.TRNS{Kind: chunkcodec.TRNSIndexed, IndexAlpha: i.transparency.indexAlpha}
		case i.mode == Grayscale && i.transparency.hasGray:
			t = chunkcodec.TRNS{Kind: chunkcodec.TRNSGray, GrayKey: i.transparency.grayKey}
		case i.mode == RGB && i.transparency.hasRGB:
			t = chunkcodec.TRNS{
				Kind: chunkcodec.TRNSRGB, RGBKeyR: i.transparency.rgbKeyR,
				RGBKeyG: i.transparency.rgbKeyG, RGBKeyB: i.transparency.rgbKeyB,
			}
		}
		if err := chunkio.Write(w, "tRNS", chunkcodec.EncodeTRNS(t)); err != nil {
			return err
		}
	}

	for _, e := range i.text {
		if err := writeTextEntry(w, e, level); err != nil {
			return err
		}
	}

	if i.timestamp != nil {
		t := chunkcodec.Time{
			Year: i.timestamp.Year, Month: i.timestamp.Month, Day: i.timestamp.Day,
			Hour: i.timestamp.Hour, Minute: i.timestamp.Minute, Second: i.timestamp.Second,
		}
		if err := chunkio.Write(w, "tIME", chunkcodec.EncodeTime(t)); err != nil {
			return err
		}
	}

	idat, err := i.encodePixels(level)
	if err != nil {
		return err
	}
	if err := chunkio.Write(w, "IDAT", idat); err != nil {
		return err
	}

	return chunkio.Write(w, "IEND", nil)
}

func (i *Image) encodePixels(level deflatebridge.Level) ([]byte, error) {
	bpp := colorcodec.BytesPerPixel(i.mode, i.depth)
	packed := make([]byte, i.width*i.height*bpp)
	for y := 0; y < i.height; y++ {
		for x := 0; x < i.width; x++ {
			start := (y*i.width + x) * bpp
			colorcodec.Encode(i.pixels[y*i.width+x], i.mode, i.depth, packed[start:start+bpp])
		}
	}
	filtered := scanline.Filter(packed, i.width, i.height, bpp)
	compressed, err := deflatebridge.Deflate(filtered, level)
	if err != nil {
		return nil, errors.Wrap(ErrCompression, err.Error())
	}
	return compressed, nil
}

func writeTextEntry(w io.Writer, e TextEntry, level deflatebridge.Level) error {
	if e.International {
		text := []byte(e.Text)
		if e.Compressed {
			compressed, err := deflatebridge.Deflate(text, level)
			if err != nil {
				return errors.Wrap(ErrCompression, err.Error())
			}
			text = compressed
		}
		it := chunkcodec.ITXT{
			Keyword: e.Keyword, Compressed: e.Compressed,
			LanguageTag: e.Language, TranslatedKeyword: e.Translated, Text: text,
		}
		return chunkio.Write(w, "iTXt", chunkcodec.EncodeITXT(it))
	}
	if e.Compressed {
		compressed, err := deflatebridge.Deflate([]byte(e.Text), level)
		if err != nil {
			return errors.Wrap(ErrCompression, err.Error())
		}
		z := chunkcodec.ZTXT{Keyword: e.Keyword, CompressedText: compressed}
		return chunkio.Write(w, "zTXt", chunkcodec.EncodeZTXT(z))
	}
	return chunkio.Write(w, "tEXt", chunkcodec.EncodeTEXT(chunkcodec.TEXT{Keyword: e.Keyword, Text: e.Text}))
}
