package chunkcodec

import "github.com/pkg/errors"

// RGB is one 8-bit palette entry.
type RGB struct{ R, G, B byte }

// ParsePLTE decodes a PLTE payload into an ordered RGB palette. The
// payload length must be a multiple of 3 and encode at most 256
// entries.
func ParsePLTE(data []byte) ([]RGB, error) {
	if len(data)%3 != 0 {
		return nil, errors.Errorf("chunkcodec: PLTE length %d not divisible by 3", len(data))
	}
	n := len(data) / 3
	if n == 0 || n > 256 {
		return nil, errors.Errorf("chunkcodec: PLTE has %d entries, want 1..256", n)
	}
	out := make([]RGB, n)
	for i := range out {
		out[i] = RGB{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return out, nil
}

// EncodePLTE serializes a palette to its wire form.
func EncodePLTE(p []RGB) []byte {
	out := make([]byte, 3*len(p))
	for i, c := range p {
		out[3*i] = c.R
		out[3*i+1] = c.G
		out[3*i+2] = c.B
	}
	return out
}

// TRNSKind distinguishes the three tRNS payload shapes.
type TRNSKind int

const (
	TRNSIndexed TRNSKind = iota
	TRNSGray
	TRNSRGB
)

// TRNS is a decoded transparency chunk.
type TRNS struct {
	Kind        TRNSKind
	IndexAlpha  []byte // TRNSIndexed: per-palette-index alpha, in palette order
	GrayKey     uint16 // TRNSGray: native-depth gray value treated as transparent
	RGBKeyR     uint16
	RGBKeyG     uint16
	RGBKeyB     uint16
}

// ParseTRNS decodes a tRNS payload per the owning image's color type.
// colorType must be 0 (gray), 2 (RGB) or 3 (indexed); 4 and 6 never
// carry tRNS since they already have a full alpha channel.
func ParseTRNS(data []byte, colorType byte) (TRNS, error) {
	switch colorType {
	case 0:
		if len(data) != 2 {
			return TRNS{}, errors.Errorf("chunkcodec: tRNS (gray) length %d, want 2", len(data))
		}
		return TRNS{Kind: TRNSGray, GrayKey: uint16(data[0])<<8 | uint16(data[1])}, nil
	case 2:
		if len(data) != 6 {
			return TRNS{}, errors.Errorf("chunkcodec: tRNS (RGB) length %d, want 6", len(data))
		}
		return TRNS{
			Kind:    TRNSRGB,
			RGBKeyR: uint16(data[0])<<8 | uint16(data[1]),
			RGBKeyG: uint16(data[2])<<8 | uint16(data[3]),
			RGBKeyB: uint16(data[4])<<8 | uint16(data[5]),
		}, nil
	case 3:
		if len(data) > 256 {
			return TRNS{}, errors.Errorf("chunkcodec: tRNS (indexed) length %d exceeds 256", len(data))
		}
		alpha := make([]byte, len(data))
		copy(alpha, data)
		return TRNS{Kind: TRNSIndexed, IndexAlpha: alpha}, nil
	default:
		return TRNS{}, errors.Errorf("chunkcodec: tRNS not valid for color type %d", colorType)
	}
}

// EncodeTRNS serializes t to its wire form.
func EncodeTRNS(t TRNS) []byte {
	switch t.Kind {
	case TRNSGray:
		return []byte{byte(t.GrayKey >> 8), byte(t.GrayKey)}
	case TRNSRGB:
		return []byte{
			byte(t.RGBKeyR >> 8), byte(t.RGBKeyR),
			byte(t.RGBKeyG >> 8), byte(t.RGBKeyG),
			byte(t.RGBKeyB >> 8), byte(t.RGBKeyB),
		}
	case TRNSIndexed:
		out := make([]byte, len(t.IndexAlpha))
		copy(out, t.IndexAlpha)
		return out
	}
	return nil
}
