package chunkcodec

import (
	"github.com/alice39/pngimage/internal/byteorder"
	"github.com/pkg/errors"
)

// Chromaticity is a decoded cHRM chunk: white point and RGB primaries,
// each coordinate scaled by 1e5.
type Chromaticity struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

const chromaticityLength = 32

func ParseChromaticity(data []byte) (Chromaticity, error) {
	if len(data) != chromaticityLength {
		return Chromaticity{}, errors.Errorf("chunkcodec: cHRM length %d, want %d", len(data), chromaticityLength)
	}
	u32 := func(i int) uint32 { return byteorder.Uint32(data[4*i : 4*i+4]) }
	return Chromaticity{
		WhiteX: u32(0), WhiteY: u32(1),
		RedX: u32(2), RedY: u32(3),
		GreenX: u32(4), GreenY: u32(5),
		BlueX: u32(6), BlueY: u32(7),
	}, nil
}

func EncodeChromaticity(c Chromaticity) []byte {
	out := make([]byte, chromaticityLength)
	put := func(i int, v uint32) { byteorder.PutUint32(out[4*i:4*i+4], v) }
	put(0, c.WhiteX)
	put(1, c.WhiteY)
	put(2, c.RedX)
	put(3, c.RedY)
	put(4, c.GreenX)
	put(5, c.GreenY)
	put(6, c.BlueX)
	put(7, c.BlueY)
	return out
}

const gammaLength = 4

func ParseGamma(data []byte) (uint32, error) {
	if len(data) != gammaLength {
		return 0, errors.Errorf("chunkcodec: gAMA length %d, want %d", len(data), gammaLength)
	}
	return byteorder.Uint32(data), nil
}

func EncodeGamma(gamma uint32) []byte {
	out := make([]byte, gammaLength)
	byteorder.PutUint32(out, gamma)
	return out
}

// SRGBLength is the fixed byte length of an sRGB payload.
const SRGBLength = 1

func ParseSRGBIntent(data []byte) (uint8, error) {
	if len(data) != SRGBLength {
		return 0, errors.Errorf("chunkcodec: sRGB length %d, want %d", len(data), SRGBLength)
	}
	if data[0] > 3 {
		return 0, errors.Errorf("chunkcodec: sRGB rendering intent %d out of range", data[0])
	}
	return data[0], nil
}

func EncodeSRGBIntent(intent uint8) []byte { return []byte{intent} }

// TIMELength is the fixed byte length of a tIME payload.
const TIMELength = 7

// Time is a decoded tIME chunk.
type Time struct {
	Year                          uint16
	Month, Day, Hour, Minute, Second byte
}

func ParseTime(data []byte) (Time, error) {
	if len(data) != TIMELength {
		return Time{}, errors.Errorf("chunkcodec: tIME length %d, want %d", len(data), TIMELength)
	}
	return Time{
		Year:   byteorder.Uint16(data[0:2]),
		Month:  data[2],
		Day:    data[3],
		Hour:   data[4],
		Minute: data[5],
		Second: data[6],
	}, nil
}

func EncodeTime(t Time) []byte {
	out := make([]byte, TIMELength)
	byteorder.PutUint16(out[0:2], t.Year)
	out[2] = t.Month
	out[3] = t.Day
	out[4] = t.Hour
	out[5] = t.Minute
	out[6] = t.Second
	return out
}

// SignificantBits is a decoded sBIT chunk; the fields populated
// depend on color type (1, 2, 3 or 4 bytes on the wire).
type SignificantBits struct {
	Gray, Red, Green, Blue, Alpha byte
}

// ParseSignificantBits decodes an sBIT payload for the given color
// type, per spec.md's per-color-type shape table.
func ParseSignificantBits(data []byte, colorType byte) (SignificantBits, error) {
	switch colorType {
	case 0:
		if len(data) != 1 {
			return SignificantBits{}, errors.Errorf("chunkcodec: sBIT (gray) length %d, want 1", len(data))
		}
		return SignificantBits{Gray: data[0]}, nil
	case 2, 3:
		if len(data) != 3 {
			return SignificantBits{}, errors.Errorf("chunkcodec: sBIT length %d, want 3", len(data))
		}
		return SignificantBits{Red: data[0], Green: data[1], Blue: data[2]}, nil
	case 4:
		if len(data) != 2 {
			return SignificantBits{}, errors.Errorf("chunkcodec: sBIT (gray+alpha) length %d, want 2", len(data))
		}
		return SignificantBits{Gray: data[0], Alpha: data[1]}, nil
	case 6:
		if len(data) != 4 {
			return SignificantBits{}, errors.Errorf("chunkcodec: sBIT (RGBA) length %d, want 4", len(data))
		}
		return SignificantBits{Red: data[0], Green: data[1], Blue: data[2], Alpha: data[3]}, nil
	default:
		return SignificantBits{}, errors.Errorf("chunkcodec: unknown color type %d for sBIT", colorType)
	}
}

// EncodeSignificantBits serializes s for the given color type.
func EncodeSignificantBits(s SignificantBits, colorType byte) []byte {
	switch colorType {
	case 0:
		return []byte{s.Gray}
	case 2, 3:
		return []byte{s.Red, s.Green, s.Blue}
	case 4:
		return []byte{s.Gray, s.Alpha}
	case 6:
		return []byte{s.Red, s.Green, s.Blue, s.Alpha}
	}
	return nil
}
