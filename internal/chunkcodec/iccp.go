package chunkcodec

import (
	"bytes"

	"github.com/pkg/errors"
)

// ICCP is a decoded iCCP chunk: a Latin-1 profile name and the
// (still DEFLATE-compressed) profile bytes. Decompression is the
// caller's job — the chunk codec layer only frames the payload.
type ICCP struct {
	Name              string
	CompressionMethod byte
	CompressedProfile []byte
}

// ParseICCP splits an iCCP payload into name, compression method and
// compressed profile bytes.
func ParseICCP(data []byte) (ICCP, error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return ICCP{}, errors.New("chunkcodec: iCCP missing name terminator")
	}
	if i > 79 {
		return ICCP{}, errors.Errorf("chunkcodec: iCCP name is %d bytes, want <=79", i)
	}
	if i+1 >= len(data) {
		return ICCP{}, errors.New("chunkcodec: iCCP missing compression method byte")
	}
	profile := make([]byte, len(data)-i-2)
	copy(profile, data[i+2:])
	return ICCP{
		Name:              string(data[:i]),
		CompressionMethod: data[i+1],
		CompressedProfile: profile,
	}, nil
}

// EncodeICCP serializes an ICCP chunk to its wire form.
func EncodeICCP(c ICCP) []byte {
	out := make([]byte, 0, len(c.Name)+2+len(c.CompressedProfile))
	out = append(out, c.Name...)
	out = append(out, 0, c.CompressionMethod)
	out = append(out, c.CompressedProfile...)
	return out
}
