package chunkcodec

import (
	"bytes"

	"github.com/pkg/errors"
)

// TEXT is a decoded tEXt chunk: an uncompressed Latin-1 keyword/text
// pair.
type TEXT struct {
	Keyword string
	Text    string
}

// ParseTEXT splits a tEXt payload on its null separator. The text
// portion is the remainder of the chunk and is not itself
// null-terminated.
func ParseTEXT(data []byte) (TEXT, error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return TEXT{}, errors.New("chunkcodec: tEXt missing keyword terminator")
	}
	if i == 0 || i > 79 {
		return TEXT{}, errors.Errorf("chunkcodec: tEXt keyword is %d bytes, want 1..79", i)
	}
	return TEXT{Keyword: string(data[:i]), Text: string(data[i+1:])}, nil
}

// EncodeTEXT serializes a TEXT chunk to its wire form.
func EncodeTEXT(t TEXT) []byte {
	out := make([]byte, 0, len(t.Keyword)+1+len(t.Text))
	out = append(out, t.Keyword...)
	out = append(out, 0)
	out = append(out, t.Text...)
	return out
}

// ZTXT is a decoded zTXt chunk: a keyword and DEFLATE-compressed
// Latin-1 text.
type ZTXT struct {
	Keyword           string
	CompressionMethod byte
	CompressedText    []byte
}

func ParseZTXT(data []byte) (ZTXT, error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return ZTXT{}, errors.New("chunkcodec: zTXt missing keyword terminator")
	}
	if i == 0 || i > 79 {
		return ZTXT{}, errors.Errorf("chunkcodec: zTXt keyword is %d bytes, want 1..79", i)
	}
	if i+1 >= len(data) {
		return ZTXT{}, errors.New("chunkcodec: zTXt missing compression method byte")
	}
	compressed := make([]byte, len(data)-i-2)
	copy(compressed, data[i+2:])
	return ZTXT{Keyword: string(data[:i]), CompressionMethod: data[i+1], CompressedText: compressed}, nil
}

func EncodeZTXT(z ZTXT) []byte {
	out := make([]byte, 0, len(z.Keyword)+2+len(z.CompressedText))
	out = append(out, z.Keyword...)
	out = append(out, 0, z.CompressionMethod)
	out = append(out, z.CompressedText...)
	return out
}

// ITXT is a decoded iTXt chunk: an internationalized keyword/text
// pair, optionally DEFLATE-compressed.
type ITXT struct {
	Keyword           string
	Compressed        bool
	CompressionMethod byte
	LanguageTag       string
	TranslatedKeyword string
	Text              []byte // UTF-8 if !Compressed, compressed bytes otherwise
}

func ParseITXT(data []byte) (ITXT, error) {
	i := bytes.IndexByte(data, 0)
	if i < 0 {
		return ITXT{}, errors.New("chunkcodec: iTXt missing keyword terminator")
	}
	if i == 0 || i > 79 {
		return ITXT{}, errors.Errorf("chunkcodec: iTXt keyword is %d bytes, want 1..79", i)
	}
	rest := data[i+1:]
	if len(rest) < 2 {
		return ITXT{}, errors.New("chunkcodec: iTXt truncated before compression flags")
	}
	compressionFlag, compressionMethod := rest[0], rest[1]
	rest = rest[2:]

	langEnd := bytes.IndexByte(rest, 0)
	if langEnd < 0 {
		return ITXT{}, errors.New("chunkcodec: iTXt missing language tag terminator")
	}
	lang := string(rest[:langEnd])
	rest = rest[langEnd+1:]

	keyEnd := bytes.IndexByte(rest, 0)
	if keyEnd < 0 {
		return ITXT{}, errors.New("chunkcodec: iTXt missing translated keyword terminator")
	}
	translated := string(rest[:keyEnd])
	text := make([]byte, len(rest)-keyEnd-1)
	copy(text, rest[keyEnd+1:])

	return ITXT{
		Keyword:           string(data[:i]),
		Compressed:        compressionFlag != 0,
		CompressionMethod: compressionMethod,
		LanguageTag:       lang,
		TranslatedKeyword: translated,
		Text:              text,
	}, nil
}

func EncodeITXT(t ITXT) []byte {
	out := make([]byte, 0, len(t.Keyword)+3+len(t.LanguageTag)+1+len(t.TranslatedKeyword)+1+len(t.Text))
	out = append(out, t.Keyword...)
	out = append(out, 0)
	if t.Compressed {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, t.CompressionMethod)
	out = append(out, t.LanguageTag...)
	out = append(out, 0)
	out = append(out, t.TranslatedKeyword...)
	out = append(out, 0)
	out = append(out, t.Text...)
	return out
}
