// Package chunkio reads and writes the length-prefixed, CRC-checksummed
// framing every PNG chunk shares: length(4) | type(4) | data(length) |
// crc(4), all integers big-endian.
package chunkio

import (
	"io"

	"github.com/alice39/pngimage/internal/byteorder"
	"github.com/alice39/pngimage/internal/pngcrc"
	"github.com/pkg/errors"
)

// Chunk is one decoded chunk: its 4-byte type and payload.
type Chunk struct {
	Type [4]byte
	Data []byte
}

// TypeString returns the chunk type as a string, e.g. "IHDR".
func (c Chunk) TypeString() string { return string(c.Type[:]) }

// Critical reports whether the chunk's type marks it critical (the
// first letter of the type is uppercase).
func (c Chunk) Critical() bool { return Critical(c.TypeString()) }

// Critical reports whether a chunk type name denotes a critical chunk.
func Critical(typ string) bool {
	return len(typ) == 4 && typ[0] >= 'A' && typ[0] <= 'Z'
}

// ErrCRCMismatch is wrapped with the offending chunk type when a
// chunk's trailing CRC does not match its type+data.
var ErrCRCMismatch = errors.New("chunkio: CRC mismatch")

// CRCMismatchError carries the chunk type and approximate stream
// offset of a failed CRC check.
type CRCMismatchError struct {
	Type   string
	Offset int64
}

func (e *CRCMismatchError) Error() string {
	return "chunkio: CRC mismatch in chunk " + e.Type
}

func (e *CRCMismatchError) Unwrap() error { return ErrCRCMismatch }

// Read consumes one chunk from r: a 4-byte length, a 4-byte type,
// length bytes of data, and a 4-byte CRC verified over type‖data.
// offset is the byte position of the chunk's length field, used only
// to annotate CRC failures.
func Read(r io.Reader, offset int64) (Chunk, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Chunk{}, errors.Wrap(err, "chunkio: read chunk header")
	}
	length := byteorder.Uint32(header[:4])

	var c Chunk
	copy(c.Type[:], header[4:8])

	c.Data = make([]byte, length)
	if length > 0 {
		if _, err := io.ReadFull(r, c.Data); err != nil {
			return Chunk{}, errors.Wrapf(err, "chunkio: read %s data", c.TypeString())
		}
	}

	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return Chunk{}, errors.Wrapf(err, "chunkio: read %s crc", c.TypeString())
	}
	want := byteorder.Uint32(crcBuf[:])
	if got := pngcrc.Of(c.Type, c.Data); got != want {
		return Chunk{}, &CRCMismatchError{Type: c.TypeString(), Offset: offset}
	}
	return c, nil
}

// Write emits one chunk: length, type, data, and a freshly computed CRC.
func Write(w io.Writer, typ string, data []byte) error {
	if len(typ) != 4 {
		return errors.Errorf("chunkio: chunk type %q must be 4 bytes", typ)
	}
	n := uint32(len(data))
	if uint64(n) != uint64(len(data)) {
		return errors.Errorf("chunkio: %s payload too large: %d bytes", typ, len(data))
	}

	var header [8]byte
	byteorder.PutUint32(header[:4], n)
	copy(header[4:8], typ)
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrapf(err, "chunkio: write %s header", typ)
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return errors.Wrapf(err, "chunkio: write %s data", typ)
		}
	}

	var typeArr [4]byte
	copy(typeArr[:], typ)
	var footer [4]byte
	byteorder.PutUint32(footer[:], pngcrc.Of(typeArr, data))
	if _, err := w.Write(footer[:]); err != nil {
		return errors.Wrapf(err, "chunkio: write %s crc", typ)
	}
	return nil
}
