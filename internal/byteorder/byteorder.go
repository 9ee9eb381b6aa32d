// Package byteorder provides the big-endian integer helpers PNG chunk
// payloads use throughout, regardless of host byte order.
package byteorder

import "encoding/binary"

// Uint16 reads a 16-bit big-endian integer.
func Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

// Uint32 reads a 32-bit big-endian integer.
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// PutUint16 writes a 16-bit big-endian integer.
func PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }

// PutUint32 writes a 32-bit big-endian integer.
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
