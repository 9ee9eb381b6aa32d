// Package pngcrc computes the CRC-32 checksum PNG chunks carry over
// their type and data fields.
//
// PNG's CRC uses the same reflected polynomial (0xEDB88320), seed
// (0xFFFFFFFF) and final XOR as the IEEE CRC-32 hash/crc32 already
// implements, so the table is the stdlib one rather than a hand-rolled
// copy — every PNG reader/writer in the retrieved examples (rmamba-image,
// shutej-apng) does the same.
package pngcrc

import "hash/crc32"

// Of returns the CRC-32 of typ (4 ASCII bytes) concatenated with data,
// as required to verify or emit a chunk's trailing CRC field.
func Of(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}
