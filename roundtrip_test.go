package png

import (
	"bytes"
	"testing"

	"github.com/alice39/pngimage/internal/byteorder"
	"github.com/alice39/pngimage/internal/colorcodec"
	"github.com/alice39/pngimage/internal/pngcrc"
)

func TestRoundTrip2x2RGBA8(t *testing.T) {
	img, err := Create(2, 2, RGBA)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	colors := [][2]int{}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			colors = append(colors, [2]int{x, y})
			img.SetPixel(x, y, colorcodec.RGBAColor(uint16(x*0x2727), uint16(y*0x4e4e), 0x8080, 0xffff))
		}
	}
	img.SetGamma(45455)
	if err := img.SetText("Comment", "round trip test", false); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	reopened, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	w, h := reopened.Dimensions()
	if w != 2 || h != 2 {
		t.Fatalf("Dimensions() = %d,%d, want 2,2", w, h)
	}
	for _, xy := range colors {
		x, y := xy[0], xy[1]
		got := reopened.Pixel(x, y)
		want := img.Pixel(x, y)
		if got != want {
			t.Errorf("Pixel(%d,%d) = %+v, want %+v", x, y, got, want)
		}
	}
	if g, ok := reopened.Gamma(); !ok || g != 45455 {
		t.Fatalf("Gamma() = %d, %v, want 45455, true", g, ok)
	}
	if e, ok := reopened.Text("Comment"); !ok || e.Text != "round trip test" {
		t.Fatalf("Text(Comment) = %+v, %v", e, ok)
	}
}

func TestRoundTripIndexedWithTransparency(t *testing.T) {
	img, err := Create(2, 1, Indexed)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := img.SetPalette([]PaletteEntry{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	if err := img.SetTransparencyIndex([]byte{0, 255}); err != nil {
		t.Fatalf("SetTransparencyIndex: %v", err)
	}
	img.SetPixel(0, 0, colorcodec.IndexColor(0))
	img.SetPixel(1, 0, colorcodec.IndexColor(1))

	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	reopened, err := Open(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := reopened.Pixel(0, 0).Index; got != 0 {
		t.Errorf("Pixel(0,0).Index = %d, want 0", got)
	}
	if got := reopened.Pixel(1, 0).Index; got != 1 {
		t.Errorf("Pixel(1,0).Index = %d, want 1", got)
	}
	pal := reopened.PaletteOf()
	if len(pal) != 2 || pal[0].R != 255 || pal[1].G != 255 {
		t.Fatalf("PaletteOf() = %+v", pal)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte("not a png file at all, just text")))
	if err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestOpenRejectsBadCRC(t *testing.T) {
	img, _ := Create(1, 1, Grayscale)
	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	// Flip a bit inside the IHDR chunk's data, leaving its CRC stale.
	data[8+8] ^= 0xff

	_, err = Open(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for corrupted chunk data")
	}
	if _, ok := err.(*CorruptChunkError); !ok {
		t.Fatalf("expected *CorruptChunkError, got %T: %v", err, err)
	}
}

func TestOpenRejectsChunkOrderViolation(t *testing.T) {
	img, _ := Create(1, 1, Grayscale)
	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	// Move IEND's 12 bytes to immediately after the signature+IHDR,
	// simulating a stream that never has IDAT at all once the real
	// IDAT/IEND pair is dropped: IEND is now the second chunk, so
	// Open must fail for missing IDAT rather than silently accepting
	// an imageless stream.
	sigAndIHDR := data[:8+8+13+4]
	iend := data[len(data)-12:]
	truncated := append(append([]byte{}, sigAndIHDR...), iend...)

	_, err = Open(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("expected error for stream missing IDAT")
	}
	if _, ok := err.(*ChunkOrderViolationError); !ok {
		t.Fatalf("expected *ChunkOrderViolationError, got %T: %v", err, err)
	}
}

func TestOpenRejectsPLTEAfterIDAT(t *testing.T) {
	img, err := Create(1, 1, Indexed)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := img.SetPalette([]PaletteEntry{{R: 1, G: 2, B: 3}}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}

	// Locate the PLTE chunk and the IDAT chunk, then splice a copy of
	// PLTE in right before IEND (i.e. after IDAT).
	idatOff := bytes.Index(data, []byte("IDAT")) - 4
	iendOff := bytes.Index(data, []byte("IEND")) - 4
	plteOff := bytes.Index(data, []byte("PLTE")) - 4
	plteLen := 4 + 4 + 3 + 4 // length + type + 1 RGB entry + crc
	plteChunk := data[plteOff : plteOff+plteLen]

	reordered := append(append([]byte{}, data[:iendOff]...), plteChunk...)
	reordered = append(reordered, data[iendOff:]...)
	_ = idatOff

	_, err = Open(bytes.NewReader(reordered))
	if err == nil {
		t.Fatal("expected error for PLTE after IDAT")
	}
	if _, ok := err.(*ChunkOrderViolationError); !ok {
		t.Fatalf("expected *ChunkOrderViolationError, got %T: %v", err, err)
	}
}

func TestOpenAcceptsUnknownAncillaryChunk(t *testing.T) {
	img, _ := Create(1, 1, Grayscale)
	data, err := img.ToBytes()
	if err != nil {
		t.Fatalf("ToBytes: %v", err)
	}
	iendOff := bytes.Index(data, []byte("IEND")) - 4

	typ := [4]byte{'q', 'u', 'T', 'x'} // lowercase first letter: ancillary, unrecognized
	payload := []byte{1, 2, 3}

	var unknown bytes.Buffer
	var lenBuf [4]byte
	byteorder.PutUint32(lenBuf[:], uint32(len(payload)))
	unknown.Write(lenBuf[:])
	unknown.Write(typ[:])
	unknown.Write(payload)
	var crcBuf [4]byte
	byteorder.PutUint32(crcBuf[:], pngcrc.Of(typ, payload))
	unknown.Write(crcBuf[:])

	withExtra := append(append([]byte{}, data[:iendOff]...), unknown.Bytes()...)
	withExtra = append(withExtra, data[iendOff:]...)

	reopened, err := Open(bytes.NewReader(withExtra))
	if err != nil {
		t.Fatalf("Open: unexpected error for unknown ancillary chunk: %v", err)
	}
	skipped := reopened.SkippedChunks()
	if len(skipped) != 1 || skipped[0] != "quTx" {
		t.Fatalf("SkippedChunks() = %v, want [quTx]", skipped)
	}
}
