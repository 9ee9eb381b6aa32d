package png

import (
	"testing"

	"github.com/alice39/pngimage/internal/colorcodec"
)

func TestCreateRejectsZeroDimensions(t *testing.T) {
	if _, err := Create(0, 1, RGBA); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestCreateDepthRejectsBadDepth(t *testing.T) {
	if _, err := CreateDepth(1, 1, RGBA, 12); err == nil {
		t.Fatal("expected error for unsupported bit depth")
	}
}

func TestCreateDefaultsToOpaqueBlack(t *testing.T) {
	img, err := Create(2, 2, RGBA)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := img.Pixel(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0xffff {
				t.Fatalf("Pixel(%d,%d) = %+v, want opaque black", x, y, c)
			}
		}
	}
}

func TestSetPixelAndRead(t *testing.T) {
	img, _ := Create(3, 3, RGB)
	img.SetPixel(1, 2, RGBColorForTest(10, 20, 30))
	got := img.Pixel(1, 2)
	if got.R != 10 || got.G != 20 || got.B != 30 {
		t.Fatalf("Pixel(1,2) = %+v", got)
	}
}

func TestTextSetGetDeleteUniqueness(t *testing.T) {
	img, _ := Create(1, 1, Grayscale)
	if err := img.SetText("Comment", "first", false); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := img.SetText("Comment", "second", false); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := img.SetText("Author", "me", true); err != nil {
		t.Fatalf("SetText: %v", err)
	}

	keys := img.TextKeys()
	if len(keys) != 2 {
		t.Fatalf("TextKeys() = %v, want 2 entries (update in place)", keys)
	}
	e, ok := img.Text("Comment")
	if !ok || e.Text != "second" {
		t.Fatalf("Text(Comment) = %+v, %v, want updated value", e, ok)
	}

	img.DeleteText("Author")
	if _, ok := img.Text("Author"); ok {
		t.Fatal("expected Author to be deleted")
	}
	if len(img.TextKeys()) != 1 {
		t.Fatalf("TextKeys() after delete = %v", img.TextKeys())
	}
}

func TestSetTextRejectsBadKeyword(t *testing.T) {
	img, _ := Create(1, 1, Grayscale)
	if err := img.SetText("", "x", false); err == nil {
		t.Fatal("expected error for empty keyword")
	}
}

func TestSetPaletteRejectsTooManyEntries(t *testing.T) {
	img, _ := Create(1, 1, Indexed)
	entries := make([]PaletteEntry, 257)
	if err := img.SetPalette(entries); err == nil {
		t.Fatal("expected error for palette with 257 entries")
	}
}

func TestSetColorModeConvertsPixels(t *testing.T) {
	img, _ := Create(1, 1, RGB)
	img.SetPixel(0, 0, RGBColorForTest(0x30, 0x60, 0x90))
	if err := img.SetColorMode(Grayscale); err != nil {
		t.Fatalf("SetColorMode: %v", err)
	}
	if img.ColorModeOf() != Grayscale {
		t.Fatalf("ColorModeOf() = %v, want Grayscale", img.ColorModeOf())
	}
	// (0x3030 + 0x6060 + 0x9090) / 3 = 0x6060
	if got := img.Pixel(0, 0); got.Gray != 0x6060 {
		t.Fatalf("Pixel(0,0).Gray = %#x, want 0x6060", got.Gray)
	}
}

func TestSetColorModeRejectsIndexedConversion(t *testing.T) {
	img, _ := Create(1, 1, RGB)
	if err := img.SetColorMode(Indexed); err == nil {
		t.Fatal("expected error converting to Indexed directly")
	}
}

func TestSetColorModeResolvesIndexedThroughPalette(t *testing.T) {
	img, _ := Create(1, 1, Indexed)
	if err := img.SetPalette([]PaletteEntry{{R: 0x30, G: 0x60, B: 0x90}}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	img.SetPixel(0, 0, colorcodec.IndexColor(0))

	if err := img.SetColorMode(RGB); err != nil {
		t.Fatalf("SetColorMode: %v", err)
	}
	if img.ColorModeOf() != RGB {
		t.Fatalf("ColorModeOf() = %v, want RGB", img.ColorModeOf())
	}
	got := img.Pixel(0, 0)
	want := RGBColorForTest(0x30, 0x60, 0x90)
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Fatalf("Pixel(0,0) = %+v, want %+v (resolved through palette)", got, want)
	}
}

func TestPixelOutOfBoundsIsSilentNoOp(t *testing.T) {
	img, _ := Create(2, 2, RGBA)
	if c := img.Pixel(-1, 0); c != (colorcodec.Color{}) {
		t.Fatalf("Pixel(-1,0) = %+v, want zero value", c)
	}
	if c := img.Pixel(2, 0); c != (colorcodec.Color{}) {
		t.Fatalf("Pixel(2,0) = %+v, want zero value", c)
	}
	img.SetPixel(5, 5, RGBColorForTest(1, 2, 3)) // must not panic or corrupt other pixels
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			c := img.Pixel(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0xffff {
				t.Fatalf("Pixel(%d,%d) = %+v, want untouched by OOB SetPixel", x, y, c)
			}
		}
	}
}

func TestCopyIsIndependent(t *testing.T) {
	img, _ := Create(1, 1, RGBA)
	img.SetGamma(45455)
	dup := img.Copy()
	dup.SetGamma(12345)
	g, _ := img.Gamma()
	if g != 45455 {
		t.Fatalf("original Gamma() = %d, want unaffected by copy mutation", g)
	}
}

// RGBColorForTest builds an 8-bit-domain RGB color the way a caller
// working in byte units would expect, widening to the package's
// internal 16-bit domain.
func RGBColorForTest(r, g, b byte) colorcodec.Color {
	widen := func(v byte) uint16 { return uint16(v)<<8 | uint16(v) }
	return colorcodec.Color{R: widen(r), G: widen(g), B: widen(b), A: 0xffff}
}
