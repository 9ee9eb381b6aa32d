package chunkcodec

import (
	"reflect"
	"testing"
)

func TestPLTERoundTrip(t *testing.T) {
	pal := []RGB{{1, 2, 3}, {4, 5, 6}, {255, 255, 255}}
	data := EncodePLTE(pal)
	got, err := ParsePLTE(data)
	if err != nil {
		t.Fatalf("ParsePLTE: %v", err)
	}
	if !reflect.DeepEqual(got, pal) {
		t.Fatalf("ParsePLTE() = %+v, want %+v", got, pal)
	}
}

func TestParsePLTERejectsBadLength(t *testing.T) {
	if _, err := ParsePLTE([]byte{1, 2}); err == nil {
		t.Fatal("expected error for length not divisible by 3")
	}
	if _, err := ParsePLTE(nil); err == nil {
		t.Fatal("expected error for empty palette")
	}
}

func TestTRNSGrayRoundTrip(t *testing.T) {
	tr := TRNS{Kind: TRNSGray, GrayKey: 0x1234}
	got, err := ParseTRNS(EncodeTRNS(tr), 0)
	if err != nil {
		t.Fatalf("ParseTRNS: %v", err)
	}
	if got != tr {
		t.Fatalf("ParseTRNS() = %+v, want %+v", got, tr)
	}
}

func TestTRNSRGBRoundTrip(t *testing.T) {
	tr := TRNS{Kind: TRNSRGB, RGBKeyR: 1, RGBKeyG: 2, RGBKeyB: 3}
	got, err := ParseTRNS(EncodeTRNS(tr), 2)
	if err != nil {
		t.Fatalf("ParseTRNS: %v", err)
	}
	if got != tr {
		t.Fatalf("ParseTRNS() = %+v, want %+v", got, tr)
	}
}

func TestTRNSIndexedRoundTrip(t *testing.T) {
	tr := TRNS{Kind: TRNSIndexed, IndexAlpha: []byte{0, 128, 255}}
	got, err := ParseTRNS(EncodeTRNS(tr), 3)
	if err != nil {
		t.Fatalf("ParseTRNS: %v", err)
	}
	if !reflect.DeepEqual(got.IndexAlpha, tr.IndexAlpha) {
		t.Fatalf("ParseTRNS() = %+v, want %+v", got, tr)
	}
}

func TestParseTRNSRejectsAlphaColorTypes(t *testing.T) {
	if _, err := ParseTRNS([]byte{0, 0}, 4); err == nil {
		t.Fatal("expected error for tRNS on color type 4")
	}
	if _, err := ParseTRNS([]byte{0, 0}, 6); err == nil {
		t.Fatal("expected error for tRNS on color type 6")
	}
}
