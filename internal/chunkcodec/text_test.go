package chunkcodec

import (
	"bytes"
	"testing"
)

func TestTEXTRoundTrip(t *testing.T) {
	tx := TEXT{Keyword: "Comment", Text: "hello, world"}
	got, err := ParseTEXT(EncodeTEXT(tx))
	if err != nil {
		t.Fatalf("ParseTEXT: %v", err)
	}
	if got != tx {
		t.Fatalf("ParseTEXT() = %+v, want %+v", got, tx)
	}
}

func TestParseTEXTRejectsEmptyKeyword(t *testing.T) {
	if _, err := ParseTEXT([]byte{0, 'h', 'i'}); err == nil {
		t.Fatal("expected error for empty keyword")
	}
}

func TestZTXTRoundTrip(t *testing.T) {
	z := ZTXT{Keyword: "Description", CompressionMethod: 0, CompressedText: []byte{9, 8, 7}}
	got, err := ParseZTXT(EncodeZTXT(z))
	if err != nil {
		t.Fatalf("ParseZTXT: %v", err)
	}
	if got.Keyword != z.Keyword || got.CompressionMethod != z.CompressionMethod || !bytes.Equal(got.CompressedText, z.CompressedText) {
		t.Fatalf("ParseZTXT() = %+v, want %+v", got, z)
	}
}

func TestITXTRoundTripUncompressed(t *testing.T) {
	it := ITXT{
		Keyword:           "Title",
		Compressed:        false,
		LanguageTag:       "en",
		TranslatedKeyword: "Titre",
		Text:              []byte("A small image"),
	}
	got, err := ParseITXT(EncodeITXT(it))
	if err != nil {
		t.Fatalf("ParseITXT: %v", err)
	}
	if got.Keyword != it.Keyword || got.Compressed != it.Compressed ||
		got.LanguageTag != it.LanguageTag || got.TranslatedKeyword != it.TranslatedKeyword ||
		!bytes.Equal(got.Text, it.Text) {
		t.Fatalf("ParseITXT() = %+v, want %+v", got, it)
	}
}

func TestITXTRoundTripCompressedFlag(t *testing.T) {
	it := ITXT{Keyword: "Author", Compressed: true, CompressionMethod: 0, LanguageTag: "", TranslatedKeyword: "", Text: []byte{1, 2, 3}}
	got, err := ParseITXT(EncodeITXT(it))
	if err != nil {
		t.Fatalf("ParseITXT: %v", err)
	}
	if !got.Compressed {
		t.Fatal("expected Compressed flag to round-trip true")
	}
	if !bytes.Equal(got.Text, it.Text) {
		t.Fatalf("ParseITXT() text = %v, want %v", got.Text, it.Text)
	}
}

func TestParseITXTRejectsTruncatedBeforeFlags(t *testing.T) {
	if _, err := ParseITXT([]byte{'k', 0}); err == nil {
		t.Fatal("expected error for truncated iTXt")
	}
}
