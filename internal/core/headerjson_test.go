package core

import "testing"

func TestBuildAndParseJSONRoundTrip(t *testing.T) {
	h := &Header{
		Format: FormatName, Magic: Magic, Version: Version,
		Endianness: "little", Order: "col-major", Root: "/",
		PayloadStart: 12, FileSize: 100,
		Fields: []FieldMeta{
			{
				Name: "x", Kind: KindNumeric, ClassName: "double",
				Shape: []uint64{2, 3}, Complex: false, Encoding: "",
				Compression: CompressionZlib, Offset: 0, CSize: 10, USize: 48, CRC32: 0xdeadbeef,
			},
		},
	}

	raw := BuildJSON(h)
	parsed, err := ParseJSON(raw)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if parsed.Format != h.Format || parsed.Version != h.Version || parsed.Endianness != h.Endianness {
		t.Errorf("global metadata mismatch: %+v", parsed)
	}
	if len(parsed.Fields) != 1 {
		t.Fatalf("len(Fields) = %d, want 1", len(parsed.Fields))
	}
	got := parsed.Fields[0]
	if got.Name != "x" || got.ClassName != "double" || got.CRC32 != 0xdeadbeef {
		t.Errorf("field mismatch: %+v", got)
	}
	if len(got.Shape) != 2 || got.Shape[0] != 2 || got.Shape[1] != 3 {
		t.Errorf("shape mismatch: %+v", got.Shape)
	}
}

func TestParseJSONRejectsMissingOffset(t *testing.T) {
	_, err := ParseJSON([]byte(`{"fields":[{"name":"x","kind":"numeric","csize":1,"usize":1}]}`))
	if err == nil {
		t.Errorf("expected error for missing offset")
	}
}

func TestParseJSONIgnoresUnknownKeys(t *testing.T) {
	h, err := ParseJSON([]byte(`{"format":"GBF","unknown_key":123,"fields":[]}`))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if h.Format != "GBF" {
		t.Errorf("Format = %q, want GBF", h.Format)
	}
}
