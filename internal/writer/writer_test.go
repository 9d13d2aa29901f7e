package writer

import (
	"bytes"
	"testing"

	"github.com/gredbin/gbf/internal/core"
)

type byteReaderAt struct{ data []byte }

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, b.data[off:]), nil
}

func TestEncodeFileRoundTripsHeaderAndPayload(t *testing.T) {
	leaves := []core.Leaf{
		{Name: "a", Kind: core.KindNumeric, ClassName: "double", Shape: []uint64{1, 1}, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{Name: "b.c", Kind: core.KindNumeric, ClassName: "uint8", Shape: []uint64{4}, Payload: []byte{9, 9, 9, 9}},
	}

	out, err := EncodeFile(leaves, "/", Options{Compression: CompressionNever, IncludeCRC32: true, ZlibLevel: -1})
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}

	if !bytes.Equal(out[:8], []byte(core.Magic)) {
		t.Fatalf("output does not start with magic")
	}

	headerLen, err := core.ReadMagicAndLen(byteReaderAt{data: out}, int64(len(out)))
	if err != nil {
		t.Fatalf("ReadMagicAndLen failed: %v", err)
	}

	headerBytes := out[core.FrameHeaderSize : core.FrameHeaderSize+int(headerLen)]
	if err := core.ValidateHeaderCRC(headerBytes, extractCRC(t, headerBytes)); err != nil {
		t.Fatalf("header CRC invalid: %v", err)
	}

	header, err := core.ParseJSON(headerBytes)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if err := header.Validate(uint64(len(out)) - header.PayloadStart); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(header.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(header.Fields))
	}

	payload := out[header.PayloadStart:]
	fa, _ := header.FieldByName("a")
	got := payload[fa.Offset : fa.Offset+fa.CSize]
	if !bytes.Equal(got, leaves[0].Payload) {
		t.Errorf("field a payload = %v, want %v", got, leaves[0].Payload)
	}
}

func TestEncodeFileAutoCompressionSkipsSmallFields(t *testing.T) {
	leaves := []core.Leaf{
		{Name: "a", Kind: core.KindNumeric, ClassName: "double", Shape: []uint64{1}, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	out, err := EncodeFile(leaves, "/", Options{Compression: CompressionAuto, IncludeCRC32: true, ZlibLevel: -1})
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}

	headerLen, _ := core.ReadMagicAndLen(byteReaderAt{data: out}, int64(len(out)))
	header, err := core.ParseJSON(out[core.FrameHeaderSize : core.FrameHeaderSize+int(headerLen)])
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	fa, _ := header.FieldByName("a")
	if fa.Compression != core.CompressionNone {
		t.Errorf("small field compression = %q, want none", fa.Compression)
	}
}

func TestEncodeFileRejectsUnrecognizedCompressionMode(t *testing.T) {
	leaves := []core.Leaf{{Name: "a", Kind: core.KindOpaque, ClassName: "opaque", Payload: []byte{1}}}
	_, err := EncodeFile(leaves, "/", Options{Compression: CompressionMode(99)})
	if err == nil {
		t.Errorf("expected error for unrecognized compression mode")
	}
}

func extractCRC(t *testing.T, headerBytes []byte) string {
	t.Helper()
	h, err := core.ParseJSON(headerBytes)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	return h.HeaderCRC32Hex
}
