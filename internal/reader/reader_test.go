package reader

import (
	"testing"

	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/writer"
)

type byteReaderAt struct{ data []byte }

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(b.data)) {
		return 0, nil
	}
	return copy(p, b.data[off:]), nil
}

func encodeSample(t *testing.T) []byte {
	t.Helper()
	leaves := []core.Leaf{
		{Name: "a", Kind: core.KindNumeric, ClassName: "double", Shape: []uint64{1}, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{Name: "b.c", Kind: core.KindNumeric, ClassName: "uint8", Shape: []uint64{3}, Payload: []byte{9, 9, 9}},
	}
	out, err := writer.EncodeFile(leaves, "/", writer.Options{Compression: writer.CompressionNever, IncludeCRC32: true, ZlibLevel: -1})
	if err != nil {
		t.Fatalf("EncodeFile failed: %v", err)
	}
	return out
}

func TestOpenAndReadFields(t *testing.T) {
	data := encodeSample(t)
	r := byteReaderAt{data: data}

	header, state, err := Open(r, int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if state != StateHeaderValidated {
		t.Errorf("state = %v, want %v", state, StateHeaderValidated)
	}

	leaves, err := ReadFields(r, header, header.Fields, Options{Validate: true})
	if err != nil {
		t.Fatalf("ReadFields failed: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("len(leaves) = %d, want 2", len(leaves))
	}
}

func TestOpenRejectsCorruptHeaderCRC(t *testing.T) {
	data := encodeSample(t)
	corrupt := append([]byte{}, data...)
	corrupt[core.FrameHeaderSize+11] ^= 0xFF

	_, _, err := Open(byteReaderAt{data: corrupt}, int64(len(corrupt)))
	if err == nil {
		t.Errorf("expected error for corrupt header")
	}
}

func TestReadFieldsDetectsPayloadCorruption(t *testing.T) {
	data := encodeSample(t)
	r := byteReaderAt{data: data}
	header, _, err := Open(r, int64(len(data)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	corrupt := append([]byte{}, data...)
	corrupt[len(corrupt)-1] ^= 0xFF
	cr := byteReaderAt{data: corrupt}

	if _, err := ReadFields(cr, header, header.Fields, Options{Validate: true}); err == nil {
		t.Errorf("expected error for corrupted payload bytes")
	}
}
