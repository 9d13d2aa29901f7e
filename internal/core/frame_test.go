package core

import (
	"bytes"
	"testing"
)

type byteReaderAt struct {
	data []byte
}

func (b byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return copy(p, b.data[off:]), nil
}

func TestReadMagicAndLenRoundTrip(t *testing.T) {
	headerBytes := []byte(`{"a":1}`)
	prefix := EncodeFramePrefix(uint32(len(headerBytes)))

	full := append(append([]byte{}, prefix...), headerBytes...)
	full = append(full, []byte("payload")...)

	got, err := ReadMagicAndLen(byteReaderAt{data: full}, int64(len(full)))
	if err != nil {
		t.Fatalf("ReadMagicAndLen failed: %v", err)
	}
	if got != uint32(len(headerBytes)) {
		t.Errorf("header length = %d, want %d", got, len(headerBytes))
	}
}

func TestReadMagicAndLenRejectsBadMagic(t *testing.T) {
	bad := bytes.Repeat([]byte{0}, 16)
	_, err := ReadMagicAndLen(byteReaderAt{data: bad}, int64(len(bad)))
	if err == nil {
		t.Errorf("expected error for bad magic")
	}
}

func TestReadMagicAndLenRejectsOversizedHeader(t *testing.T) {
	prefix := EncodeFramePrefix(1_000_000)
	_, err := ReadMagicAndLen(byteReaderAt{data: prefix}, int64(len(prefix)))
	if err == nil {
		t.Errorf("expected error for header length exceeding file size")
	}
}
