package core

import (
	"bytes"
	"fmt"

	"github.com/gredbin/gbf/internal/utils"
)

// crcFieldKey is the literal byte sequence the writer's canonical encoder
// always emits immediately before the header_crc32_hex value, letting both
// the patch and validate paths locate the field with a simple prefix scan
// instead of a full JSON re-parse.
var crcFieldKey = []byte(`"header_crc32_hex":"`)

// locateCRCValue finds the byte range [start, end) of the eight hex
// characters inside "header_crc32_hex":"XXXXXXXX" within raw header JSON
// bytes.
func locateCRCValue(headerBytes []byte) (start, end int, err error) {
	idx := bytes.Index(headerBytes, crcFieldKey)
	if idx < 0 {
		return 0, 0, fmt.Errorf("header_crc32_hex field not found")
	}
	start = idx + len(crcFieldKey)
	end = start + 8
	if end >= len(headerBytes) || headerBytes[end] != '"' {
		return 0, 0, fmt.Errorf("header_crc32_hex value is not exactly 8 characters")
	}
	return start, end, nil
}

// PatchHeaderCRC computes the CRC32 of headerBytes with the
// header_crc32_hex value's eight characters treated as ASCII '0', and
// returns a copy of headerBytes with those eight characters overwritten
// by the lowercase hex encoding of that CRC; headerBytes itself is not
// modified. headerBytes must already contain a placeholder
// value of the correct length (any 8 characters; BuildJSON uses "00000000").
func PatchHeaderCRC(headerBytes []byte) ([]byte, uint32, error) {
	start, end, err := locateCRCValue(headerBytes)
	if err != nil {
		return nil, 0, err
	}

	crc := crc32OfZeroedField(headerBytes, start, end)

	patched := make([]byte, len(headerBytes))
	copy(patched, headerBytes)
	copy(patched[start:end], []byte(fmt.Sprintf("%08x", crc)))

	return patched, crc, nil
}

// ValidateHeaderCRC recomputes the header CRC from raw header bytes (with
// the header_crc32_hex characters zeroed in a scratch copy, never mutating
// the caller's buffer) and compares it against expectedHex.
func ValidateHeaderCRC(headerBytes []byte, expectedHex string) error {
	if len(expectedHex) != 8 {
		return fmt.Errorf("header_crc32_hex must be exactly 8 characters, got %d", len(expectedHex))
	}

	start, end, err := locateCRCValue(headerBytes)
	if err != nil {
		return err
	}

	crc := crc32OfZeroedField(headerBytes, start, end)
	got := fmt.Sprintf("%08x", crc)
	if got != expectedHex {
		return fmt.Errorf("header CRC mismatch: computed %s, header claims %s", got, expectedHex)
	}
	return nil
}

// crc32OfZeroedField computes CRC32 over data with the byte range
// [start, end) replaced by ASCII '0', without mutating data itself.
func crc32OfZeroedField(data []byte, start, end int) uint32 {
	scratch := make([]byte, len(data))
	copy(scratch, data)
	for i := start; i < end; i++ {
		scratch[i] = '0'
	}
	return utils.CRC32(scratch)
}
