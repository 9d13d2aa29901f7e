// Package core implements the GBF container's on-disk framing and header
// model: the fixed magic/length prefix, the JSON header schema, the
// header's self-CRC scheme, and the invariants a reader must check before
// any payload byte is trusted.
package core

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gredbin/gbf/internal/utils"
)

// Magic is the fixed 8-byte file signature. Every implementation must agree
// on this exact byte sequence; any mismatch is a hard rejection.
const Magic = "GBF1\x00\x00\x00\x00"

// FormatName is the value of the header's "format" field.
const FormatName = "GBF"

// Version is the container version this implementation writes and the
// highest version it will read.
const Version = 1

// FrameHeaderSize is the size in bytes of the fixed prefix before the
// header JSON: 8 bytes magic + 4 bytes little-endian header length.
const FrameHeaderSize = 12

// ReadMagicAndLen reads and validates the fixed 12-byte prefix, returning
// the declared header length.
func ReadMagicAndLen(r utils.ReaderAt, fileSize int64) (uint32, error) {
	buf := utils.GetBuffer(FrameHeaderSize)
	defer utils.ReleaseBuffer(buf)

	if fileSize < FrameHeaderSize {
		return 0, errors.New("file too small to contain a GBF frame")
	}

	if _, err := r.ReadAt(buf, 0); err != nil {
		return 0, utils.WrapError("frame prefix read failed", err)
	}

	if string(buf[:8]) != Magic {
		return 0, errors.New("not a GBF file: magic mismatch")
	}

	headerLen := binary.LittleEndian.Uint32(buf[8:12])

	if err := utils.ValidateBufferSize(uint64(headerLen), utils.MaxHeaderLen, "header length"); err != nil {
		return 0, fmt.Errorf("header length rejected: %w", err)
	}
	if int64(headerLen) > fileSize-FrameHeaderSize {
		return 0, fmt.Errorf("header length %d exceeds file size %d", headerLen, fileSize)
	}

	return headerLen, nil
}

// EncodeFramePrefix encodes the 12-byte magic+length prefix for a header of
// the given byte length.
func EncodeFramePrefix(headerLen uint32) []byte {
	buf := make([]byte, FrameHeaderSize)
	copy(buf[:8], Magic)
	binary.LittleEndian.PutUint32(buf[8:12], headerLen)
	return buf
}
