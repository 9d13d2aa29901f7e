// Package utils provides small, dependency-free helpers shared across the
// GBF codec: little-endian load/store, CRC32, overflow-checked arithmetic,
// error wrapping, and a scratch-buffer pool.
package utils

import "encoding/binary"

// ReaderAt is a simplified interface for io.ReaderAt.
type ReaderAt interface {
	ReadAt(p []byte, off int64) (n int, err error)
}

// ReadUint32LE reads a little-endian uint32 at the given offset.
func ReadUint32LE(r ReaderAt, offset int64) (uint32, error) {
	buf := GetBuffer(4)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint64LE reads a little-endian uint64 at the given offset.
func ReadUint64LE(r ReaderAt, offset int64) (uint64, error) {
	buf := GetBuffer(8)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// PutUint32LE encodes v as little-endian into a freshly allocated 4-byte slice.
func PutUint32LE(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}

// PutUint64LE encodes v as little-endian into a freshly allocated 8-byte slice.
func PutUint64LE(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

// PutInt64LE encodes v as little-endian into a freshly allocated 8-byte slice.
func PutInt64LE(v int64) []byte {
	return PutUint64LE(uint64(v))
}

// Int64LE decodes a little-endian signed 64-bit value from buf.
// buf must be exactly 8 bytes.
func Int64LE(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf))
}

// Int32LE decodes a little-endian signed 32-bit value from buf.
// buf must be exactly 4 bytes.
func Int32LE(buf []byte) int32 {
	return int32(binary.LittleEndian.Uint32(buf))
}

// PutInt32LE encodes v as little-endian into a freshly allocated 4-byte slice.
func PutInt32LE(v int32) []byte {
	return PutUint32LE(uint32(v))
}
