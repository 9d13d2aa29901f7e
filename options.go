package gbf

// CompressionMode selects how the writer decides whether to zlib
// compress each field's payload.
type CompressionMode int

const (
	// CompressionAuto compresses and keeps the compressed form only
	// when it shrinks the payload below 0.95x its original size and
	// the original is at least 256 bytes.
	CompressionAuto CompressionMode = iota
	// CompressionNever never compresses.
	CompressionNever
	// CompressionAlways always compresses, even if it grows the data.
	CompressionAlways
)

// autoCompressRatio and autoCompressMinBytes record CompressionAuto's
// keep-or-discard thresholds. The decision itself is made in
// internal/writer, which holds its own constants with these values.
const (
	autoCompressRatio    = 0.95
	autoCompressMinBytes = 256
)

// WriteOptions controls WriteFile's behaviour.
type WriteOptions struct {
	Compression CompressionMode

	// IncludeCRC32, when false, writes 0 for every field's crc32 and
	// skips computing it; the header CRC is always written.
	IncludeCRC32 bool

	// ZlibLevel is forwarded to the zlib writer: -1 for the library
	// default, 0..9 for an explicit level.
	ZlibLevel int
}

// DefaultWriteOptions returns the options WriteFile uses when none are
// given explicitly: AUTO compression, CRCs enabled, default zlib
// level.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Compression:  CompressionAuto,
		IncludeCRC32: true,
		ZlibLevel:    -1,
	}
}

// ReadOptions controls the reader's validation behaviour.
type ReadOptions struct {
	// Validate, when true, verifies each field's CRC32 after
	// decompression. The header CRC is always validated regardless of
	// this setting.
	Validate bool
}

// DefaultReadOptions returns the options the reader uses when none are
// given explicitly: per-field CRC validation enabled.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Validate: true}
}
