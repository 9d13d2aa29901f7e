// Package codec provides the GBF compression adapter: zlib deflate/inflate
// with a chosen level, used transparently per field. It wraps
// klauspost/compress/zlib rather than the standard library's compress/zlib
// for its faster deflate implementation; the wire format (a standard zlib
// stream) is identical either way.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Deflate compresses data at the given zlib level. Level -1 requests the
// library default; explicit levels 0..9 are forwarded as-is.
func Deflate(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer creation failed: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Inflate decompresses a zlib stream, failing cleanly on truncated or
// malformed input and on a decompressed size that disagrees with
// expectedUsize.
func Inflate(data []byte, expectedUsize uint64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib stream invalid: %w", err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(io.LimitReader(r, int64(expectedUsize)+1))
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	if uint64(len(out)) != expectedUsize {
		return nil, fmt.Errorf("decompressed size %d disagrees with declared usize %d", len(out), expectedUsize)
	}

	return out, nil
}
