package gbf

import (
	"bytes"

	"github.com/natefinch/atomic"

	"github.com/gredbin/gbf/internal/writer"
)

func toWriterOptions(opts WriteOptions) writer.Options {
	var mode writer.CompressionMode
	switch opts.Compression {
	case CompressionNever:
		mode = writer.CompressionNever
	case CompressionAlways:
		mode = writer.CompressionAlways
	default:
		mode = writer.CompressionAuto
	}
	return writer.Options{
		Compression:  mode,
		IncludeCRC32: opts.IncludeCRC32,
		ZlibLevel:    opts.ZlibLevel,
	}
}

// WriteFile serializes root (which must be a struct) to path as a
// complete GBF file. The file is written to a temporary path in the
// same directory and renamed into place, so a crash or error mid-write
// never leaves a partially written file at path.
func WriteFile(path string, root *Value, opts WriteOptions) error {
	leaves, err := flattenValue(root)
	if err != nil {
		return err
	}

	data, err := writer.EncodeFile(leaves, "/", toWriterOptions(opts))
	if err != nil {
		return wrapError(ErrIOError, "encoding GBF file", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return wrapError(ErrIOError, "writing GBF file", err)
	}

	return nil
}
