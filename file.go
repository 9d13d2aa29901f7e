package gbf

import (
	"os"

	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/reader"
)

// File is an open GBF file kept ready for repeated ReadVar calls
// without re-validating the header on every call.
type File struct {
	osFile *os.File
	header *core.Header
}

// Open opens path, validates its prefix and header, and returns a
// File handle for further reads. The header is parsed and checked
// once; Var and Read reuse it.
func Open(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided path is intentional for a file format library
	if err != nil {
		return nil, wrapError(ErrIOError, "opening file", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, wrapError(ErrIOError, "stat failed", err)
	}

	header, _, err := reader.Open(f, fi.Size())
	if err != nil {
		_ = f.Close()
		return nil, translateReaderError(err)
	}

	return &File{osFile: f, header: header}, nil
}

// Close closes the underlying file. Safe to call more than once.
func (f *File) Close() error {
	if f.osFile == nil {
		return nil
	}
	err := f.osFile.Close()
	f.osFile = nil
	return err
}

// Header returns the parsed, validated header.
func (f *File) Header() *core.Header {
	return f.header
}

// Read loads and reconstructs the full value tree.
func (f *File) Read(opts ReadOptions) (*Value, error) {
	leaves, err := reader.ReadFields(f.osFile, f.header, f.header.Fields, toReaderOptions(opts))
	if err != nil {
		return nil, wrapError(ErrPayloadCRCMismatch, "reading fields", err)
	}
	return unflattenLeaves(leaves)
}

// Var resolves varPath against the open file's fields and loads only
// the matching payload bytes.
func (f *File) Var(varPath string, opts ReadOptions) (*Value, error) {
	selected, exact, ok := core.SelectFields(f.header.Fields, varPath)
	if !ok {
		return nil, newError(ErrPathNotFound, "no such variable %q", varPath)
	}

	leaves, err := reader.ReadFields(f.osFile, f.header, selected, toReaderOptions(opts))
	if err != nil {
		return nil, wrapError(ErrPayloadCRCMismatch, "reading fields", err)
	}
	return unflattenSubtree(leaves, varPath, exact)
}
