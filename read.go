package gbf

import (
	"os"

	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/reader"
)

func toReaderOptions(opts ReadOptions) reader.Options {
	return reader.Options{Validate: opts.Validate}
}

// ReadHeaderOnly opens path, validates the fixed prefix and header
// (magic, length, JSON parse, header CRC, invariants), and returns the
// parsed header together with its raw JSON bytes, without touching
// the payload region.
func ReadHeaderOnly(path string, opts ReadOptions) (*core.Header, []byte, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided path is intentional for a file format library
	if err != nil {
		return nil, nil, wrapError(ErrIOError, "opening file", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, wrapError(ErrIOError, "stat failed", err)
	}

	header, _, err := reader.Open(f, fi.Size())
	if err != nil {
		return nil, nil, translateReaderError(err)
	}

	headerBytes := make([]byte, headerByteLen(header))
	if _, err := f.ReadAt(headerBytes, core.FrameHeaderSize); err != nil {
		return nil, nil, wrapError(ErrIOError, "re-reading header bytes", err)
	}

	return header, headerBytes, nil
}

func headerByteLen(h *core.Header) uint64 {
	return h.PayloadStart - core.FrameHeaderSize
}

// ReadFile opens path and returns the fully reconstructed value tree.
func ReadFile(path string, opts ReadOptions) (*Value, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided path is intentional for a file format library
	if err != nil {
		return nil, wrapError(ErrIOError, "opening file", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, wrapError(ErrIOError, "stat failed", err)
	}

	header, _, err := reader.Open(f, fi.Size())
	if err != nil {
		return nil, translateReaderError(err)
	}

	leaves, err := reader.ReadFields(f, header, header.Fields, toReaderOptions(opts))
	if err != nil {
		return nil, wrapError(ErrPayloadCRCMismatch, "reading fields", err)
	}

	root, err := unflattenLeaves(leaves)
	if err != nil {
		return nil, wrapError(ErrHeaderJSONInvalid, "reconstructing value tree", err)
	}
	return root, nil
}

// ReadVar opens path and resolves varPath to either a single leaf
// (exact match) or a struct subtree (prefix match), loading only the
// matching fields' payload bytes. An empty varPath behaves like
// ReadFile.
func ReadVar(path string, varPath string, opts ReadOptions) (*Value, error) {
	f, err := os.Open(path) //nolint:gosec // caller-provided path is intentional for a file format library
	if err != nil {
		return nil, wrapError(ErrIOError, "opening file", err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, wrapError(ErrIOError, "stat failed", err)
	}

	header, _, err := reader.Open(f, fi.Size())
	if err != nil {
		return nil, translateReaderError(err)
	}

	selected, exact, ok := core.SelectFields(header.Fields, varPath)
	if !ok {
		return nil, newError(ErrPathNotFound, "no such variable %q", varPath)
	}

	leaves, err := reader.ReadFields(f, header, selected, toReaderOptions(opts))
	if err != nil {
		return nil, wrapError(ErrPayloadCRCMismatch, "reading fields", err)
	}

	value, err := unflattenSubtree(leaves, varPath, exact)
	if err != nil {
		return nil, wrapError(ErrHeaderJSONInvalid, "reconstructing value", err)
	}
	return value, nil
}

// translateReaderError maps a *reader.StateError to the public error
// taxonomy based on the state it failed leaving, so callers can branch
// on gbf.CodeOf without depending on the internal reader package.
func translateReaderError(err error) error {
	se, ok := err.(*reader.StateError)
	if !ok {
		return wrapError(ErrIOError, "reading GBF file", err)
	}

	switch se.Phase {
	case reader.PhaseMagic:
		return wrapError(ErrMagicMismatch, "magic check failed", se.Err)
	case reader.PhaseHeaderLength:
		return wrapError(ErrHeaderLengthInvalid, "header length check failed", se.Err)
	case reader.PhaseHeaderJSON:
		return wrapError(ErrHeaderJSONInvalid, "header JSON parse failed", se.Err)
	case reader.PhaseHeaderCRC:
		return wrapError(ErrHeaderCRCMismatch, "header CRC check failed", se.Err)
	case reader.PhaseHeaderInvariant:
		return wrapError(ErrFieldLayoutInvalid, "header invariant check failed", se.Err)
	default:
		return wrapError(ErrIOError, "reading GBF file", se.Err)
	}
}
