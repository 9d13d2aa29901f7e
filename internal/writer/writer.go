package writer

import (
	"fmt"

	"github.com/gredbin/gbf/internal/codec"
	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/utils"
)

// CompressionMode mirrors the public gbf.CompressionMode without
// importing the root package (which imports this one), letting the
// root package translate its option type at the call boundary.
type CompressionMode int

const (
	CompressionAuto CompressionMode = iota
	CompressionNever
	CompressionAlways
)

const (
	autoCompressRatio    = 0.95
	autoCompressMinBytes = 256
)

// Options controls EncodeFile's compression and CRC behaviour.
type Options struct {
	Compression  CompressionMode
	IncludeCRC32 bool
	ZlibLevel    int
}

// EncodeFile builds the complete framed file bytes (magic + header
// length + header JSON + payload) from an ordered list of leaves.
// root names the document root for the header's informational "root"
// field.
func EncodeFile(leaves []core.Leaf, root string, opts Options) ([]byte, error) {
	alloc := NewAllocator(0)
	fields := make([]core.FieldMeta, 0, len(leaves))
	payload := make([]byte, 0)

	for _, leaf := range leaves {
		fm, encoded, err := encodeField(alloc, leaf, opts)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		fields = append(fields, fm)
		payload = append(payload, encoded...)
	}

	header := &core.Header{
		Format:     core.FormatName,
		Magic:      core.Magic,
		Version:    core.Version,
		Endianness: "little",
		Order:      "col-major",
		Root:       root,
		Fields:     fields,
	}

	// payload_start and file_size are informational fields that name
	// values depending on the header's own byte length, which in turn
	// can depend on how many digits those values print as. Converge by
	// iterating until the header length stops moving.
	var headerBytes []byte
	for i := 0; i < 4; i++ {
		headerLen := uint64(len(headerBytes))
		header.PayloadStart = core.FrameHeaderSize + headerLen
		header.FileSize = header.PayloadStart + uint64(len(payload))

		next := core.BuildJSON(header)
		if len(next) == len(headerBytes) {
			headerBytes = next
			break
		}
		headerBytes = next
	}

	patched, _, err := core.PatchHeaderCRC(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("patching header CRC: %w", err)
	}

	prefix := core.EncodeFramePrefix(uint32(len(patched)))

	out := make([]byte, 0, len(prefix)+len(patched)+len(payload))
	out = append(out, prefix...)
	out = append(out, patched...)
	out = append(out, payload...)
	return out, nil
}

// encodeField decides compression for one leaf, allocates its offset,
// and returns its header metadata plus the bytes to append to the
// payload buffer.
func encodeField(alloc *Allocator, leaf core.Leaf, opts Options) (core.FieldMeta, []byte, error) {
	usize := uint64(len(leaf.Payload))
	if usize > utils.MaxFieldSize {
		return core.FieldMeta{}, nil, fmt.Errorf("payload size %d exceeds maximum %d", usize, utils.MaxFieldSize)
	}

	var crc uint32
	if opts.IncludeCRC32 {
		crc = utils.CRC32(leaf.Payload)
	}

	stored := leaf.Payload
	compression := core.CompressionNone

	switch opts.Compression {
	case CompressionNever:
		// stored stays as-is.
	case CompressionAlways:
		compressed, err := codec.Deflate(leaf.Payload, opts.ZlibLevel)
		if err != nil {
			return core.FieldMeta{}, nil, err
		}
		stored = compressed
		compression = core.CompressionZlib
	case CompressionAuto:
		if usize >= autoCompressMinBytes {
			compressed, err := codec.Deflate(leaf.Payload, opts.ZlibLevel)
			if err != nil {
				return core.FieldMeta{}, nil, err
			}
			if float64(len(compressed)) < autoCompressRatio*float64(usize) {
				stored = compressed
				compression = core.CompressionZlib
			}
		}
	default:
		return core.FieldMeta{}, nil, fmt.Errorf("unrecognized compression mode %d", opts.Compression)
	}

	if usize == 0 {
		stored = nil
	}

	offset, err := allocateField(alloc, uint64(len(stored)))
	if err != nil {
		return core.FieldMeta{}, nil, err
	}

	fm := core.FieldMeta{
		Name:        leaf.Name,
		Kind:        leaf.Kind,
		ClassName:   leaf.ClassName,
		Shape:       leaf.Shape,
		Complex:     leaf.Complex,
		Encoding:    leaf.Encoding,
		Compression: compression,
		Offset:      offset,
		CSize:       uint64(len(stored)),
		USize:       usize,
		CRC32:       crc,
	}
	return fm, stored, nil
}

// allocateField allocates size bytes in the payload buffer, special
// casing size 0 (the empty_struct / zero-length leaf case) since the
// allocator rejects zero-byte allocations.
func allocateField(alloc *Allocator, size uint64) (uint64, error) {
	if size == 0 {
		return alloc.EndOfFile(), nil
	}
	return alloc.Allocate(size)
}
