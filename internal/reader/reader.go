// Package reader implements the GBF reader state machine: magic and
// length validation, header parse and self-CRC check, invariant
// validation, and on-demand payload decoding for selected fields.
package reader

import (
	"fmt"

	"github.com/gredbin/gbf/internal/codec"
	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/utils"
)

// State names a point in the reader's validation pipeline. A reader
// that fails at one state never proceeds to the next.
type State int

const (
	StateOpened State = iota
	StateMagicOk
	StateHeaderLenOk
	StateHeaderLoaded
	StateHeaderValidated
	StatePayloadAccessible
	StateDone
)

func (s State) String() string {
	switch s {
	case StateOpened:
		return "opened"
	case StateMagicOk:
		return "magic_ok"
	case StateHeaderLenOk:
		return "header_len_ok"
	case StateHeaderLoaded:
		return "header_loaded"
	case StateHeaderValidated:
		return "header_validated"
	case StatePayloadAccessible:
		return "payload_accessible"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Phase names the specific check a StateError failed during, finer
// grained than State since one state-to-state transition can fail for
// more than one documented reason (e.g. leaving HeaderLenOk can fail
// on an unreadable header or on malformed JSON).
type Phase string

const (
	PhaseMagic           Phase = "magic"
	PhaseHeaderLength    Phase = "header_length"
	PhaseHeaderJSON      Phase = "header_json"
	PhaseHeaderCRC       Phase = "header_crc"
	PhaseHeaderInvariant Phase = "header_invariant"
)

// StateError reports that the reader failed while transitioning out
// of From, carrying the underlying cause.
type StateError struct {
	From  State
	Phase Phase
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("gbf reader: failed leaving state %s (%s): %v", e.From, e.Phase, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// Options controls per-field validation during payload decode.
type Options struct {
	Validate bool
}

// Open runs the reader state machine through header validation:
// magic, header length, header JSON parse, header CRC, and header
// invariants. It does not touch the payload region.
func Open(r utils.ReaderAt, fileSize int64) (*core.Header, State, error) {
	state := StateOpened

	headerLen, err := core.ReadMagicAndLen(r, fileSize)
	if err != nil {
		// ReadMagicAndLen checks magic and header length together; a
		// failure with an intact magic is a header length failure.
		magic := make([]byte, len(core.Magic))
		if fileSize >= core.FrameHeaderSize {
			if _, rerr := r.ReadAt(magic, 0); rerr == nil && string(magic) == core.Magic {
				state = StateMagicOk
				return nil, state, &StateError{From: state, Phase: PhaseHeaderLength, Err: err}
			}
		}
		return nil, state, &StateError{From: state, Phase: PhaseMagic, Err: err}
	}
	state = StateMagicOk
	state = StateHeaderLenOk

	headerBytes := make([]byte, headerLen)
	if _, err := r.ReadAt(headerBytes, core.FrameHeaderSize); err != nil {
		return nil, state, &StateError{From: state, Phase: PhaseHeaderLength, Err: fmt.Errorf("header read failed: %w", err)}
	}

	header, err := core.ParseJSON(headerBytes)
	if err != nil {
		return nil, state, &StateError{From: state, Phase: PhaseHeaderJSON, Err: err}
	}
	state = StateHeaderLoaded

	if err := core.ValidateHeaderCRC(headerBytes, header.HeaderCRC32Hex); err != nil {
		return nil, state, &StateError{From: state, Phase: PhaseHeaderCRC, Err: err}
	}

	payloadLen := uint64(fileSize) - header.PayloadStart
	if err := header.Validate(payloadLen); err != nil {
		return nil, state, &StateError{From: state, Phase: PhaseHeaderInvariant, Err: err}
	}
	state = StateHeaderValidated

	return header, state, nil
}

// ReadFields loads and decodes the given fields' payload bytes from r,
// returning one core.Leaf per field in the same order.
func ReadFields(r utils.ReaderAt, header *core.Header, fields []core.FieldMeta, opts Options) ([]core.Leaf, error) {
	leaves := make([]core.Leaf, 0, len(fields))

	for _, f := range fields {
		raw := make([]byte, f.CSize)
		if f.CSize > 0 {
			if _, err := r.ReadAt(raw, int64(header.PayloadStart+f.Offset)); err != nil {
				return nil, fmt.Errorf("field %q: payload read failed: %w", f.Name, err)
			}
		}

		var decompressed []byte
		switch f.Compression {
		case core.CompressionNone:
			decompressed = raw
		case core.CompressionZlib:
			out, err := codec.Inflate(raw, f.USize)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			decompressed = out
		default:
			return nil, fmt.Errorf("field %q: unrecognized compression %q", f.Name, f.Compression)
		}

		if opts.Validate && f.CRC32 != 0 {
			if got := utils.CRC32(decompressed); got != f.CRC32 {
				return nil, fmt.Errorf("field %q: payload CRC mismatch: computed %#08x, header claims %#08x", f.Name, got, f.CRC32)
			}
		}

		leaves = append(leaves, core.Leaf{
			Name:      f.Name,
			Kind:      f.Kind,
			ClassName: f.ClassName,
			Shape:     f.Shape,
			Complex:   f.Complex,
			Encoding:  f.Encoding,
			Payload:   decompressed,
		})
	}

	return leaves, nil
}
