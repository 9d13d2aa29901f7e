package core

import (
	"fmt"
	"sort"

	"github.com/gredbin/gbf/internal/utils"
)

// Validate checks the structural invariants a reader must enforce before
// trusting any payload byte: supported version/endianness/order, unique
// field names, non-overlapping in-bounds byte ranges, and shape/usize
// agreement for numeric fields.
func (h *Header) Validate(payloadSize uint64) error {
	if h.Version == 0 || h.Version > Version {
		return fmt.Errorf("unsupported version: %d", h.Version)
	}
	if h.Endianness != "little" {
		return fmt.Errorf("unsupported endianness: %q", h.Endianness)
	}
	if h.Order != "col-major" {
		return fmt.Errorf("unsupported order: %q", h.Order)
	}

	seenNames := make(map[string]bool, len(h.Fields))
	for _, f := range h.Fields {
		if seenNames[f.Name] {
			return fmt.Errorf("duplicate field name: %q", f.Name)
		}
		seenNames[f.Name] = true

		if !IsKnownKind(f.Kind) {
			return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
		}

		if err := validateFieldLayout(f, payloadSize); err != nil {
			return err
		}

		if f.Kind == KindNumeric {
			if err := validateNumericSize(f); err != nil {
				return err
			}
		}
	}

	if err := validateNoOverlap(h.Fields); err != nil {
		return err
	}

	return nil
}

func validateFieldLayout(f FieldMeta, payloadSize uint64) error {
	if f.Offset+f.CSize < f.Offset {
		return fmt.Errorf("field %q: offset+csize overflows", f.Name)
	}
	if f.Offset+f.CSize > payloadSize {
		return fmt.Errorf("field %q: byte range [%d, %d) exceeds payload size %d",
			f.Name, f.Offset, f.Offset+f.CSize, payloadSize)
	}
	if f.Compression == CompressionNone && f.CSize != f.USize {
		return fmt.Errorf("field %q: compression=none requires csize == usize (got %d != %d)",
			f.Name, f.CSize, f.USize)
	}
	return nil
}

func validateNumericSize(f FieldMeta) error {
	elemSize, ok := NumericElemSize(f.ClassName)
	if !ok {
		return fmt.Errorf("field %q: unknown numeric class %q", f.Name, f.ClassName)
	}
	want, err := utils.CalculateNumericSize(f.Shape, elemSize, f.Complex)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	if want != f.USize {
		return fmt.Errorf("field %q: usize %d disagrees with shape/class product %d", f.Name, f.USize, want)
	}
	if f.Complex && f.USize == 0 {
		return fmt.Errorf("field %q: complex numeric must have non-zero imag length", f.Name)
	}
	return nil
}

// validateNoOverlap checks that field byte ranges [offset, offset+csize)
// are pairwise disjoint.
func validateNoOverlap(fields []FieldMeta) error {
	sorted := make([]FieldMeta, len(fields))
	copy(sorted, fields)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	for i := 1; i < len(sorted); i++ {
		prevEnd := sorted[i-1].Offset + sorted[i-1].CSize
		if sorted[i].Offset < prevEnd {
			return fmt.Errorf("fields %q and %q overlap in payload", sorted[i-1].Name, sorted[i].Name)
		}
	}
	return nil
}
