// Package gbf implements the GBF (GREDBIN) container format: a
// self-describing binary layout for heterogeneous scientific data,
// built around a JSON header describing a flat set of named, typed
// fields and a payload region holding their (optionally compressed)
// column-major bytes.
package gbf

import "fmt"

// Kind identifies the shape of a Value's payload. It mirrors the wire
// kinds from the header schema plus Struct, which exists only in the
// in-memory tree and is never itself written as a leaf.
type Kind string

const (
	KindStruct          Kind = "struct"
	KindNumeric         Kind = "numeric"
	KindLogical         Kind = "logical"
	KindString          Kind = "string"
	KindChar            Kind = "char"
	KindDatetime        Kind = "datetime"
	KindDuration        Kind = "duration"
	KindCalendarDuration Kind = "calendarduration"
	KindCategorical     Kind = "categorical"
	KindOpaque          Kind = "opaque"
	KindEmptyStruct     Kind = "empty_struct"
)

// Value is a tagged variant representing one node of a GBF document
// tree: either a struct (an ordered set of named children) or a leaf
// carrying one of the concrete payload kinds below. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind

	// Struct payload: ordered named children. Fields preserves
	// insertion order so round trips reproduce the original layout.
	Fields []StructField

	// Numeric payload.
	Numeric *NumericValue

	// Logical payload.
	Logical *LogicalValue

	// String payload (MATLAB string array / cellstr).
	String *StringValue

	// Char payload (MATLAB char array).
	Char *CharValue

	// Datetime payload.
	Datetime *DatetimeValue

	// Duration payload.
	Duration *DurationValue

	// CalendarDuration payload.
	CalendarDuration *CalendarDurationValue

	// Categorical payload.
	Categorical *CategoricalValue

	// Opaque payload: an uninterpreted typed byte blob.
	Opaque *OpaqueValue

	// EmptyStruct carries no payload; its presence alone marks a 0x0
	// struct array leaf.
}

// StructField names one child of a struct Value.
type StructField struct {
	Name  string
	Value *Value
}

// NumericValue holds a real or complex N-D numeric array in
// column-major order.
type NumericValue struct {
	ClassName string // e.g. "double", "single", "int32", "uint8"
	Shape     []uint64
	Complex   bool
	Real      []byte // little-endian elements, column-major
	Imag      []byte // present only when Complex is true
}

// LogicalValue holds an N-D boolean array.
type LogicalValue struct {
	Shape []uint64
	Data  []bool
}

// StringValue holds an N-D array of (possibly missing) UTF-8 strings,
// corresponding to MATLAB's string array type. Missing marks elements
// that are <missing> rather than the empty string.
type StringValue struct {
	Shape   []uint64
	Data    []string
	Missing []bool
}

// CharValue holds a MATLAB char array, stored as UTF-16 code units
// with its original row/column shape. No NUL terminator is carried.
type CharValue struct {
	Shape []uint64
	Units []uint16
}

// DatetimeValue holds an N-D array of timestamps: signed milliseconds
// since the Unix epoch, a NaT mask marking not-a-time elements, and
// the locale/format/time-zone strings MATLAB datetime carries for
// display purposes.
type DatetimeValue struct {
	Shape      []uint64
	Millis     []int64
	NaT        []bool
	TimeZone   string
	Locale     string
	FormatSpec string
}

// DurationValue holds an N-D array of elapsed-time values: signed
// milliseconds plus a NaN mask.
type DurationValue struct {
	Shape  []uint64
	Millis []int64
	NaN    []bool
}

// CalendarDurationValue holds an N-D array of calendar durations.
// Calendar fields (months, days) have no fixed length in seconds, so
// they are kept separate from the sub-day component, which is an
// exact millisecond count.
type CalendarDurationValue struct {
	Shape   []uint64
	Months  []int32
	Days    []int32
	TimeMs  []int64
	Missing []bool
}

// CategoricalMissingCode is the sentinel code denoting a missing
// categorical element; it is never a valid index into Categories.
const CategoricalMissingCode = ^uint32(0)

// CategoricalValue holds an N-D categorical array: integer codes into
// an ordered category list, with CategoricalMissingCode denoting a
// missing element.
type CategoricalValue struct {
	Shape      []uint64
	Codes      []uint32
	Categories []string
}

// OpaqueValue holds a typed blob the writer does not otherwise model,
// preserved byte-for-byte.
type OpaqueValue struct {
	ClassName string
	Shape     []uint64
	Raw       []byte
}

// NewStruct builds a struct Value from an ordered list of fields.
func NewStruct(fields ...StructField) *Value {
	return &Value{Kind: KindStruct, Fields: fields}
}

// NewEmptyStruct builds the zero-field, 0x0 struct array leaf.
func NewEmptyStruct() *Value {
	return &Value{Kind: KindEmptyStruct}
}

// Field looks up an immediate child of a struct Value by name.
func (v *Value) Field(name string) (*Value, bool) {
	if v == nil || v.Kind != KindStruct {
		return nil, false
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// payload returns whichever typed payload is non-nil, or an error if
// Kind and the populated payload disagree. Used by the leaf walker so
// a mismatched Value fails fast instead of silently writing zero
// bytes.
func (v *Value) payload() (any, error) {
	switch v.Kind {
	case KindNumeric:
		if v.Numeric == nil {
			return nil, fmt.Errorf("value kind %q has nil Numeric payload", v.Kind)
		}
		return v.Numeric, nil
	case KindLogical:
		if v.Logical == nil {
			return nil, fmt.Errorf("value kind %q has nil Logical payload", v.Kind)
		}
		return v.Logical, nil
	case KindString:
		if v.String == nil {
			return nil, fmt.Errorf("value kind %q has nil String payload", v.Kind)
		}
		return v.String, nil
	case KindChar:
		if v.Char == nil {
			return nil, fmt.Errorf("value kind %q has nil Char payload", v.Kind)
		}
		return v.Char, nil
	case KindDatetime:
		if v.Datetime == nil {
			return nil, fmt.Errorf("value kind %q has nil Datetime payload", v.Kind)
		}
		return v.Datetime, nil
	case KindDuration:
		if v.Duration == nil {
			return nil, fmt.Errorf("value kind %q has nil Duration payload", v.Kind)
		}
		return v.Duration, nil
	case KindCalendarDuration:
		if v.CalendarDuration == nil {
			return nil, fmt.Errorf("value kind %q has nil CalendarDuration payload", v.Kind)
		}
		return v.CalendarDuration, nil
	case KindCategorical:
		if v.Categorical == nil {
			return nil, fmt.Errorf("value kind %q has nil Categorical payload", v.Kind)
		}
		return v.Categorical, nil
	case KindOpaque:
		if v.Opaque == nil {
			return nil, fmt.Errorf("value kind %q has nil Opaque payload", v.Kind)
		}
		return v.Opaque, nil
	case KindEmptyStruct:
		return nil, nil
	default:
		return nil, fmt.Errorf("unrecognized leaf kind %q", v.Kind)
	}
}

// IsLeaf reports whether v is encoded directly as a payload field
// rather than recursed into as a struct.
func (v *Value) IsLeaf() bool {
	return v != nil && v.Kind != KindStruct
}
