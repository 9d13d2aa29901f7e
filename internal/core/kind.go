package core

// Kind identifies the variant of a leaf field, mirroring the value model's
// discriminant tag. It is string-backed because it is, byte for byte, the
// value stored in the header JSON's "kind" field.
type Kind string

// Leaf kinds, as they appear in the header JSON.
const (
	KindNumeric          Kind = "numeric"
	KindLogical          Kind = "logical"
	KindString           Kind = "string"
	KindChar             Kind = "char"
	KindDatetime         Kind = "datetime"
	KindDuration         Kind = "duration"
	KindCalendarDuration Kind = "calendarduration"
	KindCategorical      Kind = "categorical"
	KindOpaque           Kind = "opaque"
	KindEmptyStruct      Kind = "empty_struct"
)

// Compression identifies a field's stored compression codec.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZlib Compression = "zlib"
)

// knownKinds lists every kind the reader accepts in a header.
var knownKinds = map[Kind]bool{
	KindNumeric: true, KindLogical: true, KindString: true, KindChar: true,
	KindDatetime: true, KindDuration: true, KindCalendarDuration: true,
	KindCategorical: true, KindOpaque: true, KindEmptyStruct: true,
}

// IsKnownKind reports whether k is one of the kinds this implementation
// understands.
func IsKnownKind(k Kind) bool {
	return knownKinds[k]
}

// numericElemSizes maps each numeric class name to its per-element byte
// size. Class names for non-numeric kinds simply echo the kind, per the
// header schema, and have no entry here.
var numericElemSizes = map[string]uint64{
	"double": 8, "single": 4,
	"int8": 1, "uint8": 1,
	"int16": 2, "uint16": 2,
	"int32": 4, "uint32": 4,
	"int64": 8, "uint64": 8,
}

// NumericElemSize returns the per-element byte size for a numeric class
// name, and false if className is not a recognized numeric class.
func NumericElemSize(className string) (uint64, bool) {
	sz, ok := numericElemSizes[className]
	return sz, ok
}

// IsValidNumericClass reports whether className is one of the ten
// recognized numeric classes.
func IsValidNumericClass(className string) bool {
	_, ok := numericElemSizes[className]
	return ok
}
