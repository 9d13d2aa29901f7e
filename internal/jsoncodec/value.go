// Package jsoncodec implements a tight JSON subset sufficient to parse and
// emit the GBF header: objects with order-preserving keys, arrays, strings
// (with \uXXXX escapes), numbers (kept in raw textual form so 64-bit integer
// precision survives round-tripping), booleans, and null. It intentionally
// does not support the full JSON grammar's exotic corners (e.g. comments,
// trailing commas) since the header schema never needs them.
package jsoncodec

// Kind discriminates the tagged variants of a parsed JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Member is a single key/value pair of an object, kept in parse/insertion
// order since the header's "fields" array ordering is semantically
// significant.
type Member struct {
	Key   string
	Value *Value
}

// Value is a tagged JSON value. Exactly one of the kind-specific fields is
// meaningful, selected by Kind.
type Value struct {
	Kind    Kind
	Bool    bool
	Raw     string   // Raw textual form of a number, e.g. "42" or "3.14".
	Str     string   // Decoded string contents.
	Array   []*Value
	Members []Member
}

// Null returns the JSON null value.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a JSON boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Str returns a JSON string value.
func Str(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Int returns a JSON number value from an int64.
func Int(n int64) *Value { return &Value{Kind: KindNumber, Raw: formatInt64(n)} }

// Uint returns a JSON number value from a uint64, preserving full precision.
func Uint(n uint64) *Value { return &Value{Kind: KindNumber, Raw: formatUint64(n)} }

// Arr returns a JSON array value.
func Arr(items ...*Value) *Value {
	return &Value{Kind: KindArray, Array: items}
}

// Obj returns an empty JSON object that members can be appended to with Set.
func Obj() *Value {
	return &Value{Kind: KindObject}
}

// Set appends a key/value member to an object, preserving insertion order.
// Set does not deduplicate keys; callers are responsible for using each key
// once.
func (v *Value) Set(key string, val *Value) *Value {
	v.Members = append(v.Members, Member{Key: key, Value: val})
	return v
}

// Get returns the member value for key, or nil if absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != KindObject {
		return nil
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// GetString returns the string contents of a member, or "" if absent or not
// a string.
func (v *Value) GetString(key string) string {
	m := v.Get(key)
	if m == nil || m.Kind != KindString {
		return ""
	}
	return m.Str
}

// GetBool returns the boolean contents of a member.
func (v *Value) GetBool(key string) bool {
	m := v.Get(key)
	if m == nil || m.Kind != KindBool {
		return false
	}
	return m.Bool
}

// GetUint64 returns a member's numeric contents as a uint64, preferring the
// raw textual token over a float round-trip so full 64-bit precision is
// preserved.
func (v *Value) GetUint64(key string) (uint64, bool) {
	m := v.Get(key)
	if m == nil || m.Kind != KindNumber {
		return 0, false
	}
	return parseUint64(m.Raw)
}

// GetArray returns a member's array contents, or nil if absent.
func (v *Value) GetArray(key string) []*Value {
	m := v.Get(key)
	if m == nil || m.Kind != KindArray {
		return nil
	}
	return m.Array
}

// Uint64 returns the value's own numeric contents as a uint64.
func (v *Value) Uint64() (uint64, bool) {
	if v == nil || v.Kind != KindNumber {
		return 0, false
	}
	return parseUint64(v.Raw)
}
