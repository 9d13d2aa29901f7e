package jsoncodec

import (
	"fmt"
)

// Marshal emits deterministic JSON for v: object members in insertion
// order, no trailing commas, UTF-8 throughout. Non-ASCII runes are written
// literally (valid UTF-8 bytes), not \u-escaped, since the header is an
// ordinary UTF-8 document without a BOM.
func Marshal(v *Value) []byte {
	var buf []byte
	buf = appendValue(buf, v)
	return buf
}

func appendValue(buf []byte, v *Value) []byte {
	if v == nil {
		return append(buf, "null"...)
	}
	switch v.Kind {
	case KindNull:
		return append(buf, "null"...)
	case KindBool:
		if v.Bool {
			return append(buf, "true"...)
		}
		return append(buf, "false"...)
	case KindNumber:
		return append(buf, v.Raw...)
	case KindString:
		return appendString(buf, v.Str)
	case KindArray:
		buf = append(buf, '[')
		for i, item := range v.Array {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendValue(buf, item)
		}
		return append(buf, ']')
	case KindObject:
		buf = append(buf, '{')
		for i, m := range v.Members {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendString(buf, m.Key)
			buf = append(buf, ':')
			buf = appendValue(buf, m.Value)
		}
		return append(buf, '}')
	default:
		panic(fmt.Sprintf("jsoncodec: unknown value kind %d", v.Kind))
	}
}

func appendString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for _, r := range s {
		switch r {
		case '"':
			buf = append(buf, `\"`...)
		case '\\':
			buf = append(buf, `\\`...)
		case '\n':
			buf = append(buf, `\n`...)
		case '\r':
			buf = append(buf, `\r`...)
		case '\t':
			buf = append(buf, `\t`...)
		default:
			if r < 0x20 {
				buf = append(buf, `\u`...)
				buf = append(buf, fmt.Sprintf("%04x", r)...)
			} else {
				var tmp [4]byte
				n := encodeRune(tmp[:], r)
				buf = append(buf, tmp[:n]...)
			}
		}
	}
	return append(buf, '"')
}

func encodeRune(dst []byte, r rune) int {
	return copy(dst, string(r))
}
