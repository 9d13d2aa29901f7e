package gbf

import (
	"fmt"
	"math"

	"github.com/gredbin/gbf/internal/core"
	"github.com/gredbin/gbf/internal/utils"
)

// missingStringLen is the u32 length sentinel marking a <missing>
// string element, distinguishing it from the empty string.
const missingStringLen = 0xFFFFFFFF

// encodeLeaf converts one leaf Value into its wire payload bytes plus
// the metadata the header needs, ready for the writer to size,
// compress, and checksum. name is the leaf's full dot-path.
func encodeLeaf(name string, v *Value) (core.Leaf, error) {
	payload, err := v.payload()
	if err != nil {
		return core.Leaf{}, err
	}

	leaf := core.Leaf{Name: name}

	switch p := payload.(type) {
	case nil:
		leaf.Kind = core.KindEmptyStruct
	case *NumericValue:
		leaf.Kind = core.KindNumeric
		leaf.ClassName = p.ClassName
		leaf.Shape = p.Shape
		leaf.Complex = p.Complex
		if p.Complex && len(p.Imag) == 0 {
			return core.Leaf{}, newError(ErrInvalidArgument, "field %q: complex numeric with empty imag bytes", name)
		}
		leaf.Payload = append(append([]byte{}, p.Real...), p.Imag...)
	case *LogicalValue:
		leaf.Kind = core.KindLogical
		leaf.ClassName = string(core.KindLogical)
		leaf.Shape = p.Shape
		buf := make([]byte, len(p.Data))
		for i, b := range p.Data {
			if b {
				buf[i] = 1
			}
		}
		leaf.Payload = buf
	case *StringValue:
		leaf.Kind = core.KindString
		leaf.ClassName = string(core.KindString)
		leaf.Shape = p.Shape
		leaf.Payload, err = encodeStringArray(p)
		if err != nil {
			return core.Leaf{}, fmt.Errorf("field %q: %w", name, err)
		}
	case *CharValue:
		leaf.Kind = core.KindChar
		leaf.ClassName = string(core.KindChar)
		leaf.Shape = p.Shape
		leaf.Encoding = "utf-16-codeunits"
		buf := make([]byte, len(p.Units)*2)
		for i, u := range p.Units {
			copy(buf[i*2:], utils.PutUint32LE(uint32(u))[:2])
		}
		leaf.Payload = buf
	case *DatetimeValue:
		leaf.Kind = core.KindDatetime
		leaf.ClassName = string(core.KindDatetime)
		leaf.Shape = p.Shape
		leaf.Payload, err = encodeDatetime(p)
		if err != nil {
			return core.Leaf{}, fmt.Errorf("field %q: %w", name, err)
		}
	case *DurationValue:
		leaf.Kind = core.KindDuration
		leaf.ClassName = string(core.KindDuration)
		leaf.Shape = p.Shape
		leaf.Payload, err = encodeDuration(p)
		if err != nil {
			return core.Leaf{}, fmt.Errorf("field %q: %w", name, err)
		}
	case *CalendarDurationValue:
		leaf.Kind = core.KindCalendarDuration
		leaf.ClassName = string(core.KindCalendarDuration)
		leaf.Shape = p.Shape
		leaf.Payload, err = encodeCalendarDuration(p)
		if err != nil {
			return core.Leaf{}, fmt.Errorf("field %q: %w", name, err)
		}
	case *CategoricalValue:
		leaf.Kind = core.KindCategorical
		leaf.ClassName = string(core.KindCategorical)
		leaf.Shape = p.Shape
		leaf.Payload, err = encodeCategorical(p)
		if err != nil {
			return core.Leaf{}, fmt.Errorf("field %q: %w", name, err)
		}
	case *OpaqueValue:
		leaf.Kind = core.KindOpaque
		leaf.ClassName = p.ClassName
		leaf.Shape = p.Shape
		leaf.Payload = p.Raw
	default:
		return core.Leaf{}, fmt.Errorf("field %q: unhandled payload type %T", name, payload)
	}

	return leaf, nil
}

func encodeStringArray(p *StringValue) ([]byte, error) {
	count, err := utils.ShapeElementCount(p.Shape)
	if err != nil {
		return nil, err
	}
	if uint64(len(p.Data)) != count {
		return nil, fmt.Errorf("string array: shape implies %d elements, got %d", count, len(p.Data))
	}

	var out []byte
	for i, s := range p.Data {
		missing := i < len(p.Missing) && p.Missing[i]
		if missing {
			out = append(out, utils.PutUint32LE(missingStringLen)...)
			continue
		}
		out = append(out, utils.PutUint32LE(uint32(len(s)))...)
		out = append(out, s...)
	}
	return out, nil
}

func decodeStringArray(shape []uint64, data []byte) (*StringValue, error) {
	count, err := utils.ShapeElementCount(shape)
	if err != nil {
		return nil, err
	}

	out := &StringValue{Shape: shape, Data: make([]string, 0, count), Missing: make([]bool, 0, count)}
	pos := 0
	for i := uint64(0); i < count; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("string array: truncated length prefix at element %d", i)
		}
		n := le32(data[pos : pos+4])
		pos += 4
		if n == missingStringLen {
			out.Data = append(out.Data, "")
			out.Missing = append(out.Missing, true)
			continue
		}
		if pos+int(n) > len(data) {
			return nil, fmt.Errorf("string array: truncated string body at element %d", i)
		}
		out.Data = append(out.Data, string(data[pos:pos+int(n)]))
		out.Missing = append(out.Missing, false)
		pos += int(n)
	}
	return out, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func encodeMetaStrings(strs ...string) []byte {
	var out []byte
	for _, s := range strs {
		out = append(out, utils.PutUint32LE(uint32(len(s)))...)
		out = append(out, s...)
	}
	return out
}

func decodeMetaStrings(data []byte, n int) (strs []string, rest []byte, err error) {
	pos := 0
	for i := 0; i < n; i++ {
		if pos+4 > len(data) {
			return nil, nil, fmt.Errorf("truncated metadata string header")
		}
		l := le32(data[pos : pos+4])
		pos += 4
		if pos+int(l) > len(data) {
			return nil, nil, fmt.Errorf("truncated metadata string body")
		}
		strs = append(strs, string(data[pos:pos+int(l)]))
		pos += int(l)
	}
	return strs, data[pos:], nil
}

func encodeDatetime(p *DatetimeValue) ([]byte, error) {
	count, err := utils.ShapeElementCount(p.Shape)
	if err != nil {
		return nil, err
	}
	if uint64(len(p.Millis)) != count {
		return nil, fmt.Errorf("datetime: shape implies %d elements, got %d", count, len(p.Millis))
	}

	out := encodeMetaStrings(p.TimeZone, p.Locale, p.FormatSpec)
	for i := uint64(0); i < count; i++ {
		nat := i < uint64(len(p.NaT)) && p.NaT[i]
		out = append(out, boolByte(nat))
	}
	for _, ms := range p.Millis {
		out = append(out, utils.PutInt64LE(ms)...)
	}
	return out, nil
}

func decodeDatetime(shape []uint64, data []byte) (*DatetimeValue, error) {
	count, err := utils.ShapeElementCount(shape)
	if err != nil {
		return nil, err
	}
	strs, rest, err := decodeMetaStrings(data, 3)
	if err != nil {
		return nil, fmt.Errorf("datetime: %w", err)
	}
	need := int(count) + int(count)*8
	if len(rest) != need {
		return nil, fmt.Errorf("datetime: payload length %d, want %d", len(rest), need)
	}
	out := &DatetimeValue{Shape: shape, TimeZone: strs[0], Locale: strs[1], FormatSpec: strs[2]}
	out.NaT = make([]bool, count)
	for i := uint64(0); i < count; i++ {
		out.NaT[i] = rest[i] != 0
	}
	out.Millis = make([]int64, count)
	base := int(count)
	for i := uint64(0); i < count; i++ {
		off := base + int(i)*8
		out.Millis[i] = utils.Int64LE(rest[off : off+8])
	}
	return out, nil
}

func encodeDuration(p *DurationValue) ([]byte, error) {
	count, err := utils.ShapeElementCount(p.Shape)
	if err != nil {
		return nil, err
	}
	if uint64(len(p.Millis)) != count {
		return nil, fmt.Errorf("duration: shape implies %d elements, got %d", count, len(p.Millis))
	}
	var out []byte
	for i := uint64(0); i < count; i++ {
		nan := i < uint64(len(p.NaN)) && p.NaN[i]
		out = append(out, boolByte(nan))
	}
	for _, ms := range p.Millis {
		out = append(out, utils.PutInt64LE(ms)...)
	}
	return out, nil
}

func decodeDuration(shape []uint64, data []byte) (*DurationValue, error) {
	count, err := utils.ShapeElementCount(shape)
	if err != nil {
		return nil, err
	}
	need := int(count) + int(count)*8
	if len(data) != need {
		return nil, fmt.Errorf("duration: payload length %d, want %d", len(data), need)
	}
	out := &DurationValue{Shape: shape, NaN: make([]bool, count), Millis: make([]int64, count)}
	for i := uint64(0); i < count; i++ {
		out.NaN[i] = data[i] != 0
	}
	base := int(count)
	for i := uint64(0); i < count; i++ {
		off := base + int(i)*8
		out.Millis[i] = utils.Int64LE(data[off : off+8])
	}
	return out, nil
}

func encodeCalendarDuration(p *CalendarDurationValue) ([]byte, error) {
	count, err := utils.ShapeElementCount(p.Shape)
	if err != nil {
		return nil, err
	}
	if uint64(len(p.Months)) != count || uint64(len(p.Days)) != count || uint64(len(p.TimeMs)) != count {
		return nil, fmt.Errorf("calendarduration: shape implies %d elements, components disagree", count)
	}
	var out []byte
	for i := uint64(0); i < count; i++ {
		missing := i < uint64(len(p.Missing)) && p.Missing[i]
		out = append(out, boolByte(missing))
	}
	for i := uint64(0); i < count; i++ {
		out = append(out, utils.PutInt32LE(p.Months[i])...)
		out = append(out, utils.PutInt32LE(p.Days[i])...)
		out = append(out, utils.PutInt64LE(p.TimeMs[i])...)
	}
	return out, nil
}

func decodeCalendarDuration(shape []uint64, data []byte) (*CalendarDurationValue, error) {
	count, err := utils.ShapeElementCount(shape)
	if err != nil {
		return nil, err
	}
	need := int(count) + int(count)*16
	if len(data) != need {
		return nil, fmt.Errorf("calendarduration: payload length %d, want %d", len(data), need)
	}
	out := &CalendarDurationValue{
		Shape: shape, Missing: make([]bool, count),
		Months: make([]int32, count), Days: make([]int32, count), TimeMs: make([]int64, count),
	}
	for i := uint64(0); i < count; i++ {
		out.Missing[i] = data[i] != 0
	}
	base := int(count)
	for i := uint64(0); i < count; i++ {
		off := base + int(i)*16
		out.Months[i] = utils.Int32LE(data[off : off+4])
		out.Days[i] = utils.Int32LE(data[off+4 : off+8])
		out.TimeMs[i] = utils.Int64LE(data[off+8 : off+16])
	}
	return out, nil
}

func encodeCategorical(p *CategoricalValue) ([]byte, error) {
	count, err := utils.ShapeElementCount(p.Shape)
	if err != nil {
		return nil, err
	}
	if uint64(len(p.Codes)) != count {
		return nil, fmt.Errorf("categorical: shape implies %d elements, got %d", count, len(p.Codes))
	}
	if uint64(len(p.Categories)) > math.MaxUint32 {
		return nil, fmt.Errorf("categorical: too many categories")
	}

	out := utils.PutUint32LE(uint32(len(p.Categories)))
	for _, c := range p.Categories {
		out = append(out, utils.PutUint32LE(uint32(len(c)))...)
		out = append(out, c...)
	}
	for _, code := range p.Codes {
		out = append(out, utils.PutUint32LE(code)...)
	}
	return out, nil
}

func decodeCategorical(shape []uint64, data []byte) (*CategoricalValue, error) {
	count, err := utils.ShapeElementCount(shape)
	if err != nil {
		return nil, err
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("categorical: truncated category count")
	}
	ncat := le32(data[0:4])
	pos := 4
	cats := make([]string, 0, ncat)
	for i := uint32(0); i < ncat; i++ {
		if pos+4 > len(data) {
			return nil, fmt.Errorf("categorical: truncated category %d", i)
		}
		l := le32(data[pos : pos+4])
		pos += 4
		if pos+int(l) > len(data) {
			return nil, fmt.Errorf("categorical: truncated category body %d", i)
		}
		cats = append(cats, string(data[pos:pos+int(l)]))
		pos += int(l)
	}

	need := pos + int(count)*4
	if len(data) != need {
		return nil, fmt.Errorf("categorical: payload length %d, want %d", len(data), need)
	}
	codes := make([]uint32, count)
	for i := uint64(0); i < count; i++ {
		off := pos + int(i)*4
		codes[i] = le32(data[off : off+4])
	}
	return &CategoricalValue{Shape: shape, Codes: codes, Categories: cats}, nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// decodeLeaf reconstructs a leaf Value from its wire record.
func decodeLeaf(leaf core.Leaf) (*Value, error) {
	switch leaf.Kind {
	case core.KindEmptyStruct:
		return NewEmptyStruct(), nil
	case core.KindNumeric:
		elemSize, ok := core.NumericElemSize(leaf.ClassName)
		if !ok {
			return nil, fmt.Errorf("field %q: unknown numeric class %q", leaf.Name, leaf.ClassName)
		}
		count, err := utils.ShapeElementCount(leaf.Shape)
		if err != nil {
			return nil, err
		}
		realLen, err := utils.SafeMultiply(count, elemSize)
		if err != nil {
			return nil, err
		}
		if leaf.Complex {
			if uint64(len(leaf.Payload)) != realLen*2 {
				return nil, fmt.Errorf("field %q: complex numeric payload length mismatch", leaf.Name)
			}
			return &Value{Kind: KindNumeric, Numeric: &NumericValue{
				ClassName: leaf.ClassName, Shape: leaf.Shape, Complex: true,
				Real: append([]byte{}, leaf.Payload[:realLen]...),
				Imag: append([]byte{}, leaf.Payload[realLen:]...),
			}}, nil
		}
		if uint64(len(leaf.Payload)) != realLen {
			return nil, fmt.Errorf("field %q: numeric payload length mismatch", leaf.Name)
		}
		return &Value{Kind: KindNumeric, Numeric: &NumericValue{
			ClassName: leaf.ClassName, Shape: leaf.Shape, Real: append([]byte{}, leaf.Payload...),
		}}, nil
	case core.KindLogical:
		count, err := utils.ShapeElementCount(leaf.Shape)
		if err != nil {
			return nil, err
		}
		if uint64(len(leaf.Payload)) != count {
			return nil, fmt.Errorf("field %q: logical payload length mismatch", leaf.Name)
		}
		data := make([]bool, count)
		for i, b := range leaf.Payload {
			data[i] = b != 0
		}
		return &Value{Kind: KindLogical, Logical: &LogicalValue{Shape: leaf.Shape, Data: data}}, nil
	case core.KindString:
		sv, err := decodeStringArray(leaf.Shape, leaf.Payload)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		return &Value{Kind: KindString, String: sv}, nil
	case core.KindChar:
		count, err := utils.ShapeElementCount(leaf.Shape)
		if err != nil {
			return nil, err
		}
		if uint64(len(leaf.Payload)) != count*2 {
			return nil, fmt.Errorf("field %q: char payload length mismatch", leaf.Name)
		}
		units := make([]uint16, count)
		for i := uint64(0); i < count; i++ {
			off := int(i) * 2
			units[i] = uint16(leaf.Payload[off]) | uint16(leaf.Payload[off+1])<<8
		}
		return &Value{Kind: KindChar, Char: &CharValue{Shape: leaf.Shape, Units: units}}, nil
	case core.KindDatetime:
		dv, err := decodeDatetime(leaf.Shape, leaf.Payload)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		return &Value{Kind: KindDatetime, Datetime: dv}, nil
	case core.KindDuration:
		dv, err := decodeDuration(leaf.Shape, leaf.Payload)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		return &Value{Kind: KindDuration, Duration: dv}, nil
	case core.KindCalendarDuration:
		cv, err := decodeCalendarDuration(leaf.Shape, leaf.Payload)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		return &Value{Kind: KindCalendarDuration, CalendarDuration: cv}, nil
	case core.KindCategorical:
		cv, err := decodeCategorical(leaf.Shape, leaf.Payload)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", leaf.Name, err)
		}
		return &Value{Kind: KindCategorical, Categorical: cv}, nil
	case core.KindOpaque:
		return &Value{Kind: KindOpaque, Opaque: &OpaqueValue{
			ClassName: leaf.ClassName, Shape: leaf.Shape, Raw: append([]byte{}, leaf.Payload...),
		}}, nil
	default:
		return nil, fmt.Errorf("field %q: unrecognized kind %q", leaf.Name, leaf.Kind)
	}
}
