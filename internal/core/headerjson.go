package core

import (
	"fmt"

	"github.com/gredbin/gbf/internal/jsoncodec"
)

// BuildJSON serializes h into the canonical header JSON form, with
// header_crc32_hex set to eight '0' placeholder characters. The canonical
// top-level key order (format, magic, version, endianness, order, root,
// payload_start, file_size, header_crc32_hex, fields) is not externally
// significant but is kept stable for diffing.
func BuildJSON(h *Header) []byte {
	obj := jsoncodec.Obj().
		Set("format", jsoncodec.Str(h.Format)).
		Set("magic", jsoncodec.Str(h.Magic)).
		Set("version", jsoncodec.Uint(h.Version)).
		Set("endianness", jsoncodec.Str(h.Endianness)).
		Set("order", jsoncodec.Str(h.Order)).
		Set("root", jsoncodec.Str(h.Root)).
		Set("payload_start", jsoncodec.Uint(h.PayloadStart)).
		Set("file_size", jsoncodec.Uint(h.FileSize)).
		Set("header_crc32_hex", jsoncodec.Str("00000000")).
		Set("fields", encodeFields(h.Fields))

	return jsoncodec.Marshal(obj)
}

func encodeFields(fields []FieldMeta) *jsoncodec.Value {
	items := make([]*jsoncodec.Value, len(fields))
	for i, f := range fields {
		items[i] = encodeField(f)
	}
	return jsoncodec.Arr(items...)
}

func encodeField(f FieldMeta) *jsoncodec.Value {
	shape := make([]*jsoncodec.Value, len(f.Shape))
	for i, d := range f.Shape {
		shape[i] = jsoncodec.Uint(d)
	}

	return jsoncodec.Obj().
		Set("name", jsoncodec.Str(f.Name)).
		Set("kind", jsoncodec.Str(string(f.Kind))).
		Set("class_name", jsoncodec.Str(f.ClassName)).
		Set("shape", jsoncodec.Arr(shape...)).
		Set("complex", jsoncodec.Bool(f.Complex)).
		Set("encoding", jsoncodec.Str(f.Encoding)).
		Set("compression", jsoncodec.Str(string(f.Compression))).
		Set("offset", jsoncodec.Uint(f.Offset)).
		Set("csize", jsoncodec.Uint(f.CSize)).
		Set("usize", jsoncodec.Uint(f.USize)).
		Set("crc32", jsoncodec.Uint(uint64(f.CRC32)))
}

// ParseJSON parses raw header JSON bytes into a Header. Unknown keys are
// ignored, matching the wire contract that writers emit only documented
// keys but readers tolerate additions.
func ParseJSON(data []byte) (*Header, error) {
	root, err := jsoncodec.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("header JSON invalid: %w", err)
	}
	if root.Kind != jsoncodec.KindObject {
		return nil, fmt.Errorf("header JSON invalid: root is not an object")
	}

	h := &Header{
		Format:         root.GetString("format"),
		Magic:          root.GetString("magic"),
		Endianness:     root.GetString("endianness"),
		Order:          root.GetString("order"),
		Root:           root.GetString("root"),
		HeaderCRC32Hex: root.GetString("header_crc32_hex"),
	}

	if v, ok := root.GetUint64("version"); ok {
		h.Version = v
	}
	if v, ok := root.GetUint64("payload_start"); ok {
		h.PayloadStart = v
	}
	if v, ok := root.GetUint64("file_size"); ok {
		h.FileSize = v
	}

	fieldsArr := root.GetArray("fields")
	h.Fields = make([]FieldMeta, 0, len(fieldsArr))
	for i, fv := range fieldsArr {
		f, err := decodeField(fv)
		if err != nil {
			return nil, fmt.Errorf("header JSON invalid: field %d: %w", i, err)
		}
		h.Fields = append(h.Fields, f)
	}

	return h, nil
}

func decodeField(v *jsoncodec.Value) (FieldMeta, error) {
	if v == nil || v.Kind != jsoncodec.KindObject {
		return FieldMeta{}, fmt.Errorf("field entry is not an object")
	}

	f := FieldMeta{
		Name:        v.GetString("name"),
		Kind:        Kind(v.GetString("kind")),
		ClassName:   v.GetString("class_name"),
		Complex:     v.GetBool("complex"),
		Encoding:    v.GetString("encoding"),
		Compression: Compression(v.GetString("compression")),
	}
	if f.Name == "" {
		return FieldMeta{}, fmt.Errorf("field has empty name")
	}

	shapeArr := v.GetArray("shape")
	f.Shape = make([]uint64, len(shapeArr))
	for i, dv := range shapeArr {
		d, ok := dv.Uint64()
		if !ok {
			return FieldMeta{}, fmt.Errorf("field %q: shape[%d] is not a non-negative integer", f.Name, i)
		}
		f.Shape[i] = d
	}

	var ok bool
	if f.Offset, ok = v.GetUint64("offset"); !ok {
		return FieldMeta{}, fmt.Errorf("field %q: missing offset", f.Name)
	}
	if f.CSize, ok = v.GetUint64("csize"); !ok {
		return FieldMeta{}, fmt.Errorf("field %q: missing csize", f.Name)
	}
	if f.USize, ok = v.GetUint64("usize"); !ok {
		return FieldMeta{}, fmt.Errorf("field %q: missing usize", f.Name)
	}
	crc, _ := v.GetUint64("crc32")
	f.CRC32 = uint32(crc)

	return f, nil
}
