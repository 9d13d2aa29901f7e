package gbf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeLeafNumericComplex(t *testing.T) {
	v := &Value{Kind: KindNumeric, Numeric: &NumericValue{
		ClassName: "double", Shape: []uint64{2}, Complex: true,
		Real: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		Imag: []byte{16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	}}

	leaf, err := encodeLeaf("x", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}

	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeLeafRejectsComplexWithEmptyImag(t *testing.T) {
	v := &Value{Kind: KindNumeric, Numeric: &NumericValue{
		ClassName: "double", Shape: []uint64{1}, Complex: true,
		Real: []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}}
	if _, err := encodeLeaf("x", v); err == nil {
		t.Errorf("expected error for complex numeric with empty imag bytes")
	}
}

func TestEncodeDecodeStringArrayWithMissing(t *testing.T) {
	v := &Value{Kind: KindString, String: &StringValue{
		Shape:   []uint64{3},
		Data:    []string{"hello", "", "world"},
		Missing: []bool{false, true, false},
	}}

	leaf, err := encodeLeaf("s", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeCharArray(t *testing.T) {
	v := &Value{Kind: KindChar, Char: &CharValue{
		Shape: []uint64{5},
		Units: []uint16{'h', 'e', 'l', 'l', 'o'},
	}}

	leaf, err := encodeLeaf("c", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeDatetime(t *testing.T) {
	v := &Value{Kind: KindDatetime, Datetime: &DatetimeValue{
		Shape: []uint64{3}, Millis: []int64{0, 1000, -1},
		NaT: []bool{false, false, true}, TimeZone: "UTC", Locale: "en_US", FormatSpec: "yyyy-MM-dd",
	}}

	leaf, err := encodeLeaf("d", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeCalendarDuration(t *testing.T) {
	v := &Value{Kind: KindCalendarDuration, CalendarDuration: &CalendarDurationValue{
		Shape: []uint64{2}, Months: []int32{1, -2}, Days: []int32{15, 0},
		TimeMs: []int64{3600000, 0}, Missing: []bool{false, true},
	}}

	leaf, err := encodeLeaf("cd", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeCategoricalWithMissing(t *testing.T) {
	v := &Value{Kind: KindCategorical, Categorical: &CategoricalValue{
		Shape:      []uint64{3},
		Codes:      []uint32{0, 1, CategoricalMissingCode},
		Categories: []string{"low", "high"},
	}}

	leaf, err := encodeLeaf("cat", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecodeEmptyStruct(t *testing.T) {
	v := NewEmptyStruct()
	leaf, err := encodeLeaf("empty", v)
	if err != nil {
		t.Fatalf("encodeLeaf failed: %v", err)
	}
	got, err := decodeLeaf(leaf)
	if err != nil {
		t.Fatalf("decodeLeaf failed: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
