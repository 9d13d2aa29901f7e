package gbf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *Value {
	return NewStruct(
		StructField{Name: "scalar", Value: &Value{Kind: KindNumeric, Numeric: &NumericValue{
			ClassName: "double", Shape: []uint64{1}, Real: []byte{0, 0, 0, 0, 0, 0, 240, 63},
		}}},
		StructField{Name: "nested", Value: NewStruct(
			StructField{Name: "flag", Value: &Value{Kind: KindLogical, Logical: &LogicalValue{
				Shape: []uint64{2}, Data: []bool{true, false},
			}}},
		)},
	)
}

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	tree := sampleTree()

	leaves, err := flattenValue(tree)
	if err != nil {
		t.Fatalf("flattenValue failed: %v", err)
	}
	if len(leaves) != 2 {
		t.Fatalf("len(leaves) = %d, want 2", len(leaves))
	}
	if leaves[0].Name != "scalar" || leaves[1].Name != "nested.flag" {
		t.Errorf("unexpected leaf names: %q, %q", leaves[0].Name, leaves[1].Name)
	}

	got, err := unflattenLeaves(leaves)
	if err != nil {
		t.Fatalf("unflattenLeaves failed: %v", err)
	}
	if diff := cmp.Diff(tree, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenValueRejectsNonStructRoot(t *testing.T) {
	leaf := &Value{Kind: KindLogical, Logical: &LogicalValue{Shape: []uint64{1}, Data: []bool{true}}}
	if _, err := flattenValue(leaf); err == nil {
		t.Errorf("expected error for non-struct root")
	}
}

func TestFlattenValueRejectsDuplicateNames(t *testing.T) {
	tree := NewStruct(
		StructField{Name: "a", Value: NewEmptyStruct()},
	)
	tree.Fields = append(tree.Fields, StructField{Name: "a", Value: NewEmptyStruct()})

	if _, err := flattenValue(tree); err == nil {
		t.Errorf("expected error for duplicate field name")
	}
}

func TestUnflattenSubtreeExactMatch(t *testing.T) {
	tree := sampleTree()
	leaves, err := flattenValue(tree)
	if err != nil {
		t.Fatalf("flattenValue failed: %v", err)
	}

	sub, err := unflattenSubtree(leaves[:1], "scalar", true)
	if err != nil {
		t.Fatalf("unflattenSubtree failed: %v", err)
	}
	if sub.Kind != KindNumeric {
		t.Errorf("sub.Kind = %v, want KindNumeric", sub.Kind)
	}
}

func TestUnflattenSubtreePrefixMatch(t *testing.T) {
	tree := sampleTree()
	leaves, err := flattenValue(tree)
	if err != nil {
		t.Fatalf("flattenValue failed: %v", err)
	}

	sub, err := unflattenSubtree(leaves[1:], "nested", false)
	if err != nil {
		t.Fatalf("unflattenSubtree failed: %v", err)
	}
	if sub.Kind != KindStruct {
		t.Fatalf("sub.Kind = %v, want KindStruct", sub.Kind)
	}
	if _, ok := sub.Field("flag"); !ok {
		t.Errorf("expected field 'flag' in subtree")
	}
}
