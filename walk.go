package gbf

import (
	"fmt"
	"strings"

	"github.com/gredbin/gbf/internal/core"
)

// flattenValue walks root depth-first in insertion order and returns
// one core.Leaf per non-struct leaf it encounters, named by its full
// dot-path. root must be a struct.
func flattenValue(root *Value) ([]core.Leaf, error) {
	if root == nil || root.Kind != KindStruct {
		return nil, newError(ErrInvalidArgument, "root value must be a struct")
	}

	var leaves []core.Leaf
	seen := map[string]bool{}

	var walk func(v *Value, prefix string) error
	walk = func(v *Value, prefix string) error {
		for _, f := range v.Fields {
			if err := validateFieldName(f.Name); err != nil {
				return err
			}
			path := f.Name
			if prefix != "" {
				path = prefix + "." + f.Name
			}
			if f.Value == nil {
				return newError(ErrInvalidArgument, "field %q has nil value", path)
			}
			if f.Value.Kind == KindStruct {
				if err := walk(f.Value, path); err != nil {
					return err
				}
				continue
			}
			if seen[path] {
				return newError(ErrInvalidArgument, "duplicate field name %q", path)
			}
			seen[path] = true

			leaf, err := encodeLeaf(path, f.Value)
			if err != nil {
				return wrapError(ErrInvalidArgument, "encoding leaf", err)
			}
			leaves = append(leaves, leaf)
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return nil, err
	}
	return leaves, nil
}

// unflattenLeaves reconstructs a struct value tree from an ordered
// list of core.Leaf records, creating struct interiors on demand in
// the order their first child appears.
func unflattenLeaves(leaves []core.Leaf) (*Value, error) {
	root := NewStruct()

	for _, leaf := range leaves {
		parts := strings.Split(leaf.Name, ".")
		if len(parts) == 0 || parts[len(parts)-1] == "" {
			return nil, fmt.Errorf("invalid field name %q", leaf.Name)
		}

		value, err := decodeLeaf(leaf)
		if err != nil {
			return nil, err
		}

		if err := graft(root, parts, value); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// graft inserts leaf at the struct path given by parts (parts[:-1] are
// struct interiors, parts[len-1] is the leaf's own name), creating
// intermediate structs as needed.
func graft(root *Value, parts []string, leaf *Value) error {
	cur := root
	for _, seg := range parts[:len(parts)-1] {
		child, ok := cur.Field(seg)
		if !ok {
			child = NewStruct()
			cur.Fields = append(cur.Fields, StructField{Name: seg, Value: child})
		} else if child.Kind != KindStruct {
			return fmt.Errorf("path segment %q is not a struct", seg)
		}
		cur = child
	}

	name := parts[len(parts)-1]
	if _, exists := cur.Field(name); exists {
		return fmt.Errorf("duplicate field name %q", name)
	}
	cur.Fields = append(cur.Fields, StructField{Name: name, Value: leaf})
	return nil
}

// unflattenSubtree behaves like unflattenLeaves but relative to a
// selected prefix: if exact is set, leaves must hold exactly one field
// (the one whose name equals prefix), and that field's decoded Value
// is returned directly (not wrapped in a struct). Otherwise a struct is
// built from the leaves' names relative to prefix.
func unflattenSubtree(leaves []core.Leaf, prefix string, exact bool) (*Value, error) {
	if exact {
		if len(leaves) != 1 {
			return nil, fmt.Errorf("exact path selection must resolve to exactly one field, got %d", len(leaves))
		}
		return decodeLeaf(leaves[0])
	}

	if prefix == "" {
		return unflattenLeaves(leaves)
	}

	relative := make([]core.Leaf, len(leaves))
	for i, leaf := range leaves {
		rel, err := core.RelativeName(leaf.Name, prefix)
		if err != nil {
			return nil, err
		}
		relative[i] = leaf
		relative[i].Name = rel
	}
	return unflattenLeaves(relative)
}
