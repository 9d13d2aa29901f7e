package core

import (
	"fmt"
	"strings"
)

// SelectFields resolves varPath against a header's flat field table. An
// empty path selects every field (equivalent to reading the whole tree).
// A path matching a field's name exactly selects that single leaf
// (exact=true). Otherwise every field whose name begins with
// "varPath." is selected as a subtree (exact=false). An empty selection is
// reported as PathNotFound via the returned ok=false.
func SelectFields(fields []FieldMeta, varPath string) (selected []FieldMeta, exact bool, ok bool) {
	if varPath == "" {
		return fields, false, true
	}

	for _, f := range fields {
		if f.Name == varPath {
			return []FieldMeta{f}, true, true
		}
	}

	prefix := varPath + "."
	for _, f := range fields {
		if strings.HasPrefix(f.Name, prefix) {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 {
		return nil, false, false
	}
	return selected, false, true
}

// RelativeName strips the "prefix." leader from a field name selected as
// part of a subtree, for grafting into a relative struct.
func RelativeName(fieldName, prefix string) (string, error) {
	want := prefix + "."
	if !strings.HasPrefix(fieldName, want) {
		return "", fmt.Errorf("field %q does not have prefix %q", fieldName, want)
	}
	return fieldName[len(want):], nil
}
