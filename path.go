package gbf

import "strings"

// splitPath splits a dot-addressed field name into its components.
// An empty string yields no components (the document root).
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// joinPath rejoins path components produced by splitPath.
func joinPath(parts []string) string {
	return strings.Join(parts, ".")
}

// validateFieldName rejects names that would make dot-path addressing
// ambiguous: empty names, and names already containing a dot.
func validateFieldName(name string) error {
	if name == "" {
		return newError(ErrInvalidArgument, "struct field name must not be empty")
	}
	if strings.Contains(name, ".") {
		return newError(ErrInvalidArgument, "struct field name %q must not contain '.'", name)
	}
	return nil
}
