package core

// Leaf is the primitive record writer and reader exchange with the
// value-tree layer: one field's identity and metadata plus its
// canonical (uncompressed) payload bytes. The writer consumes Leaf
// values produced by walking a value tree; the reader produces Leaf
// values to be grafted back into one.
type Leaf struct {
	Name      string
	Kind      Kind
	ClassName string
	Shape     []uint64
	Complex   bool
	Encoding  string
	Payload   []byte
}
