package schema

// FieldEncoding describes one field of a record: its wire id, its
// declared quantifier and type, and — for fixed-size arrays — the
// flattened element count.
type FieldEncoding struct {
	// ID is the wire identifier of this field within its containing
	// record. Must be nonzero.
	ID FieldID

	// Name is descriptive only; it is never written to the wire.
	Name string

	// Quant is this field's multiplicity.
	Quant Quantifier

	// Typ is the wire type of a single element of this field.
	Typ Type

	// Bounds is the product of all array-dimension extents for a
	// fixed-size array field (e.g. [3][3]float32 -> 9). A scalar field
	// leaves Bounds unset (HasBounds() == false).
	Bounds    int
	hasBounds bool
}

// NewArrayField builds a FieldEncoding for a fixed-size array field with
// the given flattened bounds (the product of its dimension extents).
func NewArrayField(id FieldID, name string, quant Quantifier, typ Type, bounds int) FieldEncoding {
	return FieldEncoding{ID: id, Name: name, Quant: quant, Typ: typ, Bounds: bounds, hasBounds: true}
}

// HasBounds reports whether this field is a fixed-size array (true) or a
// plain scalar (false).
func (f FieldEncoding) HasBounds() bool {
	return f.hasBounds
}
