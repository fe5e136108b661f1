// pattern.go — destructuring patterns for FunPattern (spec §4.3, "Pattern
// destructuring").
//
// Grounded on the spec's own description ("force the argument to a record;
// bind each Match::Simple(id, meta) or Match::Assign(left, meta, nested)");
// there's no teacher analogue (the teacher's functions take a single
// positional parameter list, no record destructuring), so the field shapes
// here follow spec.md directly.
package nickel

// PatternField is one binding inside a destructuring pattern: a simple
// `{ x }` (Bind == Field, Nested == nil), a rename `{ x = y }`, or a nested
// destructuring `{ x = { y } }`. A field may carry `: Type` and `| contract`
// annotations before the `=` and a `? default` after it.
type PatternField struct {
	Field     Ident
	Bind      Ident
	Nested    *Pattern // non-nil when this field destructures further
	Doc       *string
	Type      *Type
	Contracts []*Term
	Default   *Term // optional; used when the field is absent from the argument
}

// Pattern is a record destructuring pattern.
type Pattern struct {
	Items []PatternField
	Open  bool   // true: extra fields are tolerated; false: forbidden
	Rest  *Ident // non-nil: bind leftover fields to this name
}
