// types.go — type representation & elaboration (spec §4.6).
//
// Grounded on the teacher's types.go: the same recursive-descent structure
// (a small `switch` over the type's head constructor, repeated in each
// helper: String, FreeTypeVars, TypesEqual) is kept, but the representation
// itself is rebuilt. The teacher encodes types as S-expressions over a
// closed set of builtin names; this spec needs row variables and `forall`,
// so Type here is a proper tagged struct (same Tag+Data idiom as Term) with
// RowEmpty/RowExtend threaded through both StaticRecord and Enum, and a
// Flat case that lifts an arbitrary Term into type position — none of which
// the teacher's grammar has.
package nickel

import (
	"fmt"
	"sort"
	"strings"
)

type TypeTag int

const (
	TyDyn TypeTag = iota
	TyNum
	TyBool
	TyStr
	TyVar
	TyArrow
	TyList
	TyForall
	TyRowEmpty
	TyRowExtend
	TyStaticRecord
	TyDynRecord
	TyEnum
	TyFlat
)

type Type struct {
	Tag  TypeTag
	Data any
}

func mkT(tag TypeTag, data any) *Type { return &Type{Tag: tag, Data: data} }

var (
	Dyn   = mkT(TyDyn, nil)
	NumT  = mkT(TyNum, nil)
	BoolT = mkT(TyBool, nil)
	StrT  = mkT(TyStr, nil)
)

func RowEmpty() *Type { return mkT(TyRowEmpty, nil) }

type ArrowType struct{ Dom, Codom *Type }

func Arrow(dom, codom *Type) *Type { return mkT(TyArrow, &ArrowType{Dom: dom, Codom: codom}) }

func ListT(elem *Type) *Type { return mkT(TyList, elem) }

type ForallType struct {
	Var  Ident
	Body *Type
}

func Forall(v Ident, body *Type) *Type { return mkT(TyForall, &ForallType{Var: v, Body: body}) }

func VarT(id Ident) *Type { return mkT(TyVar, id) }

// RowExtendType is one row-entry link: field `Field` (of type `FieldType`,
// nil for an enum's untyped tags), followed by `Tail` (another row,
// RowEmpty, or Dyn for a row the parser saw written open with `..`).
type RowExtendType struct {
	Field     Ident
	FieldType *Type
	Tail      *Type
}

func RowExtend(field Ident, fieldType *Type, tail *Type) *Type {
	return mkT(TyRowExtend, &RowExtendType{Field: field, FieldType: fieldType, Tail: tail})
}

func StaticRecord(row *Type) *Type { return mkT(TyStaticRecord, row) }
func DynRecord(elem *Type) *Type   { return mkT(TyDynRecord, elem) }
func EnumT(row *Type) *Type        { return mkT(TyEnum, row) }
func Flat(expr *Term) *Type        { return mkT(TyFlat, expr) }

// String renders a type for diagnostics (contract-violation messages).
func (t *Type) String() string {
	if t == nil {
		return "Dyn"
	}
	switch t.Tag {
	case TyDyn:
		return "Dyn"
	case TyNum:
		return "Num"
	case TyBool:
		return "Bool"
	case TyStr:
		return "Str"
	case TyVar:
		return t.Data.(Ident).Name
	case TyArrow:
		a := t.Data.(*ArrowType)
		return fmt.Sprintf("%s -> %s", a.Dom, a.Codom)
	case TyList:
		return fmt.Sprintf("List %s", t.Data.(*Type))
	case TyForall:
		f := t.Data.(*ForallType)
		return fmt.Sprintf("forall %s. %s", f.Var.Name, f.Body)
	case TyRowEmpty:
		return ""
	case TyRowExtend:
		r := t.Data.(*RowExtendType)
		if r.FieldType == nil {
			return strings.TrimPrefix(fmt.Sprintf("%s, %s", r.Field.Name, r.Tail), ", ")
		}
		return strings.TrimPrefix(fmt.Sprintf("%s: %s, %s", r.Field.Name, r.FieldType, r.Tail), ", ")
	case TyStaticRecord:
		return fmt.Sprintf("{%s}", t.Data.(*Type))
	case TyDynRecord:
		return fmt.Sprintf("{_: %s}", t.Data.(*Type))
	case TyEnum:
		return fmt.Sprintf("[|%s|]", t.Data.(*Type))
	case TyFlat:
		return "<user contract>"
	}
	return "<?>"
}

// rowFields flattens a row into (fields in a fixed order, tail). A tail of
// nil means RowEmpty; any other tail (Dyn, for a `..` row) means the row
// is open.
func rowFields(row *Type) (fields []RowExtendType, tail *Type) {
	for row != nil && row.Tag == TyRowExtend {
		r := row.Data.(*RowExtendType)
		fields = append(fields, *r)
		row = r.Tail
	}
	if row != nil && row.Tag == TyRowEmpty {
		return fields, nil
	}
	return fields, row
}

// FreeTypeVars collects the names of type variables free in t (not bound by
// an enclosing Forall). Used by CheckUnbound (spec §4.6).
func FreeTypeVars(t *Type) map[string]bool {
	out := map[string]bool{}
	var walk func(*Type, map[string]bool)
	walk = func(t *Type, bound map[string]bool) {
		if t == nil {
			return
		}
		switch t.Tag {
		case TyVar:
			name := t.Data.(Ident).Name
			if !bound[name] {
				out[name] = true
			}
		case TyArrow:
			a := t.Data.(*ArrowType)
			walk(a.Dom, bound)
			walk(a.Codom, bound)
		case TyList:
			walk(t.Data.(*Type), bound)
		case TyForall:
			f := t.Data.(*ForallType)
			nb := map[string]bool{}
			for k := range bound {
				nb[k] = true
			}
			nb[f.Var.Name] = true
			walk(f.Body, nb)
		case TyRowExtend:
			r := t.Data.(*RowExtendType)
			walk(r.FieldType, bound)
			walk(r.Tail, bound)
		case TyStaticRecord, TyDynRecord, TyEnum:
			walk(t.Data.(*Type), bound)
		}
	}
	walk(t, map[string]bool{})
	return out
}

// CheckUnbound rejects a type expression containing a free type variable
// (spec §4.6: "rejects free type variables before elaboration").
func CheckUnbound(t *Type) error {
	free := FreeTypeVars(t)
	if len(free) == 0 {
		return nil
	}
	names := make([]string, 0, len(free))
	for n := range free {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Errorf("unbound type variable(s): %s", strings.Join(names, ", "))
}

// TypesEqual is a structural equality used when combining MetaValue
// annotations on record merge ("types must agree (else error)", spec §4.3).
func TypesEqual(a, b *Type) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TyDyn, TyNum, TyBool, TyStr, TyRowEmpty:
		return true
	case TyVar:
		return a.Data.(Ident).Name == b.Data.(Ident).Name
	case TyArrow:
		x, y := a.Data.(*ArrowType), b.Data.(*ArrowType)
		return TypesEqual(x.Dom, y.Dom) && TypesEqual(x.Codom, y.Codom)
	case TyList, TyStaticRecord, TyDynRecord, TyEnum:
		return TypesEqual(a.Data.(*Type), b.Data.(*Type))
	case TyForall:
		x, y := a.Data.(*ForallType), b.Data.(*ForallType)
		return x.Var.Name == y.Var.Name && TypesEqual(x.Body, y.Body)
	case TyRowExtend:
		x, y := a.Data.(*RowExtendType), b.Data.(*RowExtendType)
		return x.Field.Name == y.Field.Name && TypesEqual(x.FieldType, y.FieldType) && TypesEqual(x.Tail, y.Tail)
	case TyFlat:
		return a.Data.(*Term) == b.Data.(*Term)
	}
	return false
}
