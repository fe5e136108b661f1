// term.go — the AST term family (spec data model, "Term").
//
// Term follows the teacher's Value{Tag, Data, Annot} tagged-struct idiom
// (daios-ai-msg/interpreter.go) applied to syntax trees instead of runtime
// values: one discriminant plus an `any` payload, with smart constructors
// that always attach a position so diagnostics can point at the right
// source span. Terms are immutable after construction (spec: "Terms are
// constructed by the parser, never mutated thereafter") and are shared by
// ordinary Go pointers; Go's GC plays the role the spec's "reference-counted
// handles" note assumes for a non-GC host language.
package nickel

// TermTag discriminates the Term sum type.
type TermTag int

const (
	TNull TermTag = iota
	TBool
	TNum
	TStr
	TEnum

	TVar
	TFun
	TFunPattern
	TLet
	TApp
	TIf
	TSwitch

	TList
	TRecord
	TStrChunks

	TFieldAccess

	TOp1
	TOp2
	TOpN

	TClosure       // introduced by the evaluator only
	TNativeClosure // introduced by the contract runtime only (Arrow wrappers)

	TMetaValue

	TImport
	TParseErr // recovery node (named TParseErr to avoid clashing with the Go error type ParseError)
	TWrapped
	TLabel // introduced by the contract runtime only (custom contract's first argument)
)

// Term is one AST (or, for TClosure/TWrapped, runtime) node.
type Term struct {
	Tag  TermTag
	Pos  *Span
	Data any
}

func mk(tag TermTag, pos *Span, data any) *Term { return &Term{Tag: tag, Pos: pos, Data: data} }

// ---- literals ----

func Null(pos *Span) *Term           { return mk(TNull, pos, nil) }
func Bool(pos *Span, b bool) *Term   { return mk(TBool, pos, b) }
func Num(pos *Span, f float64) *Term { return mk(TNum, pos, f) }
func Str(pos *Span, s string) *Term  { return mk(TStr, pos, s) }
func Enum(pos *Span, tag string) *Term { return mk(TEnum, pos, tag) }

// ---- structural ----

func Var(pos *Span, id Ident) *Term { return mk(TVar, pos, id) }

type FunData struct {
	Param Ident
	Body  *Term
}

func Fun(pos *Span, param Ident, body *Term) *Term {
	return mk(TFun, pos, &FunData{Param: param, Body: body})
}

type FunPatternData struct {
	Name    *Ident // optional self-name, bound to the whole argument record
	Pattern *Pattern
	Body    *Term
}

func FunPattern(pos *Span, name *Ident, pat *Pattern, body *Term) *Term {
	return mk(TFunPattern, pos, &FunPatternData{Name: name, Pattern: pat, Body: body})
}

type LetData struct {
	Name  Ident
	Bound *Term
	Body  *Term
}

func Let(pos *Span, name Ident, bound, body *Term) *Term {
	return mk(TLet, pos, &LetData{Name: name, Bound: bound, Body: body})
}

type AppData struct {
	Fun *Term
	Arg *Term
}

func App(pos *Span, f, arg *Term) *Term { return mk(TApp, pos, &AppData{Fun: f, Arg: arg}) }

type IfData struct {
	Cond, Then, Else *Term
}

func If(pos *Span, c, t, e *Term) *Term { return mk(TIf, pos, &IfData{Cond: c, Then: t, Else: e}) }

type SwitchData struct {
	Scrutinee *Term
	Cases     map[string]*Term // tag -> term
	Default   *Term            // nil if absent
}

func Switch(pos *Span, scrut *Term, cases map[string]*Term, def *Term) *Term {
	return mk(TSwitch, pos, &SwitchData{Scrutinee: scrut, Cases: cases, Default: def})
}

// ---- composites ----

func List(pos *Span, elems []*Term) *Term { return mk(TList, pos, elems) }

type RecordData struct {
	Fields map[string]*Term
	Open   bool // open attribute; see spec Pattern destructuring / StaticRecord rows
}

func Record(pos *Span, fields map[string]*Term, open bool) *Term {
	return mk(TRecord, pos, &RecordData{Fields: fields, Open: open})
}

// StrChunk is either literal text or an expression chunk coerced to string.
type StrChunk struct {
	Lit  string // valid when Expr == nil
	Expr *Term  // valid when non-nil
}

// StrChunks stores chunks in reverse source order, per spec data model
// ("StrChunks(reversed sequence of chunk)"); the evaluator un-reverses them
// when concatenating (spec §4.3, "StrChunks").
func StrChunks(pos *Span, reversedChunks []StrChunk) *Term {
	return mk(TStrChunks, pos, reversedChunks)
}

// FieldAccessData is `r.f`: spec §4.3 "field selection r.f forces r to a
// record then forces the field's thunk".
type FieldAccessData struct {
	Record *Term
	Field  Ident
}

func FieldAccess(pos *Span, record *Term, field Ident) *Term {
	return mk(TFieldAccess, pos, &FieldAccessData{Record: record, Field: field})
}

// ---- operators ----

// Op identifies a primitive operator by name; the operator tables in
// ops_*.go are keyed by these names, mirroring the teacher's string-tagged
// opcode/builtin-name convention (daios-ai-msg/vm.go, builtin_strings.go)
// rather than a closed Go enum, since the set is naturally extensible
// stdlib-style data rather than a fixed machine instruction set.
type Op string

type Op1Data struct {
	Op Op
	A  *Term
}

func Op1(pos *Span, op Op, a *Term) *Term { return mk(TOp1, pos, &Op1Data{Op: op, A: a}) }

type Op2Data struct {
	Op   Op
	A, B *Term
}

func Op2(pos *Span, op Op, a, b *Term) *Term { return mk(TOp2, pos, &Op2Data{Op: op, A: a, B: b}) }

type OpNData struct {
	Op   Op
	Args []*Term
}

func OpN(pos *Span, op Op, args []*Term) *Term { return mk(TOpN, pos, &OpNData{Op: op, Args: args}) }

// ---- evaluator-only ----

type ClosureData struct {
	Term *Term
	Env  *Env
}

// MkClosure wraps a term with the environment it must be evaluated under.
// Only the evaluator constructs these (spec: "introduced by the evaluator
// only, not by the parser").
func MkClosure(term *Term, env *Env) *Term {
	return mk(TClosure, term.Pos, &ClosureData{Term: term, Env: env})
}

// RecordWHNF is the evaluator's representation of a record once forced: one
// thunk per field, all closed over the same recursive frame so fields can
// see their siblings (spec data model: "values remain thunked"). A TRecord
// term's Data is *RecordData (raw AST) before reduction and *RecordWHNF
// (this type) once reduced; the evaluator tells them apart with a type
// switch rather than a separate tag, the way TFun becomes TClosure in place.
type RecordWHNF struct {
	Fields map[string]*Thunk
	Open   bool
}

// ListWHNF is the list analogue: each element is a thunk closed over the
// list literal's environment.
type ListWHNF []*Thunk

// NativeClosureData wraps a Go-implemented function value that isn't a
// Fun/FunPattern closure: currently only the Arrow-contract wrapper
// (contract.go's wrapArrow) produces these.
type NativeClosureData struct {
	Call func(ip *Interpreter, arg *Thunk) *Term
}

func mkNativeClosure(pos *Span, call func(ip *Interpreter, arg *Thunk) *Term) *Term {
	return mk(TNativeClosure, pos, &NativeClosureData{Call: call})
}

// ---- meta values ----

// Priority controls how a field's value participates in record merge.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityDefault
)

type MetaValueData struct {
	Doc       *string
	Type      *Type
	Contracts []*Term // contract expressions, applied outermost-last
	Priority  Priority
	Value     *Term // the annotated term; nil for a declared-but-unassigned field
}

// MkMetaValue constructs a MetaValue, flattening nested MetaValues so the
// invariant "a MetaValue is never nested directly inside another MetaValue"
// always holds (spec data model invariants).
func MkMetaValue(pos *Span, m *MetaValueData) *Term {
	if m.Value != nil && m.Value.Tag == TMetaValue {
		inner := m.Value.Data.(*MetaValueData)
		merged := &MetaValueData{
			Doc:       m.Doc,
			Type:      m.Type,
			Contracts: append(append([]*Term{}, inner.Contracts...), m.Contracts...),
			Priority:  m.Priority,
			Value:     inner.Value,
		}
		if merged.Doc == nil {
			merged.Doc = inner.Doc
		}
		if merged.Type == nil {
			merged.Type = inner.Type
		}
		return mk(TMetaValue, pos, merged)
	}
	return mk(TMetaValue, pos, m)
}

// ---- other ----

type ImportData struct {
	Path string
}

func Import(pos *Span, path string) *Term { return mk(TImport, pos, &ImportData{Path: path}) }

// ParseErr is a recovery node the parser emits for a span it could not make
// sense of, so the rest of the file can still be parsed.
func ParseErr(pos *Span, msg string) *Term { return mk(TParseErr, pos, msg) }

type WrappedData struct {
	Sym   uint64
	Inner *Term
}

// MkWrapped seals a value under a fresh forall symbol (spec §4.5).
func MkWrapped(pos *Span, sym uint64, inner *Term) *Term {
	return mk(TWrapped, pos, &WrappedData{Sym: sym, Inner: inner})
}

// LabelData wraps a *Label as a first-class runtime value, so a custom
// contract (spec §4.4: "λ label value. value|blame") can be handed its
// label as an ordinary argument and later pass it to `blame`/`tag`/
// `blame_with` (contract.go, ops_misc.go). Msg is the message `blame` will
// raise if called with no customization; `blame_with` returns a copy with
// Msg replaced.
type LabelData struct {
	L   *Label
	Msg string
}

// MkLabel wraps l as a Term a custom contract function can receive and
// pass on to blame/tag/blame_with.
func MkLabel(pos *Span, l *Label) *Term {
	return mk(TLabel, pos, &LabelData{L: l, Msg: "custom contract failed"})
}

// ---- structural equality ----

// Equal implements spec's "structural [equality] only for comparable
// variants"; functions/closures/thunk-bearing terms are not equatable here
// — the evaluator's `==` primitive (ops_num.go's valuesEqual) raises a runtime error for
// those instead of calling Equal.
func Equal(a, b *Term) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TNull:
		return true
	case TBool:
		return a.Data.(bool) == b.Data.(bool)
	case TNum:
		return a.Data.(float64) == b.Data.(float64)
	case TStr:
		return a.Data.(string) == b.Data.(string)
	case TEnum:
		return a.Data.(string) == b.Data.(string)
	case TList:
		xs, ys := a.Data.([]*Term), b.Data.([]*Term)
		if len(xs) != len(ys) {
			return false
		}
		for i := range xs {
			if !Equal(xs[i], ys[i]) {
				return false
			}
		}
		return true
	case TRecord:
		ra, rb := a.Data.(*RecordData), b.Data.(*RecordData)
		if len(ra.Fields) != len(rb.Fields) {
			return false
		}
		for k, v := range ra.Fields {
			ov, ok := rb.Fields[k]
			if !ok || !Equal(v, ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsMetaValue reports whether t is a MetaValue, unwrapping for convenience.
func IsMetaValue(t *Term) (*MetaValueData, bool) {
	if t.Tag == TMetaValue {
		return t.Data.(*MetaValueData), true
	}
	return nil, false
}

// StripMeta returns the innermost non-MetaValue term wrapped by t (or t
// itself), plus the chain of meta decorations found, outermost first.
func StripMeta(t *Term) (*Term, []*MetaValueData) {
	var metas []*MetaValueData
	for {
		m, ok := IsMetaValue(t)
		if !ok || m.Value == nil {
			return t, metas
		}
		metas = append(metas, m)
		t = m.Value
	}
}
