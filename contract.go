// contract.go — contract application (spec §4.4 "assume contract label
// value"), structural case-by-case over the Type representation from
// types.go. No teacher analogue exists for this (daios-ai-msg has no
// contract system); the case split below follows spec.md's own
// "Application" list directly, one Go case per Type tag.
package nickel

import "fmt"

// sealEntry records the fresh symbol and polarity captured when a TyForall
// contract is entered, so a TyVar found deeper in the body knows whether it
// is on the wrap or the unwrap side (spec §4.5).
type sealEntry struct {
	sym      uint64
	polarity Polarity
}

func cloneSeals(s map[string]sealEntry) map[string]sealEntry {
	n := make(map[string]sealEntry, len(s)+1)
	for k, v := range s {
		n[k] = v
	}
	return n
}

// assumeTerm is `assume T label term` (spec §4.4). term/env is the
// not-yet-forced value; assumeTerm forces it exactly as much as the
// contract shape requires (scalars and structural heads eagerly, nested
// positions lazily via lazyAssumeThunk).
func (ip *Interpreter) assumeTerm(t *Type, label *Label, term *Term, env *Env) *Term {
	return ip.assume(t, label, term, env, nil)
}

func (ip *Interpreter) assume(t *Type, label *Label, term *Term, env *Env, seals map[string]sealEntry) *Term {
	switch t.Tag {
	case TyDyn:
		return term

	case TyVar:
		id := t.Data.(Ident)
		se, ok := seals[id.Name]
		if !ok {
			// CheckUnbound (eval.go's elaborateMeta, pattern_bind.go's
			// wrapPatternFieldContract) already rejects a free type variable
			// before a contract reaches here; this case is only live for a
			// TyVar properly bound by an enclosing TyForall.
			return term
		}
		v := ip.evalTerm(term, env)
		if label.Polarity == se.polarity {
			return unseal(label, se.sym, v)
		}
		return seal(term.Pos, se.sym, v)

	case TyNum:
		v := ip.evalTerm(term, env)
		if v.Tag != TNum {
			panic(label.Blame(fmt.Sprintf("expected Num, got %s", describeTag(v))))
		}
		return v

	case TyBool:
		v := ip.evalTerm(term, env)
		if v.Tag != TBool {
			panic(label.Blame(fmt.Sprintf("expected Bool, got %s", describeTag(v))))
		}
		return v

	case TyStr:
		v := ip.evalTerm(term, env)
		if v.Tag != TStr {
			panic(label.Blame(fmt.Sprintf("expected Str, got %s", describeTag(v))))
		}
		return v

	case TyList:
		v := ip.evalTerm(term, env)
		lw, ok := asList(v)
		if !ok {
			panic(label.Blame(fmt.Sprintf("expected List, got %s", describeTag(v))))
		}
		elemT := t.Data.(*Type)
		out := make(ListWHNF, len(lw))
		for i, th := range lw {
			out[i] = ip.lazyAssumeThunk(elemT, label.Descend(fmt.Sprintf("[%d]", i)).WithTag(elemT.String()), th, seals)
		}
		return mk(TList, term.Pos, out)

	case TyArrow:
		v := ip.evalTerm(term, env)
		if v.Tag != TClosure {
			panic(label.Blame(fmt.Sprintf("expected a function, got %s", describeTag(v))))
		}
		a := t.Data.(*ArrowType)
		return ip.wrapArrow(v, a, label, seals)

	case TyForall:
		f := t.Data.(*ForallType)
		sym := ip.tags.fresh()
		ns := cloneSeals(seals)
		ns[f.Var.Name] = sealEntry{sym: sym, polarity: label.Polarity}
		return ip.assume(f.Body, label, term, env, ns)

	case TyStaticRecord:
		v := ip.evalTerm(term, env)
		rw, ok := asRecord(v)
		if !ok {
			panic(label.Blame(fmt.Sprintf("expected a record, got %s", describeTag(v))))
		}
		fields, tail := rowFields(t.Data.(*Type))
		out := make(map[string]*Thunk, len(fields))
		seen := map[string]bool{}
		for _, rf := range fields {
			seen[rf.Field.Name] = true
			th, present := rw.Fields[rf.Field.Name]
			if !present {
				panic(label.Blame("missing field: `" + rf.Field.Name + "`"))
			}
			if rf.FieldType != nil {
				out[rf.Field.Name] = ip.lazyAssumeThunk(rf.FieldType, label.Descend(rf.Field.Name), th, seals)
			} else {
				out[rf.Field.Name] = th
			}
		}
		switch {
		case tail == nil:
			for name := range rw.Fields {
				if !seen[name] {
					panic(label.Blame("extra field: `" + name + "`"))
				}
			}
		default:
			for name, th := range rw.Fields {
				if !seen[name] {
					out[name] = th
				}
			}
		}
		return mk(TRecord, term.Pos, &RecordWHNF{Fields: out, Open: rw.Open})

	case TyDynRecord:
		v := ip.evalTerm(term, env)
		rw, ok := asRecord(v)
		if !ok {
			panic(label.Blame(fmt.Sprintf("expected a record, got %s", describeTag(v))))
		}
		elemT := t.Data.(*Type)
		out := make(map[string]*Thunk, len(rw.Fields))
		for name, th := range rw.Fields {
			out[name] = ip.lazyAssumeThunk(elemT, label.Descend(name), th, seals)
		}
		return mk(TRecord, term.Pos, &RecordWHNF{Fields: out, Open: rw.Open})

	case TyEnum:
		v := ip.evalTerm(term, env)
		if v.Tag != TEnum {
			panic(label.Blame(fmt.Sprintf("expected an enum tag, got %s", describeTag(v))))
		}
		tag := v.Data.(string)
		fields, _ := rowFields(t.Data.(*Type))
		for _, rf := range fields {
			if rf.Field.Name == tag {
				return v
			}
		}
		panic(label.Blame("enum tag `" + tag + "` is not a member of " + t.String()))

	case TyFlat:
		return ip.assumeFlat(t.Data.(*Term), label, term, env)
	}
	return term
}

// lazyAssumeThunk defers `assume t label` over an already-existing thunk,
// so a list's or record's unused elements/fields are never re-checked
// (spec §4.4: "map assume t label' v_i lazily over elements").
func (ip *Interpreter) lazyAssumeThunk(t *Type, label *Label, th *Thunk, seals map[string]sealEntry) *Thunk {
	return NewLazyThunk(func(ip *Interpreter) *Term {
		forced := th.Force(ip)
		return ip.assume(t, label, forced, nil, seals)
	})
}

// wrapArrow builds the wrapper closure spec §4.4 describes for Arrow(s, t):
// "λ x. assume t label.enter(Codom) (value (assume s label.enter(Dom).flip_polarity x))".
func (ip *Interpreter) wrapArrow(fn *Term, a *ArrowType, label *Label, seals map[string]sealEntry) *Term {
	domLabel := label.Descend("dom").FlipPolarity()
	codomLabel := label.Descend("codom")
	return mkNativeClosure(fn.Pos, func(ip *Interpreter, arg *Thunk) *Term {
		checkedArg := NewLazyThunk(func(ip *Interpreter) *Term {
			return ip.assume(a.Dom, domLabel, arg.Force(ip), nil, seals)
		})
		result := ip.applyFnToThunk(fn, checkedArg)
		return ip.assume(a.Codom, codomLabel, result, nil, seals)
	})
}

// assumeFlat applies a user-defined contract function (`Flat(user_expr)`,
// spec §4.4): "either {...} or a user function λ label value. value|blame",
// curried on the label first, then the value, exactly as spec.md's
// `Flat(user_expr)` application rule ("apply user_expr label value")
// describes. The label travels in as an ordinary TLabel value, so the
// contract body can forward it to `blame`/`tag`/`blame_with` (ops_misc.go)
// to raise or customize its own blame. A contract that returns a Bool is
// still treated as a bare predicate for convenience (false blames label);
// anything else is treated as the (possibly rewritten) checked value.
func (ip *Interpreter) assumeFlat(exprTerm *Term, label *Label, term *Term, env *Env) *Term {
	fn := ip.evalTerm(exprTerm, env)
	v := ip.evalTerm(term, env)
	labelTerm := MkLabel(term.Pos, label)
	curried := ip.applyFnToThunk(fn, EvaluatedThunk(labelTerm))
	result := ip.applyFnToThunk(curried, EvaluatedThunk(v))
	if b, ok := asBool(result); ok {
		if !b {
			panic(label.Blame("custom contract failed"))
		}
		return v
	}
	return result
}
