// eval.go — the small-step evaluator (spec §4.3).
//
// evalTerm drives the (current_term, env, stack) machine spec.md describes:
// the inner loop rewrites `cur` under `curEnv` until it reaches WHNF, then
// the outer loop pops continuations off `stack`: a thunk update memoizes the
// WHNF, and a pending application hands the WHNF function and its argument
// to applyFn, which reduces the body in a nested evalTerm call. Strict sub-evaluations (an `if`'s condition, an operator's
// operands, a switch's scrutinee) recurse into evalTerm directly rather
// than being modeled as stack frames — Go's call stack stands in for the
// part of the continuation stack spec.md leaves "design-level", the way
// the teacher's own exec engine recurses for nested expressions and only
// reifies an explicit frame for call/return (interpreter_exec.go).
package nickel

import "strings"

const maxEvalDepth = 6000

// evalTerm reduces term to weak-head-normal-form under env.
func (ip *Interpreter) evalTerm(term *Term, env *Env) *Term {
	ip.depth++
	if ip.depth > maxEvalDepth {
		ip.depth--
		panic(newRuntimeError(term.Pos, "stack overflow: evaluation exceeded depth %d", maxEvalDepth))
	}
	defer func() { ip.depth-- }()

	cur, curEnv := term, env
	var stack []frame

	for {
		switch cur.Tag {
		case TVar:
			id := cur.Data.(Ident)
			th, ok := curEnv.Lookup(id.Name)
			if !ok {
				panic(newRuntimeError(cur.Pos, "unbound identifier `%s`", id.Name))
			}
			switch th.state {
			case thunkEvaluated:
				cur = th.whnf
				continue
			case thunkForcing:
				panic(newRuntimeError(cur.Pos, "infinite recursion: value depends on itself"))
			}
			if th.lazyFn != nil {
				// A lazy thunk has no term/env to descend into (contract.go's
				// wrapArrow, pattern_bind.go's wrapPatternFieldContract): let
				// Force run its closure and memoize, instead of assuming
				// th.term/th.env are populated.
				cur = th.Force(ip)
				continue
			}
			stack = append(stack, frUpdate{th: th})
			th.state = thunkForcing
			cur, curEnv = th.term, th.env
			continue

		case TApp:
			a := cur.Data.(*AppData)
			stack = append(stack, frApply{argTerm: a.Arg, argEnv: curEnv})
			cur = a.Fun
			continue

		case TFun, TFunPattern:
			cur = MkClosure(cur, curEnv)
			break

		case TLet:
			ld := cur.Data.(*LetData)
			childEnv := NewEnv(curEnv)
			childEnv.Define(ld.Name.Name, NewThunk(ld.Bound, childEnv))
			cur, curEnv = ld.Body, childEnv
			continue

		case TIf:
			ifd := cur.Data.(*IfData)
			cond := ip.evalTerm(ifd.Cond, curEnv)
			b, ok := asBool(cond)
			if !ok {
				panic(newRuntimeError(ifd.Cond.Pos, "type error: `if` condition must be a Bool, got %s", describeTag(cond)))
			}
			if b {
				cur = ifd.Then
			} else {
				cur = ifd.Else
			}
			continue

		case TSwitch:
			sd := cur.Data.(*SwitchData)
			scrut := ip.evalTerm(sd.Scrutinee, curEnv)
			if scrut.Tag != TEnum {
				panic(newRuntimeError(sd.Scrutinee.Pos, "type error: `switch` scrutinee must be an enum tag, got %s", describeTag(scrut)))
			}
			tag := scrut.Data.(string)
			if branch, ok := sd.Cases[tag]; ok {
				cur = branch
				continue
			}
			if sd.Default != nil {
				cur = sd.Default
				continue
			}
			panic(newRuntimeError(cur.Pos, "no match: switch has no case (and no default) for `%s`", tag))

		case TFieldAccess:
			fd := cur.Data.(*FieldAccessData)
			rec := ip.evalTerm(fd.Record, curEnv)
			rw, ok := asRecord(rec)
			if !ok {
				panic(newRuntimeError(fd.Record.Pos, "type error: field access on a %s", describeTag(rec)))
			}
			th, ok := rw.Fields[fd.Field.Name]
			if !ok {
				panic(newRuntimeError(cur.Pos, "missing field: `%s`", fd.Field.Name))
			}
			cur = th.Force(ip)
			break

		case TOp1:
			op := cur.Data.(*Op1Data)
			a := ip.evalTerm(op.A, curEnv)
			cur = ip.applyOp(op.Op, cur.Pos, a)
			break

		case TOp2:
			op := cur.Data.(*Op2Data)
			// && and || short-circuit: the right operand must not even be
			// evaluated once the left already decides the result (spec
			// §4.3). applyOp always evaluates both Term operands before a
			// native runs, so true short-circuiting needs this special
			// case rather than living inside ops_num.go's native table.
			if op.Op == OpAnd || op.Op == OpOr {
				a := ip.evalTerm(op.A, curEnv)
				ab, ok := asBool(a)
				if !ok {
					panic(newRuntimeError(op.A.Pos, "type error: `%s` expects a Bool, got %s", op.Op, describeTag(a)))
				}
				if (op.Op == OpAnd && !ab) || (op.Op == OpOr && ab) {
					cur = Bool(cur.Pos, ab)
					break
				}
				b := ip.evalTerm(op.B, curEnv)
				bb, ok := asBool(b)
				if !ok {
					panic(newRuntimeError(op.B.Pos, "type error: `%s` expects a Bool, got %s", op.Op, describeTag(b)))
				}
				cur = Bool(cur.Pos, bb)
				break
			}
			a := ip.evalTerm(op.A, curEnv)
			b := ip.evalTerm(op.B, curEnv)
			cur = ip.applyOp(op.Op, cur.Pos, a, b)
			break

		case TOpN:
			op := cur.Data.(*OpNData)
			args := make([]*Term, len(op.Args))
			for i, a := range op.Args {
				args[i] = ip.evalTerm(a, curEnv)
			}
			cur = ip.applyOp(op.Op, cur.Pos, args...)
			break

		case TStrChunks:
			chunks := cur.Data.([]StrChunk)
			var b strings.Builder
			for i := len(chunks) - 1; i >= 0; i-- {
				c := chunks[i]
				if c.Expr == nil {
					b.WriteString(c.Lit)
					continue
				}
				v := ip.evalTerm(c.Expr, curEnv)
				s, ok := asStr(v)
				if !ok {
					panic(newRuntimeError(c.Expr.Pos, "type error: string interpolation requires a Str, got %s", describeTag(v)))
				}
				b.WriteString(s)
			}
			cur = Str(cur.Pos, b.String())
			break

		case TRecord:
			cur = ip.reduceRecord(cur, curEnv)
			break

		case TList:
			if elems, ok := cur.Data.([]*Term); ok {
				out := make(ListWHNF, len(elems))
				for i, e := range elems {
					out[i] = NewThunk(e, curEnv)
				}
				cur = mk(TList, cur.Pos, out)
			}
			break

		case TMetaValue:
			m := cur.Data.(*MetaValueData)
			cur = ip.elaborateMeta(cur.Pos, m, curEnv)
			continue

		case TImport:
			th := ip.resolveImport(cur.Data.(*ImportData).Path, curEnv, cur.Pos)
			cur = th.Force(ip)
			break

		case TParseErr:
			panic(&ParseError{Pos: cur.Pos, Msg: cur.Data.(string)})

		default:
			// Null, Bool, Num, Str, Enum, Closure, Wrapped, Label: already WHNF.
		}
		break
	}

	// cur is now WHNF; resume pending continuations.
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch f := top.(type) {
		case frUpdate:
			f.th.whnf = cur
			f.th.state = thunkEvaluated
			f.th.term, f.th.env = nil, nil
		case frApply:
			cur = ip.applyFn(cur, f.argTerm, f.argEnv)
		}
	}
	return cur
}

// applyOp dispatches a primitive operator over already-reduced operands.
// The operator tables (ops_*.go) and any host RegisterNative installs share
// one lookup, matching the teacher's single-opcode/builtin-name dispatch
// convention (daios-ai-msg/interpreter_ops.go) generalized from a closed
// opcode set to open string-keyed Op names.
func (ip *Interpreter) applyOp(op Op, pos *Span, args ...*Term) *Term {
	impl, ok := ip.natives[op]
	if !ok {
		panic(newRuntimeError(pos, "unknown operator `%s`", op))
	}
	thunks := make([]*Thunk, len(args))
	for i, a := range args {
		thunks[i] = EvaluatedThunk(a)
	}
	return impl(ip, pos, thunks)
}

// applyFn is App(fn, argTerm) once fn has already reached WHNF: bind the
// argument (unevaluated, as call-by-need requires) and fully reduce the
// function body. Used both by the evaluator's frApply continuation and by
// Interpreter.Apply.
func (ip *Interpreter) applyFn(fn *Term, argTerm *Term, argEnv *Env) *Term {
	return ip.applyFnToThunk(fn, NewThunk(argTerm, argEnv))
}

// applyFnToThunk is applyFn for a caller that already holds the argument as
// a thunk (the contract runtime's Arrow wrapper, seal.go's callers).
func (ip *Interpreter) applyFnToThunk(fn *Term, arg *Thunk) *Term {
	switch fn.Tag {
	case TClosure:
		cd := fn.Data.(*ClosureData)
		switch cd.Term.Tag {
		case TFun:
			fd := cd.Term.Data.(*FunData)
			childEnv := NewEnv(cd.Env)
			childEnv.Define(fd.Param.Name, arg)
			return ip.evalTerm(fd.Body, childEnv)
		case TFunPattern:
			fpd := cd.Term.Data.(*FunPatternData)
			childEnv := ip.bindPattern(fpd, arg, cd.Env)
			return ip.evalTerm(fpd.Body, childEnv)
		}
	case TNativeClosure:
		nc := fn.Data.(*NativeClosureData)
		return nc.Call(ip, arg)
	}
	panic(newRuntimeError(fn.Pos, "type error: %s is not a function", describeTag(fn)))
}

// evalApp is App(fn, argTerm) as a single reduction from an unevaluated
// function position, used by Interpreter.Apply.
func (ip *Interpreter) evalApp(fn *Term, argTerm *Term, argEnv *Env) *Term {
	fnWHNF := ip.evalTerm(fn, argEnv)
	return ip.applyFn(fnWHNF, argTerm, argEnv)
}

// reduceRecord turns a raw TRecord AST node into a RecordWHNF: one thunk
// per field, every thunk closed over the same new frame so fields can refer
// to their siblings (supplemented feature: recursive records, grounded on
// original_source/src/eval.rs's RecRecord handling).
func (ip *Interpreter) reduceRecord(rec *Term, env *Env) *Term {
	if _, ok := rec.Data.(*RecordWHNF); ok {
		return rec
	}
	rd := rec.Data.(*RecordData)
	frame := NewEnv(env)
	fields := make(map[string]*Thunk, len(rd.Fields))
	for name, fieldTerm := range rd.Fields {
		th := NewThunk(fieldTerm, frame)
		fields[name] = th
		frame.Define(name, th)
	}
	return mk(TRecord, rec.Pos, &RecordWHNF{Fields: fields, Open: rd.Open})
}

// elaborateMeta applies a MetaValue's type annotation and contracts to its
// inner value (spec §4.6: "An annotation t : T elaborates to a contract
// application at run time"), returning the term to keep reducing.
func (ip *Interpreter) elaborateMeta(pos *Span, m *MetaValueData, env *Env) *Term {
	if m.Value == nil {
		panic(newRuntimeError(pos, "missing value for declared field"))
	}
	val := m.Value
	if m.Type != nil {
		if err := CheckUnbound(m.Type); err != nil {
			panic(newRuntimeError(pos, "%v", err))
		}
		label := NewLabel(pos, m.Type.String())
		val = ip.assumeTerm(m.Type, label, val, env)
	}
	for _, c := range m.Contracts {
		label := NewLabel(pos, "<contract>")
		val = ip.assumeFlat(c, label, val, env)
	}
	return val
}

// ---- small helpers shared by the reductions above ----

func asBool(t *Term) (bool, bool) {
	if t.Tag == TBool {
		return t.Data.(bool), true
	}
	return false, false
}

func asStr(t *Term) (string, bool) {
	if t.Tag == TStr {
		return t.Data.(string), true
	}
	return "", false
}

func asRecord(t *Term) (*RecordWHNF, bool) {
	if t.Tag == TRecord {
		if rw, ok := t.Data.(*RecordWHNF); ok {
			return rw, true
		}
	}
	return nil, false
}

func asList(t *Term) (ListWHNF, bool) {
	if t.Tag == TList {
		if lw, ok := t.Data.(ListWHNF); ok {
			return lw, true
		}
	}
	return nil, false
}

func describeTag(t *Term) string {
	switch t.Tag {
	case TNull:
		return "Null"
	case TBool:
		return "Bool"
	case TNum:
		return "Num"
	case TStr:
		return "Str"
	case TEnum:
		return "Enum `" + t.Data.(string) + "`"
	case TList:
		return "List"
	case TRecord:
		return "Record"
	case TClosure:
		return "Function"
	case TWrapped:
		return "a sealed polymorphic value"
	case TLabel:
		return "a contract label"
	default:
		return "value"
	}
}

// deepSeq recursively forces t and every thunk reachable from it (spec
// §4.2: "after deep_seq a term contains no thunks anywhere reachable").
func (ip *Interpreter) deepSeq(t *Term) *Term {
	switch t.Tag {
	case TRecord:
		rw, ok := asRecord(t)
		if !ok {
			return t
		}
		for _, th := range rw.Fields {
			if th.deepForced {
				continue
			}
			ip.deepSeq(th.Force(ip))
			th.deepForced = true
		}
		return t
	case TList:
		lw, ok := asList(t)
		if !ok {
			return t
		}
		for _, th := range lw {
			if th.deepForced {
				continue
			}
			ip.deepSeq(th.Force(ip))
			th.deepForced = true
		}
		return t
	default:
		return t
	}
}
