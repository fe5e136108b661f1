// merge.go — record merge (`&`, spec §4.3).
//
// Grounded on the teacher's `__plus` map-overlay primitive
// (daios-ai-msg/interpreter_ops.go): a flat "union, recurse on shared
// keys" combinator. This generalizes it from flat overlay to the spec's
// recursive merge-with-priority: a field annotated `| default` yields to
// a normal-priority field on the other side; two concrete values merge
// recursively if both are records, merge to either if structurally equal,
// and otherwise raise a merge conflict.
//
// Simplification (recorded in DESIGN.md): when both sides of a shared
// field carry their own type/contract annotations, each side is forced
// (and so validated) independently before the two resulting values are
// merged, rather than concatenating the two annotation sets and checking
// the combined set once against the merged result. Declared types must
// still agree (TypesEqual), so a real mismatch is still caught.
package nickel

// mergeField lazily combines two fields sharing a name across a merge.
func (ip *Interpreter) mergeField(pos *Span, fieldName string, a, b *Thunk) *Thunk {
	return NewLazyThunk(func(ip *Interpreter) *Term {
		aMeta, aHasMeta := peekMeta(a)
		bMeta, bHasMeta := peekMeta(b)
		aPriority, bPriority := PriorityNormal, PriorityNormal
		if aHasMeta {
			aPriority = aMeta.Priority
		}
		if bHasMeta {
			bPriority = bMeta.Priority
		}

		if aPriority == PriorityDefault && bPriority != PriorityDefault {
			return b.Force(ip)
		}
		if bPriority == PriorityDefault && aPriority != PriorityDefault {
			return a.Force(ip)
		}

		if aHasMeta && bHasMeta && aMeta.Type != nil && bMeta.Type != nil && !TypesEqual(aMeta.Type, bMeta.Type) {
			panic(newRuntimeError(pos, "merge conflict: field `%s` has incompatible type annotations", fieldName))
		}

		av := a.Force(ip)
		bv := b.Force(ip)
		return ip.mergeValues(pos, fieldName, av, bv)
	})
}

// peekMeta inspects th's not-yet-forced syntactic shape for a MetaValue
// without forcing it, so an unused default-priority field is never
// evaluated (spec: fields retain lazy semantics even across merge). A
// thunk already forced by the time merge runs has lost this information;
// it is then simply treated as normal priority with no annotations.
func peekMeta(th *Thunk) (*MetaValueData, bool) {
	if th.state == thunkEvaluated || th.term == nil {
		return nil, false
	}
	if th.term.Tag == TMetaValue {
		return th.term.Data.(*MetaValueData), true
	}
	return nil, false
}

// mergeValues merges two already-forced field values.
func (ip *Interpreter) mergeValues(pos *Span, fieldName string, av, bv *Term) *Term {
	rwA, okA := asRecord(av)
	rwB, okB := asRecord(bv)
	if okA && okB {
		return ip.mergeRecordWHNF(pos, rwA, rwB)
	}
	if av.Tag == TList && bv.Tag == TList {
		if valuesEqual(ip, av, bv) {
			return av
		}
	} else if Equal(av, bv) {
		return av
	}
	panic(newRuntimeError(pos, "merge conflict: field `%s` has incompatible values", fieldName))
}

// mergeRecordWHNF is the top-level record merge: disjoint union, recursive
// merge on shared keys.
func (ip *Interpreter) mergeRecordWHNF(pos *Span, a, b *RecordWHNF) *Term {
	out := make(map[string]*Thunk, len(a.Fields)+len(b.Fields))
	for name, th := range a.Fields {
		out[name] = th
	}
	for name, th := range b.Fields {
		if existing, ok := out[name]; ok {
			out[name] = ip.mergeField(pos, name, existing, th)
		} else {
			out[name] = th
		}
	}
	return mk(TRecord, pos, &RecordWHNF{Fields: out, Open: a.Open || b.Open})
}

// registerMergeOp installs `&` (and its primitive alias `%merge%`, used by
// the prelude) as strict binary operators over two already-reduced record
// operands.
func registerMergeOp(ip *Interpreter) {
	impl := func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		av := args[0].Force(ip)
		bv := args[1].Force(ip)
		rwA, ok := asRecord(av)
		if !ok {
			panic(newRuntimeError(pos, "type error: `&` expects a record on the left, got %s", describeTag(av)))
		}
		rwB, ok := asRecord(bv)
		if !ok {
			panic(newRuntimeError(pos, "type error: `&` expects a record on the right, got %s", describeTag(bv)))
		}
		return ip.mergeRecordWHNF(pos, rwA, rwB)
	}
	ip.natives[OpMerge] = impl
	ip.natives[Op("merge")] = impl // primop-reference spelling: %merge%
}
