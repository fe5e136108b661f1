// ops_record.go — record primitives beyond field access and merge (spec
// §4.3, §6).
//
// Grounded on the teacher's map-value builtins (`interpreter_ops.go`'s
// map-key/value accessors): `fields`/`values`/`has_field` mirror that
// shape directly; `map`/`extend`/`remove` generalize the same "build a
// new RecordWHNF from an existing one" pattern used by contract.go's
// record contract cases.
package nickel

import "sort"

func recordArg(pos *Span, th *Thunk, ip *Interpreter, which string) *RecordWHNF {
	v := th.Force(ip)
	rw, ok := asRecord(v)
	if !ok {
		panic(newRuntimeError(pos, "type error: `%s` expects a Record, got %s", which, describeTag(v)))
	}
	return rw
}

func sortedFieldNames(rw *RecordWHNF) []string {
	names := make([]string, 0, len(rw.Fields))
	for name := range rw.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func registerRecordOps(ip *Interpreter) {
	registerMergeOp(ip)

	ip.natives[OpRecordFields] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		rw := recordArg(pos, args[0], ip, string(OpRecordFields))
		names := sortedFieldNames(rw)
		out := make(ListWHNF, len(names))
		for i, n := range names {
			out[i] = EvaluatedThunk(Str(pos, n))
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpRecordValues] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		rw := recordArg(pos, args[0], ip, string(OpRecordValues))
		names := sortedFieldNames(rw)
		out := make(ListWHNF, len(names))
		for i, n := range names {
			out[i] = rw.Fields[n]
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpRecordHasField] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		rw := recordArg(pos, args[0], ip, string(OpRecordHasField))
		name := strArg(pos, args[1], ip, string(OpRecordHasField))
		_, ok := rw.Fields[name]
		return Bool(pos, ok)
	}
	ip.natives[OpRecordMap] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		fn := args[0].Force(ip)
		rw := recordArg(pos, args[1], ip, string(OpRecordMap))
		out := make(map[string]*Thunk, len(rw.Fields))
		for name, th := range rw.Fields {
			name, th := name, th
			out[name] = NewLazyThunk(func(ip *Interpreter) *Term {
				stepped := ip.applyFnToThunk(fn, EvaluatedThunk(Str(pos, name)))
				return ip.applyFnToThunk(stepped, th)
			})
		}
		return mk(TRecord, pos, &RecordWHNF{Fields: out, Open: rw.Open})
	}
	ip.natives[OpRecordExtend] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		rw := recordArg(pos, args[0], ip, string(OpRecordExtend))
		name := strArg(pos, args[1], ip, string(OpRecordExtend))
		val := args[2]
		out := make(map[string]*Thunk, len(rw.Fields)+1)
		for k, v := range rw.Fields {
			out[k] = v
		}
		out[name] = val
		return mk(TRecord, pos, &RecordWHNF{Fields: out, Open: rw.Open})
	}
	ip.natives[OpRecordRemove] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		rw := recordArg(pos, args[0], ip, string(OpRecordRemove))
		name := strArg(pos, args[1], ip, string(OpRecordRemove))
		if _, ok := rw.Fields[name]; !ok {
			panic(newRuntimeError(pos, "missing field: `%s`", name))
		}
		out := make(map[string]*Thunk, len(rw.Fields)-1)
		for k, v := range rw.Fields {
			if k != name {
				out[k] = v
			}
		}
		return mk(TRecord, pos, &RecordWHNF{Fields: out, Open: rw.Open})
	}
}
