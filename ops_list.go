// ops_list.go — list primitives (spec §4.3, §6).
//
// Grounded on the teacher's `builtin_strings.go`/`vm.go` element-access
// bounds-checking style, generalized from Go-slice-of-Value to
// ListWHNF-of-*Thunk so `map`/`generate` stay lazy per element: a
// mapped/generated element is itself a thunk that only invokes the user
// function when later demanded, matching spec's "values remain thunked"
// invariant for composite data. `filter` runs its predicate on every
// element as soon as the filter itself is forced, and keeps the original
// element thunks.
package nickel

import "sort"

func listArg(pos *Span, th *Thunk, ip *Interpreter, which string) ListWHNF {
	v := th.Force(ip)
	lw, ok := asList(v)
	if !ok {
		panic(newRuntimeError(pos, "type error: `%s` expects a List, got %s", which, describeTag(v)))
	}
	return lw
}

func registerListOps(ip *Interpreter) {
	ip.natives[OpListHead] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		lw := listArg(pos, args[0], ip, string(OpListHead))
		if len(lw) == 0 {
			panic(newRuntimeError(pos, "head of an empty list"))
		}
		return lw[0].Force(ip)
	}
	ip.natives[OpListTail] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		lw := listArg(pos, args[0], ip, string(OpListTail))
		if len(lw) == 0 {
			panic(newRuntimeError(pos, "tail of an empty list"))
		}
		return mk(TList, pos, append(ListWHNF{}, lw[1:]...))
	}
	ip.natives[OpListLength] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Num(pos, float64(len(listArg(pos, args[0], ip, string(OpListLength)))))
	}
	ip.natives[OpListElemAt] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		lw := listArg(pos, args[0], ip, string(OpListElemAt))
		i := int(numArg(pos, args[1], ip, string(OpListElemAt)))
		if i < 0 || i >= len(lw) {
			panic(newRuntimeError(pos, "index %d out of bounds (length %d)", i, len(lw)))
		}
		return lw[i].Force(ip)
	}
	ip.natives[OpListConcat] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a := listArg(pos, args[0], ip, string(OpListConcat))
		b := listArg(pos, args[1], ip, string(OpListConcat))
		out := make(ListWHNF, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return mk(TList, pos, out)
	}
	ip.natives[OpListFlatten] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		outer := listArg(pos, args[0], ip, string(OpListFlatten))
		var out ListWHNF
		for _, th := range outer {
			inner := listArg(pos, th, ip, string(OpListFlatten))
			out = append(out, inner...)
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListReverse] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		lw := listArg(pos, args[0], ip, string(OpListReverse))
		out := make(ListWHNF, len(lw))
		for i, th := range lw {
			out[len(lw)-1-i] = th
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListRange] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		from := int(numArg(pos, args[0], ip, string(OpListRange)))
		to := int(numArg(pos, args[1], ip, string(OpListRange)))
		if to < from {
			return mk(TList, pos, ListWHNF{})
		}
		out := make(ListWHNF, 0, to-from)
		for i := from; i < to; i++ {
			out = append(out, EvaluatedThunk(Num(pos, float64(i))))
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListMap] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		fn := args[0].Force(ip)
		lw := listArg(pos, args[1], ip, string(OpListMap))
		out := make(ListWHNF, len(lw))
		for i, elem := range lw {
			elem := elem
			out[i] = NewLazyThunk(func(ip *Interpreter) *Term {
				return ip.applyFnToThunk(fn, elem)
			})
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListFilter] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		fn := args[0].Force(ip)
		lw := listArg(pos, args[1], ip, string(OpListFilter))
		var out ListWHNF
		for _, elem := range lw {
			keep := ip.applyFnToThunk(fn, elem)
			b, ok := asBool(keep)
			if !ok {
				panic(newRuntimeError(pos, "type error: filter predicate must return a Bool, got %s", describeTag(keep)))
			}
			if b {
				out = append(out, elem)
			}
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListFold] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		fn := args[0].Force(ip)
		acc := args[1].Force(ip)
		lw := listArg(pos, args[2], ip, string(OpListFold))
		for _, elem := range lw {
			stepped := ip.applyFnToThunk(fn, EvaluatedThunk(acc))
			acc = ip.applyFnToThunk(stepped, elem)
		}
		return acc
	}
	ip.natives[OpListGenerate] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		n := int(numArg(pos, args[0], ip, string(OpListGenerate)))
		fn := args[1].Force(ip)
		if n < 0 {
			panic(newRuntimeError(pos, "generate: length must be non-negative, got %d", n))
		}
		out := make(ListWHNF, n)
		for i := 0; i < n; i++ {
			i := i
			out[i] = NewLazyThunk(func(ip *Interpreter) *Term {
				return ip.applyFnToThunk(fn, EvaluatedThunk(Num(pos, float64(i))))
			})
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpListSort] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		fn := args[0].Force(ip)
		lw := listArg(pos, args[1], ip, string(OpListSort))
		out := append(ListWHNF{}, lw...)
		sort.SliceStable(out, func(i, j int) bool {
			stepped := ip.applyFnToThunk(fn, EvaluatedThunk(out[i].Force(ip)))
			result := ip.applyFnToThunk(stepped, EvaluatedThunk(out[j].Force(ip)))
			b, ok := asBool(result)
			if !ok {
				panic(newRuntimeError(pos, "type error: sort comparator must return a Bool, got %s", describeTag(result)))
			}
			return b
		})
		return mk(TList, pos, out)
	}
}
