// ops_num.go — numeric and boolean/comparison primitives (spec §4.3, §6).
//
// Grounded on the teacher's `vm.go` `binNum`/`cmpNum` family: one small Go
// function per operator, registered by name rather than dispatched through
// a closed opcode switch (daios-ai-msg/builtin_strings.go's
// RegisterNative convention, applied here to arithmetic instead of
// strings since the teacher's own arithmetic lives inline in the VM and
// has no separate builtin-table analogue).
package nickel

import (
	"fmt"
	"math"
)

func numArg(pos *Span, th *Thunk, ip *Interpreter, which string) float64 {
	v := th.Force(ip)
	if v.Tag != TNum {
		panic(newRuntimeError(pos, "type error: `%s` expects a Num, got %s", which, describeTag(v)))
	}
	return v.Data.(float64)
}

func boolArg(pos *Span, th *Thunk, ip *Interpreter, which string) bool {
	v := th.Force(ip)
	if v.Tag != TBool {
		panic(newRuntimeError(pos, "type error: `%s` expects a Bool, got %s", which, describeTag(v)))
	}
	return v.Data.(bool)
}

func registerNumOps(ip *Interpreter) {
	bin := func(name string, fn func(a, b float64) float64) {
		ip.natives[Op(name)] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
			a := numArg(pos, args[0], ip, name)
			b := numArg(pos, args[1], ip, name)
			return Num(pos, fn(a, b))
		}
	}
	bin(string(OpAdd), func(a, b float64) float64 { return a + b })
	bin(string(OpSub), func(a, b float64) float64 { return a - b })
	bin(string(OpMul), func(a, b float64) float64 { return a * b })
	ip.natives[OpDiv] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a := numArg(pos, args[0], ip, string(OpDiv))
		b := numArg(pos, args[1], ip, string(OpDiv))
		if b == 0 {
			panic(newRuntimeError(pos, "division by zero"))
		}
		return Num(pos, a/b)
	}
	ip.natives[OpMod] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a := numArg(pos, args[0], ip, string(OpMod))
		b := numArg(pos, args[1], ip, string(OpMod))
		if b == 0 {
			panic(newRuntimeError(pos, "division by zero"))
		}
		return Num(pos, math.Mod(a, b))
	}

	cmp := func(name string, fn func(a, b float64) bool) {
		ip.natives[Op(name)] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
			a := numArg(pos, args[0], ip, name)
			b := numArg(pos, args[1], ip, name)
			return Bool(pos, fn(a, b))
		}
	}
	cmp(string(OpLt), func(a, b float64) bool { return a < b })
	cmp(string(OpLeq), func(a, b float64) bool { return a <= b })
	cmp(string(OpGt), func(a, b float64) bool { return a > b })
	cmp(string(OpGeq), func(a, b float64) bool { return a >= b })

	ip.natives[OpEq] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a, b := args[0].Force(ip), args[1].Force(ip)
		return Bool(pos, valuesEqual(ip, a, b))
	}
	ip.natives[OpNeq] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a, b := args[0].Force(ip), args[1].Force(ip)
		return Bool(pos, !valuesEqual(ip, a, b))
	}

	ip.natives[OpNeg] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Num(pos, -numArg(pos, args[0], ip, string(OpNeg)))
	}
	ip.natives[OpNot] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Bool(pos, !boolArg(pos, args[0], ip, string(OpNot)))
	}
	ip.natives[OpRound] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Num(pos, math.Round(numArg(pos, args[0], ip, string(OpRound))))
	}
	ip.natives[OpCeil] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Num(pos, math.Ceil(numArg(pos, args[0], ip, string(OpCeil))))
	}
	ip.natives[OpFloor] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Num(pos, math.Floor(numArg(pos, args[0], ip, string(OpFloor))))
	}

	// BoolAnd/BoolOr: short-circuiting happens in eval.go's TOp2 case, which
	// evaluates the right operand only when the left one does not already
	// decide the result (DESIGN.md Open Question resolution (c)); these
	// natives receive both operands already evaluated.
	ip.natives[OpAnd] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		if !boolArg(pos, args[0], ip, string(OpAnd)) {
			return Bool(pos, false)
		}
		return Bool(pos, boolArg(pos, args[1], ip, string(OpAnd)))
	}
	ip.natives[OpOr] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		if boolArg(pos, args[0], ip, string(OpOr)) {
			return Bool(pos, true)
		}
		return Bool(pos, boolArg(pos, args[1], ip, string(OpOr)))
	}

	ip.natives[OpNumToStr] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		n := numArg(pos, args[0], ip, string(OpNumToStr))
		return Str(pos, formatNum(n))
	}
	ip.natives[OpStrToNum] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s, ok := asStr(args[0].Force(ip))
		if !ok {
			panic(newRuntimeError(pos, "type error: `%s` expects a Str", OpStrToNum))
		}
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
			panic(newRuntimeError(pos, "cannot parse `%s` as a number", s))
		}
		return Num(pos, f)
	}
}

func formatNum(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}

// valuesEqual is `==`: structural equality for comparable variants, and a
// type error for functions/sealed values (spec §4.3; term.go's Equal
// covers everything except the cases that need a RecordWHNF/ListWHNF-aware
// recursive descent, which only the evaluator can drive through Force).
func valuesEqual(ip *Interpreter, a, b *Term) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TList:
		la, _ := asList(a)
		lb, _ := asList(b)
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valuesEqual(ip, la[i].Force(ip), lb[i].Force(ip)) {
				return false
			}
		}
		return true
	case TRecord:
		ra, _ := asRecord(a)
		rb, _ := asRecord(b)
		if len(ra.Fields) != len(rb.Fields) {
			return false
		}
		for name, th := range ra.Fields {
			oth, ok := rb.Fields[name]
			if !ok || !valuesEqual(ip, th.Force(ip), oth.Force(ip)) {
				return false
			}
		}
		return true
	case TClosure, TNativeClosure, TWrapped:
		panic(newRuntimeError(a.Pos, "type error: %s is not comparable with `==`", describeTag(a)))
	default:
		return Equal(a, b)
	}
}
