// ops_misc.go — primitives with no natural home in a single domain file:
// the strictness marks `seq`/`deep_seq` (spec §4.2, §4.3) and the
// label-inspection primitives a custom contract uses to raise or customize
// its own blame (spec §4.4: "a user function λ label value. value|blame").
//
// Grounded on the teacher's builtin_strings.go flat-registration idiom,
// the same convention every other ops_*.go file follows; seq/deep_seq reuse
// eval.go's own deepSeq helper instead of reimplementing strictness.
package nickel

func labelArg(pos *Span, th *Thunk, ip *Interpreter, which string) *LabelData {
	v := th.Force(ip)
	if v.Tag != TLabel {
		panic(newRuntimeError(pos, "type error: `%s` expects a contract label, got %s", which, describeTag(v)))
	}
	return v.Data.(*LabelData)
}

func registerMiscOps(ip *Interpreter) {
	ip.natives[OpSeq] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		args[0].Force(ip)
		return args[1].Force(ip)
	}
	ip.natives[OpDeepSeq] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		ip.deepSeq(args[0].Force(ip))
		return args[1].Force(ip)
	}
	ip.natives[OpTag] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		ld := labelArg(pos, args[0], ip, string(OpTag))
		return Str(pos, ld.L.Tag)
	}
	ip.natives[OpBlameWith] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		ld := labelArg(pos, args[0], ip, string(OpBlameWith))
		msg := strArg(pos, args[1], ip, string(OpBlameWith))
		return mk(TLabel, pos, &LabelData{L: ld.L, Msg: msg})
	}
	ip.natives[OpBlame] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		ld := labelArg(pos, args[0], ip, string(OpBlame))
		panic(ld.L.Blame(ld.Msg))
	}
}
