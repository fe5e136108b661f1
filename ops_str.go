// ops_str.go — string primitives (spec §4.3, §6).
//
// Grounded on the teacher's `builtin_strings.go`: one exported Go func per
// primitive, registered under string names instead of the teacher's closed
// opcode set. Unlike the teacher's own defensive clamp-rather-than-panic
// convention, substring/char_code/from_code raise instead of clamping,
// since spec.md is explicit that these error on out-of-range input.
// Regex (`str_is_match`/`str_match`/`str_replace_regex`) is new — no
// teacher analogue — and uses stdlib `regexp`, RE2's dialect, matching
// spec.md's described feature set (no backreferences/lookaround, which
// RE2 doesn't support).
package nickel

import (
	"regexp"
	"strings"
)

func strArg(pos *Span, th *Thunk, ip *Interpreter, which string) string {
	v := th.Force(ip)
	s, ok := asStr(v)
	if !ok {
		panic(newRuntimeError(pos, "type error: `%s` expects a Str, got %s", which, describeTag(v)))
	}
	return s
}

func registerStrOps(ip *Interpreter) {
	ip.natives[OpStrLen] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrLen))
		return Num(pos, float64(len([]rune(s))))
	}
	ip.natives[OpStrSplit] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrSplit))
		sep := strArg(pos, args[1], ip, string(OpStrSplit))
		parts := strings.Split(s, sep)
		out := make(ListWHNF, len(parts))
		for i, p := range parts {
			out[i] = EvaluatedThunk(Str(pos, p))
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpStrTrim] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Str(pos, strings.TrimSpace(strArg(pos, args[0], ip, string(OpStrTrim))))
	}
	ip.natives[OpStrChars] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrChars))
		runes := []rune(s)
		out := make(ListWHNF, len(runes))
		for i, r := range runes {
			out[i] = EvaluatedThunk(Str(pos, string(r)))
		}
		return mk(TList, pos, out)
	}
	ip.natives[OpStrUpper] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Str(pos, strings.ToUpper(strArg(pos, args[0], ip, string(OpStrUpper))))
	}
	ip.natives[OpStrLower] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		return Str(pos, strings.ToLower(strArg(pos, args[0], ip, string(OpStrLower))))
	}
	ip.natives[OpStrContains] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrContains))
		sub := strArg(pos, args[1], ip, string(OpStrContains))
		return Bool(pos, strings.Contains(s, sub))
	}
	ip.natives[OpStrReplace] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrReplace))
		old := strArg(pos, args[1], ip, string(OpStrReplace))
		repl := strArg(pos, args[2], ip, string(OpStrReplace))
		return Str(pos, strings.ReplaceAll(s, old, repl))
	}
	ip.natives[OpStrReplaceRegex] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrReplaceRegex))
		pat := strArg(pos, args[1], ip, string(OpStrReplaceRegex))
		repl := strArg(pos, args[2], ip, string(OpStrReplaceRegex))
		re := compileRegex(pos, pat)
		return Str(pos, re.ReplaceAllString(s, repl))
	}
	ip.natives[OpStrSubstring] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrSubstring))
		start := int(numArg(pos, args[1], ip, string(OpStrSubstring)))
		end := int(numArg(pos, args[2], ip, string(OpStrSubstring)))
		runes := []rune(s)
		if start < 0 || end > len(runes) || start > end {
			panic(newRuntimeError(pos, "substring: index range [%d, %d) out of bounds for a %d-character string", start, end, len(runes)))
		}
		return Str(pos, string(runes[start:end]))
	}
	ip.natives[OpStrCharCode] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrCharCode))
		runes := []rune(s)
		if len(runes) != 1 {
			panic(newRuntimeError(pos, "char_code expects a single-character string, got length %d", len(runes)))
		}
		code := runes[0]
		if code > 127 {
			panic(newRuntimeError(pos, "char_code: `%c` (code %d) is outside the ASCII range 0-127", code, code))
		}
		return Num(pos, float64(code))
	}
	ip.natives[OpStrFromCode] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		n := numArg(pos, args[0], ip, string(OpStrFromCode))
		code := int32(n)
		if code < 0 || code > 127 {
			panic(newRuntimeError(pos, "from_code: code %d is outside the ASCII range 0-127", code))
		}
		return Str(pos, string(rune(code)))
	}
	ip.natives[OpStrConcat] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		a := strArg(pos, args[0], ip, string(OpStrConcat))
		b := strArg(pos, args[1], ip, string(OpStrConcat))
		return Str(pos, a+b)
	}
	ip.natives[OpStrIsMatch] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrIsMatch))
		pat := strArg(pos, args[1], ip, string(OpStrIsMatch))
		re := compileRegex(pos, pat)
		return Bool(pos, re.MatchString(s))
	}
	ip.natives[OpStrMatch] = func(ip *Interpreter, pos *Span, args []*Thunk) *Term {
		s := strArg(pos, args[0], ip, string(OpStrMatch))
		pat := strArg(pos, args[1], ip, string(OpStrMatch))
		re := compileRegex(pos, pat)
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return mk(TRecord, pos, &RecordWHNF{Fields: map[string]*Thunk{
				"match":  EvaluatedThunk(Str(pos, "")),
				"index":  EvaluatedThunk(Num(pos, -1)),
				"groups": EvaluatedThunk(mk(TList, pos, ListWHNF{})),
			}})
		}
		submatches := re.FindStringSubmatch(s)
		groups := make(ListWHNF, len(submatches)-1)
		for i, g := range submatches[1:] {
			groups[i] = EvaluatedThunk(Str(pos, g))
		}
		return mk(TRecord, pos, &RecordWHNF{Fields: map[string]*Thunk{
			"match":  EvaluatedThunk(Str(pos, submatches[0])),
			"index":  EvaluatedThunk(Num(pos, float64(loc[0]))),
			"groups": EvaluatedThunk(mk(TList, pos, groups)),
		}})
	}
}

func compileRegex(pos *Span, pat string) *regexp.Regexp {
	re, err := regexp.Compile(pat)
	if err != nil {
		panic(newRuntimeError(pos, "invalid regular expression `%s`: %v", pat, err))
	}
	return re
}
