package nickel

import (
	"strings"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func evalSrc(t *testing.T, src string) *Term {
	t.Helper()
	ip := NewInterpreter(nil)
	v, err := ip.EvalSourceDeep("<test>", src)
	if err != nil {
		t.Fatalf("eval error for %q: %v", src, err)
	}
	return v
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	ip := NewInterpreter(nil)
	_, err := ip.EvalSourceDeep("<test>", src)
	if err == nil {
		t.Fatalf("expected an error evaluating %q, got none", src)
	}
	return err
}

func wantNum(t *testing.T, v *Term, f float64) {
	t.Helper()
	if v.Tag != TNum || v.Data.(float64) != f {
		t.Fatalf("want num %g, got %#v", f, v)
	}
}

func wantStr(t *testing.T, v *Term, s string) {
	t.Helper()
	if v.Tag != TStr || v.Data.(string) != s {
		t.Fatalf("want str %q, got %#v", s, v)
	}
}

func wantBool(t *testing.T, v *Term, b bool) {
	t.Helper()
	if v.Tag != TBool || v.Data.(bool) != b {
		t.Fatalf("want bool %v, got %#v", b, v)
	}
}

func wantNull(t *testing.T, v *Term) {
	t.Helper()
	if v.Tag != TNull {
		t.Fatalf("want null, got %#v", v)
	}
}

func wantEnum(t *testing.T, v *Term, tag string) {
	t.Helper()
	if v.Tag != TEnum || v.Data.(string) != tag {
		t.Fatalf("want enum '%s, got %#v", tag, v)
	}
}

// --- literals and arithmetic ------------------------------------------------

func Test_Eval_Literals(t *testing.T) {
	wantNum(t, evalSrc(t, "42"), 42)
	wantStr(t, evalSrc(t, `"hi"`), "hi")
	wantBool(t, evalSrc(t, "true"), true)
	wantBool(t, evalSrc(t, "false"), false)
	wantNull(t, evalSrc(t, "null"))
	wantEnum(t, evalSrc(t, "'Foo"), "Foo")
}

func Test_Eval_Arithmetic_Precedence(t *testing.T) {
	wantNum(t, evalSrc(t, "1 + 2 * 3"), 7)
	wantNum(t, evalSrc(t, "(1 + 2) * 3"), 9)
	wantNum(t, evalSrc(t, "7 % 4"), 3)
	wantNum(t, evalSrc(t, "10 / 4"), 2.5)
	wantNum(t, evalSrc(t, "-5 + 3"), -2)
}

func Test_Eval_DivisionByZero_IsRuntimeError(t *testing.T) {
	err := evalErr(t, "1 / 0")
	if !strings.Contains(err.Error(), "RUNTIME ERROR") {
		t.Fatalf("want a runtime error, got: %v", err)
	}
}

func Test_Eval_Comparisons(t *testing.T) {
	wantBool(t, evalSrc(t, "3 < 4"), true)
	wantBool(t, evalSrc(t, "4 <= 4"), true)
	wantBool(t, evalSrc(t, "5 > 4"), true)
	wantBool(t, evalSrc(t, "1 == 1"), true)
	wantBool(t, evalSrc(t, "1 != 2"), true)
	wantBool(t, evalSrc(t, `"a" == "a"`), true)
}

// --- short-circuit &&/|| -----------------------------------------------------

func Test_Eval_And_ShortCircuits(t *testing.T) {
	// the right operand would blow up if forced; && must never force it
	// once the left operand is already false.
	wantBool(t, evalSrc(t, `false && (1/0 == 0)`), false)
}

func Test_Eval_Or_ShortCircuits(t *testing.T) {
	wantBool(t, evalSrc(t, `true || (1/0 == 0)`), true)
}

func Test_Eval_And_Or_DoEvaluateWhenNeeded(t *testing.T) {
	wantBool(t, evalSrc(t, "true && false"), false)
	wantBool(t, evalSrc(t, "true && true"), true)
	wantBool(t, evalSrc(t, "false || true"), true)
	wantBool(t, evalSrc(t, "false || false"), false)
}

// --- let / fun / if / switch -------------------------------------------------

func Test_Eval_Let(t *testing.T) {
	wantNum(t, evalSrc(t, "let x = 1 in x + 1"), 2)
	wantNum(t, evalSrc(t, "let x = 1 in let y = x + 1 in x + y"), 3)
}

func Test_Eval_Fun_Application(t *testing.T) {
	wantNum(t, evalSrc(t, "(fun x => x + 1) 41"), 42)
	wantNum(t, evalSrc(t, "(fun x => fun y => x + y) 1 2"), 3)
}

func Test_Eval_If(t *testing.T) {
	wantNum(t, evalSrc(t, "if true then 1 else 2"), 1)
	wantNum(t, evalSrc(t, "if false then 1 else 2"), 2)
}

func Test_Eval_If_OnlyEvaluatesTakenBranch(t *testing.T) {
	wantNum(t, evalSrc(t, "if true then 1 else 1/0"), 1)
	wantNum(t, evalSrc(t, "if false then 1/0 else 2"), 2)
}

func Test_Eval_Switch(t *testing.T) {
	wantNum(t, evalSrc(t, "switch 'A { 'A => 1, 'B => 2 }"), 1)
	wantNum(t, evalSrc(t, "switch 'B { 'A => 1, 'B => 2 }"), 2)
	wantNum(t, evalSrc(t, "switch 'C { 'A => 1, _ => 9 }"), 9)
}

func Test_Eval_BinOp_AsRightOperandOfLet(t *testing.T) {
	wantNum(t, evalSrc(t, "1 + let x = 2 in x"), 3)
}

// --- records and field access ------------------------------------------------

func Test_Eval_Record_FieldAccess(t *testing.T) {
	wantNum(t, evalSrc(t, "{ x = 1, y = 2 }.y"), 2)
}

func Test_Eval_Record_FieldsSeeSiblings(t *testing.T) {
	wantNum(t, evalSrc(t, "{ x = 1, y = x + 1 }.y"), 2)
}

func Test_Eval_Record_MissingField_IsRuntimeError(t *testing.T) {
	evalErr(t, "{ x = 1 }.z")
}

// --- lists --------------------------------------------------------------------

func Test_Eval_List_Literal(t *testing.T) {
	v := evalSrc(t, "[1, 2, 3]")
	lw, ok := asList(v)
	if !ok || len(lw) != 3 {
		t.Fatalf("want a 3-element list, got %#v", v)
	}
	wantNum(t, lw[1].whnf, 2)
}

// --- string interpolation ------------------------------------------------------

func Test_Eval_StringInterpolation(t *testing.T) {
	wantStr(t, evalSrc(t, `let name = "world" in "hello #{name}!"`), "hello world!")
}

func Test_Eval_StringInterpolation_NestedExpr(t *testing.T) {
	wantStr(t, evalSrc(t, `"sum is #{std.num.to_str (1 + 2)}"`), "sum is 3")
}

func Test_Eval_StringEscapes(t *testing.T) {
	wantStr(t, evalSrc(t, `"a\nb"`), "a\nb")
	wantStr(t, evalSrc(t, `"tab\there"`), "tab\there")
}
