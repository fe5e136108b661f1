package nickel

import (
	"strings"
	"testing"
)

func Test_Printer_Scalars(t *testing.T) {
	cases := map[string]string{
		"42":      "42",
		`"hi"`:    `"hi"`,
		"true":    "true",
		"null":    "null",
		"'Foo":    "'Foo",
	}
	for src, want := range cases {
		got := FormatTerm(evalSrc(t, src))
		if got != want {
			t.Errorf("FormatTerm(%q) = %q, want %q", src, got, want)
		}
	}
}

func Test_Printer_List(t *testing.T) {
	got := FormatTerm(evalSrc(t, "[1, 2]"))
	if !strings.Contains(got, "1") || !strings.Contains(got, "2") {
		t.Fatalf("want both elements present, got %q", got)
	}
}

func Test_Printer_Record_FieldsSortedAlphabetically(t *testing.T) {
	got := FormatTerm(evalSrc(t, "{ z = 1, a = 2 }"))
	if strings.Index(got, "a") > strings.Index(got, "z") {
		t.Fatalf("want `a` printed before `z`, got %q", got)
	}
}

func Test_Printer_Function_IsOpaque(t *testing.T) {
	got := FormatTerm(evalSrc(t, "fun x => x"))
	if got != "<function>" {
		t.Fatalf("want <function>, got %q", got)
	}
}

func Test_Printer_QuotesEscapeSpecialChars(t *testing.T) {
	got := FormatTerm(evalSrc(t, `"a\"b"`))
	if got != `"a\"b"` {
		t.Fatalf("want escaped quote preserved, got %q", got)
	}
}

func Test_Printer_UnforcedThunk_PrintsAsUnevaluated(t *testing.T) {
	p := &printer{}
	th := NewThunk(Num(nil, 1), NewEnv(nil))
	p.elemTerm(th)
	if p.b.String() != "<unevaluated>" {
		t.Fatalf("want <unevaluated> without forcing, got %q", p.b.String())
	}
	if th.state != thunkUnevaluated {
		t.Fatalf("printing must not force the thunk, got state %v", th.state)
	}
}
