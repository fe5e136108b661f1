package nickel

import "testing"

func Test_Types_String(t *testing.T) {
	cases := []struct {
		typ  *Type
		want string
	}{
		{NumT, "Num"},
		{Dyn, "Dyn"},
		{Arrow(NumT, BoolT), "Num -> Bool"},
		{ListT(StrT), "List Str"},
	}
	for _, c := range cases {
		if got := c.typ.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func Test_Types_Equal(t *testing.T) {
	if !TypesEqual(NumT, NumT) {
		t.Fatalf("Num should equal itself")
	}
	if TypesEqual(NumT, BoolT) {
		t.Fatalf("Num should not equal Bool")
	}
	if !TypesEqual(Arrow(NumT, BoolT), Arrow(NumT, BoolT)) {
		t.Fatalf("structurally equal arrows should be equal")
	}
	if TypesEqual(Arrow(NumT, BoolT), Arrow(BoolT, NumT)) {
		t.Fatalf("differently-shaped arrows should not be equal")
	}
	if !TypesEqual(nil, nil) {
		t.Fatalf("nil should equal nil")
	}
}

func Test_Types_FreeTypeVars(t *testing.T) {
	a := NewIdent("a", nil)
	// `a` is free in `List a`.
	free := FreeTypeVars(ListT(VarT(a)))
	if !free["a"] {
		t.Fatalf("want `a` free, got %v", free)
	}
	// `a` is bound once wrapped in `forall a. List a`.
	bound := FreeTypeVars(Forall(a, ListT(VarT(a))))
	if len(bound) != 0 {
		t.Fatalf("want no free variables, got %v", bound)
	}
}

func Test_Types_CheckUnbound(t *testing.T) {
	a := NewIdent("a", nil)
	if err := CheckUnbound(ListT(VarT(a))); err == nil {
		t.Fatalf("want an unbound-variable error")
	}
	if err := CheckUnbound(Forall(a, ListT(VarT(a)))); err != nil {
		t.Fatalf("want no error once `a` is bound, got %v", err)
	}
	if err := CheckUnbound(NumT); err != nil {
		t.Fatalf("want no error for a variable-free type, got %v", err)
	}
}
