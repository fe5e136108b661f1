package nickel

import "testing"

// --- dynamic field extend/remove surface syntax: `r$[k=v]`, `r-$[k]` -------------

func Test_DynamicRecord_Extend_AddsField(t *testing.T) {
	wantNum(t, evalSrc(t, `({ a = 1 }$["b" = 2]).b`), 2)
}

func Test_DynamicRecord_Extend_KeyCanBeAnExpression(t *testing.T) {
	wantNum(t, evalSrc(t, `let k = "b" in ({ a = 1 }$[k = 2]).b`), 2)
}

func Test_DynamicRecord_Extend_OverwritesExistingField(t *testing.T) {
	wantNum(t, evalSrc(t, `({ a = 1 }$["a" = 9]).a`), 9)
}

func Test_DynamicRecord_Remove_DropsField(t *testing.T) {
	v := evalSrc(t, `{ a = 1, b = 2 }-$["a"]`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	if _, present := rw.Fields["a"]; present {
		t.Fatalf("want `a` removed, got %#v", rw.Fields)
	}
	wantNum(t, rw.Fields["b"].whnf, 2)
}

func Test_DynamicRecord_Remove_MissingField_IsRuntimeError(t *testing.T) {
	evalErr(t, `{ a = 1 }-$["z"]`)
}

func Test_DynamicRecord_ExtendThenRemove_Chain(t *testing.T) {
	v := evalSrc(t, `{ a = 1 }$["b" = 2]-$["a"]`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	if _, present := rw.Fields["a"]; present {
		t.Fatalf("want `a` removed, got %#v", rw.Fields)
	}
	wantNum(t, rw.Fields["b"].whnf, 2)
}
