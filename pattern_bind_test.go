package nickel

import "testing"

func Test_PatternBind_SimpleFields(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x, y } => x + y) { x = 1, y = 2 }`), 3)
}

func Test_PatternBind_Rename(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x = local } => local + 1) { x = 41 }`), 42)
}

func Test_PatternBind_Default_UsedWhenFieldAbsent(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x ? 10 } => x) {}`), 10)
}

func Test_PatternBind_Default_IgnoredWhenFieldPresent(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x ? 10 } => x) { x = 99 }`), 99)
}

func Test_PatternBind_ClosedPattern_RejectsExtraFields(t *testing.T) {
	evalErr(t, `(fun { x } => x) { x = 1, y = 2 }`)
}

func Test_PatternBind_OpenPattern_AllowsExtraFields(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x, .. } => x) { x = 1, y = 2 }`), 1)
}

func Test_PatternBind_RestCapturesLeftoverFields(t *testing.T) {
	v := evalSrc(t, `(fun { x, .. rest } => rest) { x = 1, y = 2, z = 3 }`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	if _, present := rw.Fields["x"]; present {
		t.Fatalf("`x` must not leak into the rest binding, got %#v", rw.Fields)
	}
	wantNum(t, rw.Fields["y"].whnf, 2)
	wantNum(t, rw.Fields["z"].whnf, 3)
}

func Test_PatternBind_MissingRequiredField_IsRuntimeError(t *testing.T) {
	evalErr(t, `(fun { x } => x) { y = 1 }`)
}

func Test_PatternBind_NonRecordArgument_IsRuntimeError(t *testing.T) {
	evalErr(t, `(fun { x } => x) 5`)
}

func Test_PatternBind_SelfName_BindsWholeArgument(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun whole@{ x } => whole.x + x) { x = 7 }`), 14)
}

func Test_PatternBind_TypeAnnotation_ChecksField(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x : Num } => x) { x = 5 }`), 5)
	evalErr(t, `(fun { x : Num } => x) { x = "not a num" }`)
}

func Test_PatternBind_NestedPattern_DestructuresFurther(t *testing.T) {
	wantNum(t, evalSrc(t, `(fun { x = { y } } => y) { x = { y = 9 } }`), 9)
}

func Test_PatternBind_NestedPattern_NonRecordField_IsRuntimeError(t *testing.T) {
	evalErr(t, `(fun { x = { y } } => y) { x = 5 }`)
}
