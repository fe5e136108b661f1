package nickel

import "testing"

func Test_Seal_PolymorphicIdentity_PassesValueThrough(t *testing.T) {
	wantNum(t, evalSrc(t, `(((fun x => x) : forall a. a -> a)) 5`), 5)
}

func Test_Seal_PolymorphicIdentity_WorksOnAnyType(t *testing.T) {
	wantStr(t, evalSrc(t, `(((fun x => x) : forall a. a -> a)) "hi"`), "hi")
}

func Test_Seal_InspectingSealedValue_IsTypeError(t *testing.T) {
	// A function claiming `forall a. a -> a` that actually adds 1 to its
	// argument must fail the moment it touches the sealed value, because
	// arithmetic expects a plain Num and finds a sealed wrapper instead.
	evalErr(t, `(((fun x => x + 1) : forall a. a -> a)) 5`)
}

func Test_Seal_RepeatedApplication_EachCallRoundTrips(t *testing.T) {
	// The same forall-bound symbol is reused across every call to `id`,
	// but sealing doesn't care what's underneath: each call still wraps
	// and unwraps its own argument untouched, whatever its type.
	v := evalSrc(t, `
		let id = (fun x => x) : forall a. a -> a in
		{ n = id 1, s = id "hi" }
	`)
	rw, ok := asRecord(v)
	if !ok {
		t.Fatalf("want a record, got %#v", v)
	}
	wantNum(t, rw.Fields["n"].whnf, 1)
	wantStr(t, rw.Fields["s"].whnf, "hi")
}
