// thunk.go — the thunk store (spec §4.2).
//
// A Thunk is the mutable cell spec.md's glossary describes: it holds either
// an Unevaluated (term, env) pair or its forced WHNF. `Force` is idempotent
// and memoizing (spec invariant: "Forcing is idempotent"); forcing a thunk
// that is already being forced is the *recursion/blackhole* error (spec
// §4.2, §7) rather than silent divergence.
package nickel

// thunkState distinguishes the two lifecycle stages of a Thunk (spec:
// "mutated exactly once: from Unevaluated to Evaluated").
type thunkState int

const (
	thunkUnevaluated thunkState = iota
	thunkForcing
	thunkEvaluated
)

// Thunk is a shared, mutable cell bound to exactly one name in exactly one
// environment frame.
type Thunk struct {
	state thunkState
	term  *Term // valid while Unevaluated/Forcing, and lazyFn == nil
	env   *Env  // valid while Unevaluated/Forcing, and lazyFn == nil
	whnf  *Term // valid once Evaluated

	// lazyFn, when set, replaces (term, env): used for deferred computation
	// that isn't itself a Term (e.g. a contract re-checked lazily over a
	// list element or record field, spec §4.4 "List t: ... map assume t
	// label' v_i lazily over elements").
	lazyFn func(ip *Interpreter) *Term

	// deepForced marks that deep_seq has already walked this thunk to
	// completion, so a second deep_seq over a shared structure is O(1)
	// instead of re-walking (not required for correctness, just avoids
	// quadratic blowup on diamond-shaped sharing).
	deepForced bool
}

// NewThunk builds an unevaluated thunk over term, to be evaluated in env
// when first demanded.
func NewThunk(term *Term, env *Env) *Thunk {
	return &Thunk{state: thunkUnevaluated, term: term, env: env}
}

// NewLazyThunk defers an arbitrary computation (rather than a Term to
// reduce) until first demand, memoizing like any other thunk.
func NewLazyThunk(fn func(ip *Interpreter) *Term) *Thunk {
	return &Thunk{state: thunkUnevaluated, lazyFn: fn}
}

// EvaluatedThunk wraps an already-reduced WHNF term (used for literals
// bound directly, and by natives returning an already-forced result).
func EvaluatedThunk(whnf *Term) *Thunk {
	return &Thunk{state: thunkEvaluated, whnf: whnf}
}

// Force reduces the thunk to weak-head-normal-form, memoizing the result.
// Demanding a thunk that is itself mid-force raises a blackhole error
// (spec: "Forcing a thunk that is already being forced ... fails with a
// recursion/blackhole error").
func (th *Thunk) Force(ip *Interpreter) *Term {
	switch th.state {
	case thunkEvaluated:
		return th.whnf
	case thunkForcing:
		var pos *Span
		if th.term != nil {
			pos = th.term.Pos
		}
		panic(newRuntimeError(pos, "infinite recursion: value depends on itself"))
	}
	th.state = thunkForcing
	var result *Term
	if th.lazyFn != nil {
		result = th.lazyFn(ip)
	} else {
		result = ip.evalTerm(th.term, th.env)
	}
	th.whnf = result
	th.state = thunkEvaluated
	th.term, th.env, th.lazyFn = nil, nil, nil // release the closure now that it's no longer needed
	return result
}
