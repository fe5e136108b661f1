// cont.go — the evaluator's continuation stack (spec §4.3: "A small-step
// machine with explicit continuation stack. State: (current_term, env,
// stack)").
//
// Each frame says what to do with the WHNF that the current reduction
// eventually produces. Grounded on the teacher's VM-frame idiom (vm.go's
// opcode/frame dispatch) but over Terms instead of bytecode, since nothing
// here needs to be compiled ahead of time.
package nickel

// frame is one pending continuation. Concrete frame types are unexported;
// evalTerm's driver loop is the only code that inspects them.
type frame interface{}

// frUpdate memoizes the eventual WHNF into th once the current reduction
// finishes (spec §4.3, Var: "push a continuation *update this thunk with
// the result*").
type frUpdate struct{ th *Thunk }

// frApply supplies the pending argument once the function position reaches
// WHNF (a closure).
type frApply struct {
	argTerm *Term
	argEnv  *Env
}
