// env.go — environment & thunk store (spec §4.2).
//
// Keeps the teacher's Env{parent, table} shape (daios-ai-msg/interpreter.go),
// here with Define/Bind/Lookup, but the table now maps a name to a *Thunk
// rather than directly to a Value: bindings are lazy, memoized on first
// force, per spec's call-by-need discipline ("Do not implement via textual
// substitution", spec §9).
package nickel

// Env is a persistent, structurally-shared lexical frame. Frames grow
// monotonically within a closure (spec invariant: "Environments grow
// monotonically within a closure and are shared structurally").
type Env struct {
	parent *Env
	table  map[string]*Thunk
}

// NewEnv creates a frame chained to parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]*Thunk)}
}

// Bind creates a new child frame with name bound to a fresh, unevaluated
// thunk over term/parentEnv. This is the evaluator's `bind(id, term,
// parent_env) -> env` from spec §4.2.
func (e *Env) Bind(name string, term *Term, parentEnv *Env) *Env {
	child := NewEnv(e)
	child.table[name] = NewThunk(term, parentEnv)
	return child
}

// BindThunk is like Bind but installs an already-constructed thunk in the
// new child frame. The evaluator's recursive bindings (record fields that
// see their siblings, `let`) use Define on an existing frame instead.
func (e *Env) BindThunk(name string, th *Thunk) *Env {
	child := NewEnv(e)
	child.table[name] = th
	return child
}

// Define installs a thunk into the current frame in place (used while
// constructing a record's recursive environment, where every field thunk
// must close over the same frame that holds all its siblings).
func (e *Env) Define(name string, th *Thunk) { e.table[name] = th }

// Lookup resolves name to its thunk by walking the parent chain, matching
// spec §4.2's `lookup(id) -> thunk`.
func (e *Env) Lookup(name string) (*Thunk, bool) {
	for env := e; env != nil; env = env.parent {
		if th, ok := env.table[name]; ok {
			return th, true
		}
	}
	return nil, false
}
