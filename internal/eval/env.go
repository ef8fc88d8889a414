package eval

// Env is a persistent, parent-linked runtime environment, mirroring
// internal/types.Env's shape (spec.md §3).
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates the program-root environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Child creates a new scope linked to e, used for block/lambda/for bodies
// and for a closure's captured frame.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]Value), parent: e}
}

// Lookup walks the scope chain for name.
func (e *Env) Lookup(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define binds name in the current scope. The type checker has already
// rejected same-scope redefinition, so the evaluator never needs to guard
// against overwriting here.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Bindings returns the names defined directly in this scope, used when a
// module's top-level environment becomes its VModule.Bindings.
func (e *Env) Bindings() map[string]Value {
	out := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}
