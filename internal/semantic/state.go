package semantic

// State is the single mutable struct threaded through every pass: the type
// table, the class root scopes the Checker builds and the Inferer revisits,
// and the accumulated diagnostics.
type State struct {
	Context *Context

	// ClassScopes maps each class name to the root Scope created for its
	// body. The Checker creates these; the Inferer re-walks them without
	// rebuilding the tree.
	ClassScopes map[string]*Scope

	Errors []*SemanticError

	// Inferences records one human-readable fact per VariableInfo the
	// Inferer closes, in closing order, for the CLI's `inferences` output
	// (spec.md §6.2).
	Inferences []string

	// Changed is set by the Inferer's most recent Run to report whether any
	// variable closed this round, driving the fixed-point loop.
	Changed bool
}

// NewState creates an empty State around a fresh Context.
func NewState() *State {
	return &State{
		Context:     NewContext(),
		ClassScopes: make(map[string]*Scope),
	}
}

// AddError appends a structured diagnostic.
func (s *State) AddError(err *SemanticError) {
	s.Errors = append(s.Errors, err)
}

// HasErrors reports whether any diagnostic has been recorded.
func (s *State) HasErrors() bool {
	return len(s.Errors) > 0
}
