package semantic

import "github.com/cwbudde/coolc/internal/ast"

// TypeChecker is the pipeline's third pass: it builds the per-class Scope
// tree, assigns an initial static type to every expression, and reports
// every structural error (undefined names, call arity, self-assignment).
// Type-conformance errors are deferred to the final validation walk, after
// the Inferer has closed as many AUTO_TYPE slots as it can.
type TypeChecker struct{}

// Name identifies this pass for logging.
func (c *TypeChecker) Name() string { return "TypeChecker" }

// Run walks every class body once, in modeBuild.
func (c *TypeChecker) Run(program *ast.Program, state *State) error {
	w := &walker{state: state, mode: modeBuild}
	w.walkProgram(program)
	return nil
}
