package semantic

import "github.com/cwbudde/coolc/internal/ast"

// Pass is one stage of the pipeline: collector, builder, checker, or
// inferer. Each pass reads and writes the shared State rather than
// returning a transformed AST — it only annotates the one it was given.
type Pass interface {
	Name() string
	Run(program *ast.Program, state *State) error
}

// PassManager runs a fixed sequence of passes, stopping early if a pass
// reports a fatal Go error (as opposed to a semantic error, which is
// collected in State.Errors and never halts the pipeline).
type PassManager struct {
	passes []Pass
}

// NewPassManager builds a manager that runs passes in the given order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// RunAll executes every pass in order.
func (pm *PassManager) RunAll(program *ast.Program, state *State) error {
	for _, pass := range pm.passes {
		if err := pass.Run(program, state); err != nil {
			return err
		}
	}
	return nil
}
