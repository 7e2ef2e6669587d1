package semantic

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// TypeInferer is the pipeline's fourth pass: one round of the fixed-point
// loop that closes AUTO_TYPE slots. It re-walks the Scope tree the Checker
// already built (reporting nothing), re-deriving static types and fresh
// upper/lower bound constraints against this round's best-known variable
// types, then calls Solve on every slot. Run is meant to be invoked
// repeatedly by Analyze until a round leaves state.Changed false.
type TypeInferer struct{}

// Name identifies this pass for logging.
func (i *TypeInferer) Name() string { return "TypeInferer" }

// Run performs one inference round.
func (i *TypeInferer) Run(program *ast.Program, state *State) error {
	for _, scope := range state.ClassScopes {
		scope.ResetReplay()
	}

	w := &walker{state: state, mode: modeInfer}
	w.walkProgram(program)

	state.Changed = false
	for _, vi := range allVariables(state) {
		if vi.Solve() {
			state.Changed = true
			state.Inferences = append(state.Inferences,
				vi.Name+" : "+vi.Type.String())
		}
	}
	return nil
}

// allVariables collects every inference slot in the program: every class's
// attribute and let/case-branch locals (via its Scope tree, which also
// covers method parameters shared through AddLocal), plus every method's
// ReturnInfo, which lives only on the Method itself.
func allVariables(state *State) []*types.VariableInfo {
	var out []*types.VariableInfo
	for _, name := range state.Context.ClassNames() {
		if scope, ok := state.ClassScopes[name]; ok {
			out = append(out, scope.AllVariables()...)
		}
		ct, ok := state.Context.GetType(name)
		if !ok {
			continue
		}
		for _, m := range ct.Methods {
			out = append(out, m.ReturnInfo)
		}
	}
	return out
}
