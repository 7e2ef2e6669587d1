package semantic

import "github.com/cwbudde/coolc/internal/ast"

// Analyze runs the full four-stage pipeline over program: Collector,
// Builder, Checker, then the Inferer's fixed-point loop, and finally a
// validation walk that reports every remaining type-conformance error
// against the now-maximally-resolved types. It never returns early on a
// semantic error — every pass collects into state.Errors and keeps going,
// so a single Analyze call surfaces as many diagnostics as possible
// (SPEC_FULL.md §7).
func Analyze(program *ast.Program) *State {
	state := NewState()

	passes := NewPassManager(&TypeCollector{}, &TypeBuilder{}, &TypeChecker{})
	if err := passes.RunAll(program, state); err != nil {
		// Only a programming-error-grade failure reaches here; every
		// expected semantic problem is reported through state.Errors.
		return state
	}

	inferer := &TypeInferer{}
	for {
		if err := inferer.Run(program, state); err != nil {
			return state
		}
		if !state.Changed {
			break
		}
	}

	finalizeTypes(state, program)
	return state
}

// finalizeTypes re-walks the Scope tree once more reporting every
// type-conformance error against the types the Inferer settled on, then
// copies each VariableInfo's final Type back onto the ClassType/Method it
// belongs to, so a downstream consumer (CLI --dump-context, tests) can read
// resolved types directly off the Context without walking scopes itself.
func finalizeTypes(state *State, program *ast.Program) {
	for _, scope := range state.ClassScopes {
		scope.ResetReplay()
	}

	w := &walker{state: state, mode: modeFinal}
	w.walkProgram(program)

	for _, name := range state.Context.ClassNames() {
		ct, ok := state.Context.GetType(name)
		if !ok {
			continue
		}
		if scope, ok := state.ClassScopes[name]; ok {
			for i, attr := range ct.Attributes {
				if i < scope.LocalCount() {
					attr.Type = scope.LocalAt(i).Type
				}
			}
		}
		for _, m := range ct.Methods {
			for i := range m.ParamTypes {
				m.ParamTypes[i] = m.ParamInfos[i].Type
			}
			m.ReturnType = m.ReturnInfo.Type
		}
	}
}
