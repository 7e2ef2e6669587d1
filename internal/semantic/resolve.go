package semantic

import (
	"github.com/cwbudde/coolc/internal/token"
	"github.com/cwbudde/coolc/internal/types"
)

// resolveTypeName turns a type name written in source into a types.Type,
// recognizing the two sentinel spellings a programmer can write
// (SELF_TYPE, AUTO_TYPE) before falling back to the Context. Reports
// TypeUnknown for anything else that isn't registered.
func resolveTypeName(state *State, name string, pos token.Position) types.Type {
	switch name {
	case "SELF_TYPE":
		return types.SelfType
	case "AUTO_TYPE":
		return types.AutoType
	default:
		if ct, ok := state.Context.GetType(name); ok {
			return ct
		}
		state.AddError(newTypeUnknown(pos, name))
		return types.ErrorType
	}
}

// resolveTypeNameQuiet is resolveTypeName without diagnostic reporting, for
// re-walks (Inferer rounds, the final validation pass) that must not
// re-report a TypeUnknown the build walk already reported once.
func resolveTypeNameQuiet(state *State, name string) types.Type {
	switch name {
	case "SELF_TYPE":
		return types.SelfType
	case "AUTO_TYPE":
		return types.AutoType
	default:
		if ct, ok := state.Context.GetType(name); ok {
			return ct
		}
		return types.ErrorType
	}
}
