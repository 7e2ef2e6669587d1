package semantic

import "github.com/cwbudde/coolc/internal/ast"

// builtinClassNames lists every class the Collector pre-seeds before a
// single line of the program is read. Object is the universal root; the
// Builder wires IO, Int, String, Bool under it and seals Int, String, Bool.
// SELF_TYPE and AUTO_TYPE are not registered here: they are sentinel values
// that resolveTypeName recognizes by name.
var builtinClassNames = []string{"Object", "IO", "Int", "String", "Bool"}

// TypeCollector is the pipeline's first pass: it registers every class name
// — the built-ins, then each user ClassDecl in source order — into the
// shared Context. No inheritance, attribute, or method information is
// touched yet; that is the Builder's job, which needs every name to already
// resolve before it can wire parent links in any declaration order.
type TypeCollector struct{}

// Name identifies this pass for logging.
func (c *TypeCollector) Name() string { return "TypeCollector" }

// Run registers the built-in classes and every user class declared in
// program, reporting a TypeRedeclared error for any duplicate name.
func (c *TypeCollector) Run(program *ast.Program, state *State) error {
	for _, name := range builtinClassNames {
		if _, err := state.Context.CreateType(name); err != nil {
			// Cannot happen: builtinClassNames has no duplicates and Run
			// only executes once per Context.
			return err
		}
	}

	for _, class := range program.Classes {
		if _, err := state.Context.CreateType(class.Name); err != nil {
			state.AddError(newTypeRedeclared(class.Pos(), class.Name))
			continue
		}
	}

	return nil
}
