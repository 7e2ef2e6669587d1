package semantic

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/types"
)

// TypeBuilder is the pipeline's second pass: it wires every class's parent
// link, installs the built-in method signatures, then defines every
// user-declared attribute and method. By the time it finishes, the type
// lattice is complete and every class's Attributes/Methods are final — the
// Checker never mutates a ClassType, only reads it.
type TypeBuilder struct{}

// Name identifies this pass for logging.
func (b *TypeBuilder) Name() string { return "TypeBuilder" }

// Run wires inheritance, installs built-ins, and defines user members.
func (b *TypeBuilder) Run(program *ast.Program, state *State) error {
	b.installBuiltins(state)
	b.wireInheritance(state, program)
	b.defineMembers(state, program)
	b.checkEntryPoint(state)
	return nil
}

func (b *TypeBuilder) installBuiltins(state *State) {
	object := state.Context.MustGetType("Object")
	io := state.Context.MustGetType("IO")
	integer := state.Context.MustGetType("Int")
	str := state.Context.MustGetType("String")
	boolean := state.Context.MustGetType("Bool")

	_ = io.SetParent(object)
	_ = integer.SetParent(object)
	_ = str.SetParent(object)
	_ = boolean.SetParent(object)
	integer.Sealed = true
	str.Sealed = true
	boolean.Sealed = true

	_, _ = object.DefineMethod("abort", nil, nil, object)
	_, _ = object.DefineMethod("type_name", nil, nil, str)
	_, _ = object.DefineMethod("copy", nil, nil, types.SelfType)

	_, _ = io.DefineMethod("out_string", []string{"x"}, []types.Type{str}, types.SelfType)
	_, _ = io.DefineMethod("out_int", []string{"x"}, []types.Type{integer}, types.SelfType)
	_, _ = io.DefineMethod("in_string", nil, nil, str)
	_, _ = io.DefineMethod("in_int", nil, nil, integer)

	_, _ = str.DefineMethod("length", nil, nil, integer)
	_, _ = str.DefineMethod("concat", []string{"s"}, []types.Type{str}, str)
	_, _ = str.DefineMethod("substr", []string{"i", "l"}, []types.Type{integer, integer}, str)
}

func (b *TypeBuilder) wireInheritance(state *State, program *ast.Program) {
	object := state.Context.MustGetType("Object")

	decls := make(map[string]*ast.ClassDecl, len(program.Classes))
	for _, c := range program.Classes {
		if _, ok := state.Context.GetType(c.Name); ok {
			decls[c.Name] = c
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	inCycle := make(map[string]bool)

	var visit func(name string) bool
	visit = func(name string) bool {
		decl, ok := decls[name]
		if !ok || !decl.HasParent {
			color[name] = black
			return false
		}
		switch color[name] {
		case gray:
			return true
		case black:
			return inCycle[name]
		}
		color[name] = gray
		if visit(decl.Parent) {
			inCycle[name] = true
		}
		color[name] = black
		return inCycle[name]
	}
	for name := range decls {
		visit(name)
	}

	for name, decl := range decls {
		ct, _ := state.Context.GetType(name)

		switch {
		case inCycle[name]:
			state.AddError(newInheritanceRule(decl.Pos(),
				fmt.Sprintf("class %q participates in an inheritance cycle", name)))
			_ = ct.SetParent(object)
		case !decl.HasParent:
			_ = ct.SetParent(object)
		case decl.Parent == "SELF_TYPE" || decl.Parent == "AUTO_TYPE":
			state.AddError(newInheritanceRule(decl.Pos(),
				fmt.Sprintf("class %q cannot inherit from %s", name, decl.Parent)))
			_ = ct.SetParent(object)
		default:
			parentType, ok := state.Context.GetType(decl.Parent)
			if !ok {
				state.AddError(newTypeUnknown(decl.Pos(), decl.Parent))
				_ = ct.SetParent(object)
				continue
			}
			if parentType.Sealed {
				state.AddError(newInheritanceRule(decl.Pos(),
					fmt.Sprintf("class %q cannot inherit from sealed class %q", name, decl.Parent)))
				_ = ct.SetParent(object)
				continue
			}
			if err := ct.SetParent(parentType); err != nil {
				state.AddError(newInheritanceRule(decl.Pos(), err.Error()))
			}
		}
	}
}

func (b *TypeBuilder) defineMembers(state *State, program *ast.Program) {
	for _, decl := range program.Classes {
		ct, ok := state.Context.GetType(decl.Name)
		if !ok {
			continue
		}
		for _, feat := range decl.Features {
			switch f := feat.(type) {
			case *ast.AttrDecl:
				b.defineAttribute(state, ct, f)
			case *ast.FuncDecl:
				b.defineMethod(state, ct, f)
			}
		}
	}
}

func (b *TypeBuilder) defineAttribute(state *State, ct *types.ClassType, f *ast.AttrDecl) {
	if f.Name == "self" {
		state.AddError(newInvalidOperands(f.Pos(), `"self" cannot be used as an attribute name`))
		return
	}
	typ := resolveTypeName(state, f.TypeName, f.Pos())
	if _, err := ct.DefineAttribute(f.Name, typ); err != nil {
		state.AddError(newAttrRedeclared(f.Pos(), f.Name, ct.Name))
	}
}

func (b *TypeBuilder) defineMethod(state *State, ct *types.ClassType, f *ast.FuncDecl) {
	paramNames := make([]string, len(f.Params))
	paramTypes := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		paramNames[i] = p.Name
		pt := resolveTypeName(state, p.TypeName, p.Pos)
		if types.IsSelfType(pt) {
			state.AddError(newInvalidParamType(p.Pos, p.Name))
			pt = types.ErrorType
		}
		paramTypes[i] = pt
	}
	returnType := resolveTypeName(state, f.ReturnTypeName, f.Pos())

	if existing, ok := ct.GetMethod(f.Name); ok && !methodSignatureMatches(existing, paramTypes, returnType) {
		state.AddError(newMethodArity(f.Pos(), f.Name, len(existing.ParamTypes), len(paramTypes)))
	}

	if _, err := ct.DefineMethod(f.Name, paramNames, paramTypes, returnType); err != nil {
		state.AddError(newMethodRedeclared(f.Pos(), f.Name, ct.Name))
	}
}

func methodSignatureMatches(existing *types.Method, paramTypes []types.Type, returnType types.Type) bool {
	if len(existing.ParamTypes) != len(paramTypes) {
		return false
	}
	for i, pt := range paramTypes {
		if !existing.ParamTypes[i].Equals(pt) {
			return false
		}
	}
	return existing.ReturnType.Equals(returnType)
}

func (b *TypeBuilder) checkEntryPoint(state *State) {
	main, ok := state.Context.GetType("Main")
	if !ok {
		state.AddError(newMissingEntryPoint())
		return
	}
	m, ok := main.Methods["main"]
	if !ok || len(m.ParamTypes) != 0 {
		state.AddError(newMissingEntryPoint())
	}
}
