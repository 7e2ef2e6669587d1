package semantic

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/token"
	"github.com/cwbudde/coolc/internal/types"
)

// walkMode selects what a walker does on a given pass over the AST. The
// Checker, Inferer, and the final validation pass all walk the same tree;
// splitting their concerns by mode instead of by separate traversal code
// keeps scope construction, constraint gathering, and error reporting from
// happening more than once each (SPEC_FULL.md §4.5, §4.6).
type walkMode int

const (
	// modeBuild runs once: builds the Scope tree, assigns static types, and
	// reports structural errors (undefined names, arity, self-assignment).
	modeBuild walkMode = iota
	// modeInfer re-walks the existing tree each fixed-point round: re-derives
	// static types against the current best-known variable types and
	// accumulates fresh upper/lower bound constraints. Reports nothing.
	modeInfer
	// modeFinal re-walks the tree once more after the fixed point, reporting
	// type-conformance errors against the now-closed types.
	modeFinal
)

// walker carries the state shared across one AST traversal.
type walker struct {
	state        *State
	mode         walkMode
	currentClass *types.ClassType
}

func (w *walker) buildScopes() bool    { return w.mode == modeBuild }
func (w *walker) reportStructural() bool { return w.mode == modeBuild }
func (w *walker) inferMode() bool      { return w.mode == modeInfer }
func (w *walker) reportTypeErrors() bool { return w.mode == modeFinal }

func (w *walker) intType() types.Type    { return w.state.Context.MustGetType("Int") }
func (w *walker) stringType() types.Type { return w.state.Context.MustGetType("String") }
func (w *walker) boolType() types.Type   { return w.state.Context.MustGetType("Bool") }
func (w *walker) objectType() types.Type { return w.state.Context.MustGetType("Object") }

func (w *walker) isPrimitive(t types.Type) bool {
	return t.Equals(w.intType()) || t.Equals(w.stringType()) || t.Equals(w.boolType())
}

// effectiveType substitutes Object for a variable that never closed during
// inference, so the final validation pass has something concrete to compare
// against instead of treating an eternally-open AUTO_TYPE as "conforms to
// everything".
func (w *walker) effectiveType(t types.Type) types.Type {
	if types.IsAutoType(t) {
		return w.objectType()
	}
	return t
}

// enterScope advances into a child scope: creates one during the build walk,
// or replays the next already-built child during a re-walk.
func (w *walker) enterScope(parent *Scope) *Scope {
	if w.buildScopes() {
		return parent.CreateChild()
	}
	return parent.NextChild()
}

func (w *walker) concreteClassOf(t types.Type) *types.ClassType {
	if types.IsSelfType(t) {
		return w.currentClass
	}
	if ct, ok := t.(*types.ClassType); ok {
		return ct
	}
	return nil
}

func (w *walker) resolveInheritedAttribute(ct *types.ClassType, name string) (*types.VariableInfo, bool) {
	for p := ct.ParentType; p != nil; p = p.ParentType {
		scope, ok := w.state.ClassScopes[p.Name]
		if !ok {
			continue
		}
		if vi, ok := scope.FindLocal(name); ok {
			return vi, true
		}
	}
	return nil, false
}

// findVariableInfo resolves name to its inference slot, checking the local
// scope chain first and then the current class's inherited attributes —
// the same two sources checkID and checkAssign read from.
func (w *walker) findVariableInfo(name string, scope *Scope) (*types.VariableInfo, bool) {
	if vi, ok := scope.FindVariable(name); ok {
		return vi, true
	}
	return w.resolveInheritedAttribute(w.currentClass, name)
}

// constrainUpper records that e, when it names an open variable, is used
// where a value of want is required — the upper-bound half of the §4.5
// constraint model (the original's expected_type propagated into IdNode).
// Only meaningful during the Inferer's pass; a no-op otherwise.
func (w *walker) constrainUpper(e ast.Expression, scope *Scope, want types.Type) {
	if !w.inferMode() {
		return
	}
	id, ok := e.(*ast.Id)
	if !ok || id.Name == "self" {
		return
	}
	if vi, ok := w.findVariableInfo(id.Name, scope); ok {
		vi.SetUpperType(want)
	}
}

func findOwnAttr(ct *types.ClassType, name string) (*types.Attribute, bool) {
	for _, a := range ct.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// walkProgram checks every class in program, in declaration order.
func (w *walker) walkProgram(program *ast.Program) {
	for _, decl := range program.Classes {
		ct, ok := w.state.Context.GetType(decl.Name)
		if !ok {
			continue
		}
		w.checkClass(decl, ct)
	}
}

// checkClass checks one class body. Attributes are declared into the class
// scope in a first pass, before any method body is checked, so every method
// sees every attribute regardless of declaration order — COOL gives
// attributes class-wide scope, unlike a `let`'s sequential shadowing.
func (w *walker) checkClass(decl *ast.ClassDecl, ct *types.ClassType) {
	w.currentClass = ct

	var classScope *Scope
	if w.buildScopes() {
		classScope = NewScope()
		w.state.ClassScopes[decl.Name] = classScope
		for _, feat := range decl.Features {
			attr, ok := feat.(*ast.AttrDecl)
			if !ok {
				continue
			}
			if a, ok := findOwnAttr(ct, attr.Name); ok && !classScope.IsLocal(attr.Name) {
				classScope.DefineVariable(attr.Name, a.Type)
			}
		}
	} else {
		classScope = w.state.ClassScopes[decl.Name]
	}

	for _, feat := range decl.Features {
		switch f := feat.(type) {
		case *ast.AttrDecl:
			w.checkAttrInit(f, classScope)
		case *ast.FuncDecl:
			w.checkFunc(f, ct, classScope)
		}
	}
}

func (w *walker) checkAttrInit(f *ast.AttrDecl, classScope *Scope) {
	if f.Init == nil {
		return
	}
	vi, ok := classScope.FindLocal(f.Name)
	initType := w.checkExpr(f.Init, classScope)
	if !ok {
		return
	}
	if w.inferMode() {
		vi.SetLowerType(initType)
	}
	if w.reportTypeErrors() {
		want := w.effectiveType(vi.Type)
		if !initType.ConformsTo(want) {
			w.state.AddError(newIncompatibleTypes(f.Init.Pos(),
				fmt.Sprintf("initializer for attribute %q has type %s, expected %s", f.Name, initType, want),
				want, initType))
		}
	}
}

func (w *walker) checkFunc(f *ast.FuncDecl, ct *types.ClassType, classScope *Scope) {
	m, ok := ct.GetMethod(f.Name)
	if !ok {
		// Cannot happen: the Builder defines every FuncDecl it sees.
		return
	}

	methodScope := w.enterScope(classScope)
	if w.buildScopes() {
		for _, p := range m.ParamInfos {
			methodScope.AddLocal(p)
		}
	}

	bodyType := w.checkExpr(f.Body, methodScope)

	if w.inferMode() {
		m.ReturnInfo.SetLowerType(bodyType)
	}
	if w.reportTypeErrors() {
		if types.IsSelfType(m.ReturnInfo.Type) {
			if !types.IsSelfType(bodyType) && !bodyType.ConformsTo(ct) {
				w.state.AddError(newIncompatibleTypes(f.Body.Pos(),
					fmt.Sprintf("method %q must return SELF_TYPE (or a subtype of %s), got %s", f.Name, ct.Name, bodyType),
					types.SelfType, bodyType))
			}
		} else {
			want := w.effectiveType(m.ReturnInfo.Type)
			got := bodyType
			if types.IsSelfType(got) {
				got = ct
			}
			if !got.ConformsTo(want) {
				w.state.AddError(newIncompatibleTypes(f.Body.Pos(),
					fmt.Sprintf("method %q returns %s, expected %s", f.Name, bodyType, want),
					want, bodyType))
			}
		}
	}
}

// checkExpr dispatches on the concrete expression type, assigns the result
// as the node's static type, and returns it for the caller's convenience.
func (w *walker) checkExpr(e ast.Expression, scope *Scope) types.Type {
	var result types.Type
	switch n := e.(type) {
	case *ast.IntegerLit:
		result = w.intType()
	case *ast.StringLit:
		result = w.stringType()
	case *ast.BoolLit:
		result = w.boolType()
	case *ast.Id:
		result = w.checkID(n, scope)
	case *ast.Assign:
		result = w.checkAssign(n, scope)
	case *ast.New:
		result = w.checkNew(n)
	case *ast.IsVoid:
		w.checkExpr(n.Expr, scope)
		result = w.boolType()
	case *ast.Complement:
		w.requireInt(n.Expr, scope)
		result = w.intType()
	case *ast.Not:
		w.requireBool(n.Expr, scope)
		result = w.boolType()
	case *ast.LessEqual:
		w.requireInt(n.Left, scope)
		w.requireInt(n.Right, scope)
		result = w.boolType()
	case *ast.Less:
		w.requireInt(n.Left, scope)
		w.requireInt(n.Right, scope)
		result = w.boolType()
	case *ast.Equal:
		result = w.checkEqual(n, scope)
	case *ast.Arithmetic:
		w.requireInt(n.Left, scope)
		w.requireInt(n.Right, scope)
		result = w.intType()
	case *ast.IfThenElse:
		result = w.checkIfThenElse(n, scope)
	case *ast.WhileLoop:
		result = w.checkWhileLoop(n, scope)
	case *ast.Block:
		result = w.checkBlock(n, scope)
	case *ast.LetIn:
		result = w.checkLetIn(n, scope)
	case *ast.CaseOf:
		result = w.checkCaseOf(n, scope)
	case *ast.FunctionCall:
		result = w.checkFunctionCall(n, scope)
	case *ast.MemberCall:
		result = w.checkMemberCall(n, scope)
	default:
		result = types.ErrorType
	}
	e.SetStaticType(result)
	return result
}

func (w *walker) checkID(n *ast.Id, scope *Scope) types.Type {
	if n.Name == "self" {
		return types.SelfType
	}
	if vi, ok := scope.FindVariable(n.Name); ok {
		return vi.Type
	}
	if vi, ok := w.resolveInheritedAttribute(w.currentClass, n.Name); ok {
		return vi.Type
	}
	if w.reportStructural() {
		w.state.AddError(newNameUnknown(n.Pos(), n.Name))
	}
	return types.ErrorType
}

func (w *walker) checkAssign(n *ast.Assign, scope *Scope) types.Type {
	if n.Name == "self" {
		if w.reportStructural() {
			w.state.AddError(newSelfAssignment(n.Pos()))
		}
		valType := w.checkExpr(n.Value, scope)
		if w.reportTypeErrors() && !types.IsSelfType(valType) && !valType.ConformsTo(w.currentClass) {
			w.state.AddError(newIncompatibleTypes(n.Pos(),
				fmt.Sprintf("cannot assign %s to self of type SELF_TYPE", valType), types.SelfType, valType))
		}
		return valType
	}

	vi, ok := scope.FindVariable(n.Name)
	if !ok {
		vi, ok = w.resolveInheritedAttribute(w.currentClass, n.Name)
	}
	if ok && vi.Inferred {
		w.constrainUpper(n.Value, scope, vi.Type)
	}
	valType := w.checkExpr(n.Value, scope)
	if !ok {
		if w.reportStructural() {
			w.state.AddError(newNameUnknown(n.Pos(), n.Name))
		}
		return valType
	}

	if w.inferMode() {
		vi.SetLowerType(valType)
	}
	if w.reportTypeErrors() {
		want := w.effectiveType(vi.Type)
		if !valType.ConformsTo(want) {
			w.state.AddError(newIncompatibleTypes(n.Pos(),
				fmt.Sprintf("cannot assign %s to %q of type %s", valType, n.Name, want), want, valType))
		}
	}
	return valType
}

func (w *walker) checkNew(n *ast.New) types.Type {
	if n.TypeName == "SELF_TYPE" {
		return types.SelfType
	}
	if w.buildScopes() {
		return resolveTypeName(w.state, n.TypeName, n.Pos())
	}
	return resolveTypeNameQuiet(w.state, n.TypeName)
}

func (w *walker) requireInt(e ast.Expression, scope *Scope) types.Type {
	w.constrainUpper(e, scope, w.intType())
	t := w.checkExpr(e, scope)
	if w.reportTypeErrors() && !t.Equals(w.intType()) && !types.IsErrorType(t) {
		w.state.AddError(newInvalidOperands(e.Pos(), fmt.Sprintf("expected Int, got %s", t)))
	}
	return t
}

func (w *walker) requireBool(e ast.Expression, scope *Scope) types.Type {
	w.constrainUpper(e, scope, w.boolType())
	t := w.checkExpr(e, scope)
	if w.reportTypeErrors() && !t.Equals(w.boolType()) && !types.IsErrorType(t) {
		w.state.AddError(newInvalidOperands(e.Pos(), fmt.Sprintf("expected Bool, got %s", t)))
	}
	return t
}

func (w *walker) checkEqual(n *ast.Equal, scope *Scope) types.Type {
	left := w.checkExpr(n.Left, scope)
	right := w.checkExpr(n.Right, scope)
	if w.reportTypeErrors() && (w.isPrimitive(left) || w.isPrimitive(right)) {
		if !left.Equals(right) && !types.IsErrorType(left) && !types.IsErrorType(right) {
			w.state.AddError(newInvalidOperands(n.Pos(),
				fmt.Sprintf("cannot compare %s with %s: primitive types must match exactly", left, right)))
		}
	}
	return w.boolType()
}

func (w *walker) checkIfThenElse(n *ast.IfThenElse, scope *Scope) types.Type {
	w.requireBool(n.Cond, scope)
	thenType := w.checkExpr(n.Then, scope)
	elseType := w.checkExpr(n.Else, scope)
	return types.TypeUnion(thenType, elseType)
}

func (w *walker) checkWhileLoop(n *ast.WhileLoop, scope *Scope) types.Type {
	w.requireBool(n.Cond, scope)
	w.checkExpr(n.Body, scope)
	return w.objectType()
}

func (w *walker) checkBlock(n *ast.Block, scope *Scope) types.Type {
	result := w.objectType()
	for _, e := range n.Exprs {
		result = w.checkExpr(e, scope)
	}
	return result
}

func (w *walker) checkLetIn(n *ast.LetIn, scope *Scope) types.Type {
	child := w.enterScope(scope)
	for i, b := range n.Bindings {
		var vi *types.VariableInfo
		if w.buildScopes() {
			typ := resolveTypeName(w.state, b.TypeName, b.Pos)
			vi = child.DefineVariable(b.Name, typ)
		} else {
			vi = child.LocalAt(i)
		}
		if b.Init != nil {
			initType := w.checkExpr(b.Init, child)
			if w.inferMode() {
				vi.SetLowerType(initType)
			}
			if w.reportTypeErrors() {
				want := w.effectiveType(vi.Type)
				if !initType.ConformsTo(want) {
					w.state.AddError(newIncompatibleTypes(b.Init.Pos(),
						fmt.Sprintf("initializer for %q has type %s, expected %s", b.Name, initType, want),
						want, initType))
				}
			}
		}
	}
	return w.checkExpr(n.Body, child)
}

func (w *walker) checkCaseOf(n *ast.CaseOf, scope *Scope) types.Type {
	w.checkExpr(n.Scrutinee, scope)

	var union types.Type
	for i, branch := range n.Branches {
		child := w.enterScope(scope)
		if w.buildScopes() {
			typ := resolveTypeName(w.state, branch.TypeName, branch.Pos)
			if types.IsSelfType(typ) {
				w.state.AddError(newInvalidParamType(branch.Pos, branch.Name))
				typ = types.ErrorType
			}
			child.DefineVariable(branch.Name, typ)
		}
		branchType := w.checkExpr(branch.Body, child)
		if i == 0 {
			union = branchType
		} else {
			union = types.TypeUnion(union, branchType)
		}
	}
	if union == nil {
		return types.ErrorType
	}
	return union
}

func (w *walker) checkFunctionCall(n *ast.FunctionCall, scope *Scope) types.Type {
	objType := w.checkExpr(n.Obj, scope)

	var owner *types.ClassType
	var resultSubst types.Type
	if n.StaticDispatch != "" {
		var target types.Type
		if w.buildScopes() {
			target = resolveTypeName(w.state, n.StaticDispatch, n.Pos())
		} else {
			target = resolveTypeNameQuiet(w.state, n.StaticDispatch)
		}
		if w.reportTypeErrors() && !objType.ConformsTo(target) {
			w.state.AddError(newInvalidOperands(n.Pos(),
				fmt.Sprintf("static dispatch type %s is not an ancestor of %s", target, objType)))
		}
		owner = w.concreteClassOf(target)
		resultSubst = target
	} else {
		owner = w.concreteClassOf(objType)
		resultSubst = objType
	}

	return w.dispatch(owner, n.Method, n.Args, scope, resultSubst, n.Pos())
}

func (w *walker) checkMemberCall(n *ast.MemberCall, scope *Scope) types.Type {
	return w.dispatch(w.currentClass, n.Method, n.Args, scope, w.currentClass, n.Pos())
}

// dispatch resolves methodName on owner, checks args against its parameters,
// and returns its result type — substituting resultSubst for SELF_TYPE
// returns, per the call-site rule grounded in the original analyzer's
// FunctionCall/MemberCall handling (SPEC_FULL.md §4.4 / DESIGN.md).
func (w *walker) dispatch(owner *types.ClassType, methodName string, args []ast.Expression, scope *Scope, resultSubst types.Type, pos token.Position) types.Type {
	if owner == nil {
		for _, a := range args {
			w.checkExpr(a, scope)
		}
		return types.ErrorType
	}
	m, ok := owner.GetMethod(methodName)
	if !ok {
		for _, a := range args {
			w.checkExpr(a, scope)
		}
		if w.reportStructural() {
			w.state.AddError(newNameUnknown(pos, methodName))
		}
		return types.ErrorType
	}

	if len(args) != len(m.ParamTypes) {
		for _, a := range args {
			w.checkExpr(a, scope)
		}
		if w.reportStructural() {
			w.state.AddError(newMethodArity(pos, methodName, len(m.ParamTypes), len(args)))
		}
	} else {
		for i, a := range args {
			pinfo := m.ParamInfos[i]
			if pinfo.Inferred {
				w.constrainUpper(a, scope, pinfo.Type)
			}
			argType := w.checkExpr(a, scope)
			if w.inferMode() {
				pinfo.SetLowerType(argType)
			}
			if w.reportTypeErrors() {
				want := w.effectiveType(pinfo.Type)
				if !argType.ConformsTo(want) {
					w.state.AddError(newIncompatibleTypes(a.Pos(),
						fmt.Sprintf("argument %d to %q expects %s, got %s", i+1, methodName, want, argType),
						want, argType))
				}
			}
		}
	}

	retType := m.ReturnInfo.Type
	if types.IsSelfType(retType) {
		return resultSubst
	}
	return retType
}
