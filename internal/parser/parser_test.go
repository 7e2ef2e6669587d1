package parser

import (
	"testing"

	"github.com/cwbudde/coolc/internal/ast"
)

func parseOk(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src)
	program, errs := p.ParseProgram()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return program
}

func TestParseMinimalClass(t *testing.T) {
	program := parseOk(t, `class Main { main() : Object { 1 }; };`)
	if len(program.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(program.Classes))
	}
	class := program.Classes[0]
	if class.Name != "Main" || class.HasParent {
		t.Fatalf("unexpected class header: %+v", class)
	}
	if len(class.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(class.Features))
	}
	method, ok := class.Features[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected a FuncDecl, got %T", class.Features[0])
	}
	if method.Name != "main" || method.ReturnTypeName != "Object" {
		t.Fatalf("unexpected method header: %+v", method)
	}
	if _, ok := method.Body.(*ast.IntegerLit); !ok {
		t.Fatalf("expected an IntegerLit body, got %T", method.Body)
	}
}

func TestParseInheritsAndAttribute(t *testing.T) {
	program := parseOk(t, `
		class Counter inherits IO {
			count : Int <- 0;
			bump() : Int { count };
		};`)
	class := program.Classes[0]
	if !class.HasParent || class.Parent != "IO" {
		t.Fatalf("expected inherits IO, got %+v", class)
	}
	attr, ok := class.Features[0].(*ast.AttrDecl)
	if !ok {
		t.Fatalf("expected an AttrDecl, got %T", class.Features[0])
	}
	if attr.Name != "count" || attr.TypeName != "Int" {
		t.Fatalf("unexpected attribute header: %+v", attr)
	}
	lit, ok := attr.Init.(*ast.IntegerLit)
	if !ok || lit.Value != 0 {
		t.Fatalf("expected init 0, got %+v", attr.Init)
	}
}

func TestParseMultipleFormals(t *testing.T) {
	program := parseOk(t, `class Main { add(a : Int, b : Int) : Int { a + b }; };`)
	method := program.Classes[0].Features[0].(*ast.FuncDecl)
	if len(method.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(method.Params))
	}
	if method.Params[0].Name != "a" || method.Params[1].Name != "b" {
		t.Fatalf("unexpected params: %+v", method.Params)
	}
}

func TestArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	program := parseOk(t, `class Main { main() : Int { 1 + 2 * 3 } ; };`)
	body := program.Classes[0].Features[0].(*ast.FuncDecl).Body
	add, ok := body.(*ast.Arithmetic)
	if !ok || add.Op != ast.ArithAdd {
		t.Fatalf("expected top-level +, got %+v", body)
	}
	mul, ok := add.Right.(*ast.Arithmetic)
	if !ok || mul.Op != ast.ArithMul {
		t.Fatalf("expected right side to be a *, got %+v", add.Right)
	}
}

func TestIsVoidBindsTighterThanProduct(t *testing.T) {
	// isvoid a * b must parse as (isvoid a) * b.
	program := parseOk(t, `class Main { main() : Bool { isvoid a * b }; };`)
	body := program.Classes[0].Features[0].(*ast.FuncDecl).Body
	mul, ok := body.(*ast.Arithmetic)
	if !ok || mul.Op != ast.ArithMul {
		t.Fatalf("expected a top-level *, got %+v", body)
	}
	if _, ok := mul.Left.(*ast.IsVoid); !ok {
		t.Fatalf("expected isvoid on the left, got %+v", mul.Left)
	}
}

func TestNotBindsLooserThanComparison(t *testing.T) {
	// not a <= b must parse as not (a <= b).
	program := parseOk(t, `class Main { main() : Bool { not a <= b }; };`)
	body := program.Classes[0].Features[0].(*ast.FuncDecl).Body
	not, ok := body.(*ast.Not)
	if !ok {
		t.Fatalf("expected a top-level Not, got %+v", body)
	}
	if _, ok := not.Expr.(*ast.LessEqual); !ok {
		t.Fatalf("expected <= inside not, got %+v", not.Expr)
	}
}

func TestAssignBindsLowest(t *testing.T) {
	program := parseOk(t, `class Main { main() : Object { x <- 1 + 2 }; };`)
	body := program.Classes[0].Features[0].(*ast.FuncDecl).Body
	assign, ok := body.(*ast.Assign)
	if !ok || assign.Name != "x" {
		t.Fatalf("expected an Assign to x, got %+v", body)
	}
	if _, ok := assign.Value.(*ast.Arithmetic); !ok {
		t.Fatalf("expected the whole sum as the assigned value, got %+v", assign.Value)
	}
}

func TestDispatchAndStaticDispatch(t *testing.T) {
	program := parseOk(t, `class Main { main() : Object { a.foo(1).bar()@Object.baz() }; };`)
	body := program.Classes[0].Features[0].(*ast.FuncDecl).Body
	outer, ok := body.(*ast.FunctionCall)
	if !ok || outer.Method != "baz" || outer.StaticDispatch != "Object" {
		t.Fatalf("expected outer static dispatch to baz@Object, got %+v", body)
	}
	mid, ok := outer.Obj.(*ast.FunctionCall)
	if !ok || mid.Method != "bar" {
		t.Fatalf("expected a .bar() dispatch, got %+v", outer.Obj)
	}
	inner, ok := mid.Obj.(*ast.FunctionCall)
	if !ok || inner.Method != "foo" || len(inner.Args) != 1 {
		t.Fatalf("expected a .foo(1) dispatch, got %+v", mid.Obj)
	}
}

func TestMemberCallImplicitSelf(t *testing.T) {
	program := parseOk(t, `class Main { main() : Object { helper(1, 2) }; };`)
	call, ok := program.Classes[0].Features[0].(*ast.FuncDecl).Body.(*ast.MemberCall)
	if !ok || call.Method != "helper" || len(call.Args) != 2 {
		t.Fatalf("expected helper(1, 2) member call, got %+v", program.Classes[0].Features[0])
	}
}

func TestIfWhileBlockLetCase(t *testing.T) {
	program := parseOk(t, `
		class Main {
			main() : Object {
				{
					if true then 1 else 2 fi;
					while false loop 1 pool;
					let x : Int <- 1, y : Int in x + y;
					case x of
						a : Int => 1;
						b : String => 2;
					esac;
				}
			};
		};`)
	block, ok := program.Classes[0].Features[0].(*ast.FuncDecl).Body.(*ast.Block)
	if !ok || len(block.Exprs) != 4 {
		t.Fatalf("expected a 4-expression block, got %+v", program.Classes[0].Features[0])
	}
	if _, ok := block.Exprs[0].(*ast.IfThenElse); !ok {
		t.Errorf("expected IfThenElse, got %T", block.Exprs[0])
	}
	if _, ok := block.Exprs[1].(*ast.WhileLoop); !ok {
		t.Errorf("expected WhileLoop, got %T", block.Exprs[1])
	}
	letIn, ok := block.Exprs[2].(*ast.LetIn)
	if !ok || len(letIn.Bindings) != 2 {
		t.Errorf("expected a 2-binding LetIn, got %+v", block.Exprs[2])
	}
	caseOf, ok := block.Exprs[3].(*ast.CaseOf)
	if !ok || len(caseOf.Branches) != 2 {
		t.Errorf("expected a 2-branch CaseOf, got %+v", block.Exprs[3])
	}
}

func TestNewAndParenAndUnary(t *testing.T) {
	program := parseOk(t, `class Main { main() : Object { ~(1 + (new Main).foo()) }; };`)
	complement, ok := program.Classes[0].Features[0].(*ast.FuncDecl).Body.(*ast.Complement)
	if !ok {
		t.Fatalf("expected a top-level Complement, got %+v", program.Classes[0].Features[0])
	}
	add, ok := complement.Expr.(*ast.Arithmetic)
	if !ok || add.Op != ast.ArithAdd {
		t.Fatalf("expected a + inside the complement, got %+v", complement.Expr)
	}
	call, ok := add.Right.(*ast.FunctionCall)
	if !ok || call.Method != "foo" {
		t.Fatalf("expected a .foo() dispatch, got %+v", add.Right)
	}
	if _, ok := call.Obj.(*ast.New); !ok {
		t.Fatalf("expected `new Main` as the dispatch receiver, got %+v", call.Obj)
	}
}

func TestMissingFiProducesParseError(t *testing.T) {
	p := New(`class Main { main() : Object { if true then 1 else 2 }; };`)
	_, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected a parse error for the missing 'fi'")
	}
}

func TestUnknownClassStartResyncs(t *testing.T) {
	// A garbled first class should not prevent the second, well-formed one
	// from being parsed.
	p := New(`
		garbage tokens here ;
		class Main { main() : Object { 1 }; };`)
	program, errs := p.ParseProgram()
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error from the garbled input")
	}
	found := false
	for _, c := range program.Classes {
		if c.Name == "Main" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the parser to recover and still find class Main")
	}
}
