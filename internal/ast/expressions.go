package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/coolc/internal/token"
)

// IfThenElse is `if cond then thenBody else elseBody fi`.
type IfThenElse struct {
	baseExpr
	Cond, Then, Else Expression
}

func (n *IfThenElse) String() string {
	return fmt.Sprintf("if %s then %s else %s fi", n.Cond, n.Then, n.Else)
}

// WhileLoop is `while cond loop body pool`.
type WhileLoop struct {
	baseExpr
	Cond, Body Expression
}

func (n *WhileLoop) String() string {
	return fmt.Sprintf("while %s loop %s pool", n.Cond, n.Body)
}

// Block is `{ expr1; expr2; ...; exprN; }`; its value is the last
// expression's value.
type Block struct {
	baseExpr
	Exprs []Expression
}

func (n *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, e := range n.Exprs {
		out.WriteString(e.String())
		out.WriteString("; ")
	}
	out.WriteString("}")
	return out.String()
}

// Binding is one `let` clause: `name : TypeName [<- init]`.
type Binding struct {
	Name     string
	TypeName string
	Init     Expression // nil when there is no initializer
	Pos      token.Position
}

// LetIn is `let b1, b2, ... in body`.
type LetIn struct {
	baseExpr
	Bindings []Binding
	Body     Expression
}

func (n *LetIn) String() string {
	parts := make([]string, len(n.Bindings))
	for i, b := range n.Bindings {
		s := b.Name + " : " + b.TypeName
		if b.Init != nil {
			s += " <- " + b.Init.String()
		}
		parts[i] = s
	}
	return fmt.Sprintf("let %s in %s", strings.Join(parts, ", "), n.Body.String())
}

// CaseBranch is one `case` arm: `name : TypeName => body`.
type CaseBranch struct {
	Name     string
	TypeName string
	Body     Expression
	Pos      token.Position
}

// CaseOf is `case expr of branch1; branch2; ...; esac`.
type CaseOf struct {
	baseExpr
	Scrutinee Expression
	Branches  []CaseBranch
}

func (n *CaseOf) String() string {
	var out bytes.Buffer
	out.WriteString("case ")
	out.WriteString(n.Scrutinee.String())
	out.WriteString(" of ")
	for _, b := range n.Branches {
		out.WriteString(fmt.Sprintf("%s : %s => %s; ", b.Name, b.TypeName, b.Body.String()))
	}
	out.WriteString("esac")
	return out.String()
}

// Assign is `name <- expr`.
type Assign struct {
	baseExpr
	Name  string
	Value Expression
}

func (n *Assign) String() string { return fmt.Sprintf("(%s <- %s)", n.Name, n.Value.String()) }

// FunctionCall is `obj[@StaticType].method(args)`.
type FunctionCall struct {
	baseExpr
	Obj           Expression
	StaticDispatch string // "" when no `@Type` was given
	Method        string
	Args          []Expression
}

func (n *FunctionCall) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	disp := ""
	if n.StaticDispatch != "" {
		disp = "@" + n.StaticDispatch
	}
	return fmt.Sprintf("%s%s.%s(%s)", n.Obj.String(), disp, n.Method, strings.Join(args, ", "))
}

// MemberCall is `method(args)`, dispatched on the implicit `self`.
type MemberCall struct {
	baseExpr
	Method string
	Args   []Expression
}

func (n *MemberCall) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Method, strings.Join(args, ", "))
}

// New is `new TypeName`.
type New struct {
	baseExpr
	TypeName string
}

func (n *New) String() string { return "new " + n.TypeName }

// IsVoid is `isvoid expr`.
type IsVoid struct {
	baseExpr
	Expr Expression
}

func (n *IsVoid) String() string { return "isvoid " + n.Expr.String() }

// Complement is `~expr` (integer negation).
type Complement struct {
	baseExpr
	Expr Expression
}

func (n *Complement) String() string { return "~" + n.Expr.String() }

// Not is `not expr` (boolean negation).
type Not struct {
	baseExpr
	Expr Expression
}

func (n *Not) String() string { return "not " + n.Expr.String() }

// LessEqual is `left <= right`.
type LessEqual struct {
	baseExpr
	Left, Right Expression
}

func (n *LessEqual) String() string { return fmt.Sprintf("(%s <= %s)", n.Left, n.Right) }

// Less is `left < right`.
type Less struct {
	baseExpr
	Left, Right Expression
}

func (n *Less) String() string { return fmt.Sprintf("(%s < %s)", n.Left, n.Right) }

// Equal is `left = right`.
type Equal struct {
	baseExpr
	Left, Right Expression
}

func (n *Equal) String() string { return fmt.Sprintf("(%s = %s)", n.Left, n.Right) }

// ArithOp identifies which of COOL's four arithmetic operators an
// Arithmetic node applies.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
	ArithMul
	ArithDiv
)

func (op ArithOp) String() string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	case ArithDiv:
		return "/"
	default:
		return "?"
	}
}

// Arithmetic is `left op right` for op in {+, -, *, /}.
type Arithmetic struct {
	baseExpr
	Op          ArithOp
	Left, Right Expression
}

func (n *Arithmetic) String() string { return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right) }

// IntegerLit is an integer literal.
type IntegerLit struct {
	baseExpr
	Value int64
}

func (n *IntegerLit) String() string { return strconv.FormatInt(n.Value, 10) }

// StringLit is a string literal.
type StringLit struct {
	baseExpr
	Value string
}

func (n *StringLit) String() string { return strconv.Quote(n.Value) }

// BoolLit is a boolean literal.
type BoolLit struct {
	baseExpr
	Value bool
}

func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// Id is a bare identifier reference.
type Id struct {
	baseExpr
	Name string
}

func (n *Id) String() string { return n.Name }
