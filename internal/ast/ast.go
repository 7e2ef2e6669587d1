// Package ast defines the Abstract Syntax Tree node types for COOL.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/coolc/internal/token"
	"github.com/cwbudde/coolc/internal/types"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value and so carries a
// synthesized static_type, written by the Checker and re-written by the
// Inferer.
type Expression interface {
	Node
	expressionNode()
	StaticType() types.Type
	SetStaticType(t types.Type)
}

// Feature is a class member: an AttrDecl or a FuncDecl.
type Feature interface {
	Node
	featureNode()
}

// baseExpr factors the Token/StaticType bookkeeping shared by every
// expression node.
type baseExpr struct {
	Token token.Token
	Typ   types.Type
}

func (b *baseExpr) TokenLiteral() string    { return b.Token.Literal }
func (b *baseExpr) Pos() token.Position     { return b.Token.Pos }
func (b *baseExpr) StaticType() types.Type  { return b.Typ }
func (b *baseExpr) SetStaticType(t types.Type) { b.Typ = t }
func (b *baseExpr) expressionNode()         {}

// Program is the root node: an ordered list of class declarations.
type Program struct {
	Classes []*ClassDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Classes) > 0 {
		return p.Classes[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, c := range p.Classes {
		out.WriteString(c.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Classes) > 0 {
		return p.Classes[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// ClassDecl is `class Name [inherits Parent] { features };`.
type ClassDecl struct {
	Token     token.Token
	Name      string
	Parent    string // "" when HasParent is false
	HasParent bool
	Features  []Feature
}

func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(c.Name)
	if c.HasParent {
		out.WriteString(" inherits ")
		out.WriteString(c.Parent)
	}
	out.WriteString(" {\n")
	for _, f := range c.Features {
		out.WriteString("  ")
		out.WriteString(f.String())
		out.WriteString(";\n")
	}
	out.WriteString("};")
	return out.String()
}

// Param is one formal parameter of a FuncDecl: `name : TypeName`.
type Param struct {
	Name     string
	TypeName string
	Pos      token.Position
}

// AttrDecl is `name : TypeName [<- expr]`.
type AttrDecl struct {
	Token    token.Token
	Name     string
	TypeName string
	Init     Expression // nil when there is no initializer
}

func (a *AttrDecl) TokenLiteral() string { return a.Token.Literal }
func (a *AttrDecl) Pos() token.Position  { return a.Token.Pos }
func (a *AttrDecl) featureNode()         {}
func (a *AttrDecl) String() string {
	s := fmt.Sprintf("%s : %s", a.Name, a.TypeName)
	if a.Init != nil {
		s += " <- " + a.Init.String()
	}
	return s
}

// FuncDecl is `name(params) : ReturnTypeName { body }`.
type FuncDecl struct {
	Token          token.Token
	Name           string
	Params         []Param
	ReturnTypeName string
	Body           Expression
}

func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FuncDecl) featureNode()         {}
func (f *FuncDecl) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + " : " + p.TypeName
	}
	return fmt.Sprintf("%s(%s) : %s { %s }", f.Name, strings.Join(params, ", "), f.ReturnTypeName, f.Body.String())
}
