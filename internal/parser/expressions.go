package parser

import (
	"strconv"

	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/token"
)

// Precedence levels, lowest to highest, matching COOL's fixed operator
// table: assignment binds loosest, dispatch (`.`/`@`) binds tightest.
const (
	LOWEST = iota
	NOT_PREC
	COMPARE
	SUM
	PRODUCT
	ISVOID_PREC
	NEG_PREC
	DISPATCH
)

var precedences = map[token.Type]int{
	token.PLUS:  SUM,
	token.MINUS: SUM,
	token.STAR:  PRODUCT,
	token.SLASH: PRODUCT,
	token.LT:    COMPARE,
	token.LE:    COMPARE,
	token.EQ:    COMPARE,
	token.DOT:   DISPATCH,
	token.AT:    DISPATCH,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt driver: it finds a prefix parser for
// curToken, then keeps folding in infix operators while the next
// operator's precedence outranks the level this call was entered at.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError(p.curToken.Pos, ErrNoPrefixParse, "no expression can start with %s", p.curToken.Type)
		return nil
	}
	left := prefix()

	for precedence < p.peekPrecedence() {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIntegerLit() ast.Expression {
	lit := &ast.IntegerLit{}
	lit.Token = p.curToken
	v, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(p.curToken.Pos, ErrUnexpectedToken, "invalid integer literal %q", p.curToken.Literal)
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLit() ast.Expression {
	lit := &ast.StringLit{Value: p.curToken.Literal}
	lit.Token = p.curToken
	return lit
}

func (p *Parser) parseBoolLit() ast.Expression {
	lit := &ast.BoolLit{Value: p.curTokenIs(token.TRUE)}
	lit.Token = p.curToken
	return lit
}

// parseIdentOrAssignOrCall handles every production that starts with a
// lowercase-leading identifier: a bare variable reference, `name <- expr`,
// or an implicit-self dispatch `name(args)`.
func (p *Parser) parseIdentOrAssignOrCall() ast.Expression {
	nameTok := p.curToken
	name := p.curToken.Literal

	if p.peekTokenIs(token.ASSIGN) {
		assign := &ast.Assign{Name: name}
		assign.Token = nameTok
		p.nextToken() // consume name -> curToken ASSIGN
		p.nextToken() // consume ASSIGN -> curToken first token of value
		assign.Value = p.parseExpression(LOWEST)
		return assign
	}

	if p.peekTokenIs(token.LPAREN) {
		call := &ast.MemberCall{Method: name}
		call.Token = nameTok
		p.nextToken() // curToken LPAREN
		call.Args = p.parseArgs()
		return call
	}

	id := &ast.Id{Name: name}
	id.Token = nameTok
	return id
}

// parseArgs parses a parenthesized, comma-separated argument list. curToken
// is LPAREN on entry; on return curToken is RPAREN.
func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(token.RPAREN) {
		p.addError(p.peekToken.Pos, ErrMissingRParen, "expected ')' to close argument list")
	}
	return args
}

func (p *Parser) parseNot() ast.Expression {
	n := &ast.Not{}
	n.Token = p.curToken
	p.nextToken()
	n.Expr = p.parseExpression(NOT_PREC)
	return n
}

func (p *Parser) parseComplement() ast.Expression {
	n := &ast.Complement{}
	n.Token = p.curToken
	p.nextToken()
	n.Expr = p.parseExpression(NEG_PREC)
	return n
}

func (p *Parser) parseIsVoid() ast.Expression {
	n := &ast.IsVoid{}
	n.Token = p.curToken
	p.nextToken()
	n.Expr = p.parseExpression(ISVOID_PREC)
	return n
}

func (p *Parser) parseNew() ast.Expression {
	n := &ast.New{}
	n.Token = p.curToken
	if !p.expectPeek(token.IDENT_TYPE) {
		return n
	}
	n.TypeName = p.curToken.Literal
	return n
}

func (p *Parser) parseGrouped() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		p.addError(p.peekToken.Pos, ErrMissingRParen, "expected ')' to close grouped expression")
	}
	return expr
}

func (p *Parser) parseIf() ast.Expression {
	n := &ast.IfThenElse{}
	n.Token = p.curToken

	p.nextToken()
	n.Cond = p.parseExpression(LOWEST)

	if !p.expectPeek(token.THEN) {
		return n
	}
	p.nextToken()
	n.Then = p.parseExpression(LOWEST)

	if !p.expectPeek(token.ELSE) {
		return n
	}
	p.nextToken()
	n.Else = p.parseExpression(LOWEST)

	if !p.expectPeek(token.FI) {
		p.addError(p.peekToken.Pos, ErrMissingKeyword, "expected 'fi' to close if expression")
	}
	return n
}

func (p *Parser) parseWhile() ast.Expression {
	n := &ast.WhileLoop{}
	n.Token = p.curToken

	p.nextToken()
	n.Cond = p.parseExpression(LOWEST)

	if !p.expectPeek(token.LOOP) {
		return n
	}
	p.nextToken()
	n.Body = p.parseExpression(LOWEST)

	if !p.expectPeek(token.POOL) {
		p.addError(p.peekToken.Pos, ErrMissingKeyword, "expected 'pool' to close while loop")
	}
	return n
}

func (p *Parser) parseBlock() ast.Expression {
	n := &ast.Block{}
	n.Token = p.curToken

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr != nil {
			n.Exprs = append(n.Exprs, expr)
		}
		if !p.expectPeek(token.SEMI) {
			p.addError(p.peekToken.Pos, ErrMissingSemi, "expected ';' after block expression")
			p.synchronize(token.SEMI, token.RBRACE, token.EOF)
			if p.curTokenIs(token.SEMI) {
				continue
			}
			break
		}
	}

	if len(n.Exprs) == 0 {
		p.addError(n.Token.Pos, ErrUnexpectedToken, "a block must contain at least one expression")
	}

	if !p.curTokenIs(token.RBRACE) && !p.expectPeek(token.RBRACE) {
		p.addError(p.peekToken.Pos, ErrMissingRBrace, "expected '}' to close block")
	}
	return n
}

func (p *Parser) parseLet() ast.Expression {
	n := &ast.LetIn{}
	n.Token = p.curToken

	p.nextToken()
	n.Bindings = append(n.Bindings, p.parseBinding())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		n.Bindings = append(n.Bindings, p.parseBinding())
	}

	if !p.expectPeek(token.IN) {
		return n
	}
	p.nextToken()
	n.Body = p.parseExpression(LOWEST)
	return n
}

func (p *Parser) parseBinding() ast.Binding {
	b := ast.Binding{Pos: p.curToken.Pos}
	if !p.curTokenIs(token.IDENT_OBJECT) {
		p.addError(p.curToken.Pos, ErrExpectedIdent, "expected a binding name, got %s", p.curToken.Type)
		return b
	}
	b.Name = p.curToken.Literal

	if !p.expectPeek(token.COLON) {
		return b
	}
	if !p.expectPeek(token.IDENT_TYPE) {
		return b
	}
	b.TypeName = p.curToken.Literal

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		b.Init = p.parseExpression(LOWEST)
	}
	return b
}

func (p *Parser) parseCase() ast.Expression {
	n := &ast.CaseOf{}
	n.Token = p.curToken

	p.nextToken()
	n.Scrutinee = p.parseExpression(LOWEST)

	if !p.expectPeek(token.OF) {
		return n
	}

	for !p.peekTokenIs(token.ESAC) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		n.Branches = append(n.Branches, p.parseCaseBranch())
		if !p.expectPeek(token.SEMI) {
			p.addError(p.peekToken.Pos, ErrMissingSemi, "expected ';' after case branch")
			p.synchronize(token.SEMI, token.ESAC, token.EOF)
			if p.curTokenIs(token.SEMI) {
				continue
			}
			break
		}
	}

	if len(n.Branches) == 0 {
		p.addError(n.Token.Pos, ErrUnexpectedToken, "a case expression must have at least one branch")
	}

	if !p.curTokenIs(token.ESAC) && !p.expectPeek(token.ESAC) {
		p.addError(p.peekToken.Pos, ErrMissingKeyword, "expected 'esac' to close case expression")
	}
	return n
}

func (p *Parser) parseCaseBranch() ast.CaseBranch {
	branch := ast.CaseBranch{Pos: p.curToken.Pos}
	if !p.curTokenIs(token.IDENT_OBJECT) {
		p.addError(p.curToken.Pos, ErrExpectedIdent, "expected a case branch variable, got %s", p.curToken.Type)
		return branch
	}
	branch.Name = p.curToken.Literal

	if !p.expectPeek(token.COLON) {
		return branch
	}
	if !p.expectPeek(token.IDENT_TYPE) {
		return branch
	}
	branch.TypeName = p.curToken.Literal

	if !p.expectPeek(token.DARROW) {
		return branch
	}
	p.nextToken()
	branch.Body = p.parseExpression(LOWEST)
	return branch
}

func (p *Parser) parseArithmetic(left ast.Expression) ast.Expression {
	n := &ast.Arithmetic{Left: left}
	n.Token = p.curToken
	switch p.curToken.Type {
	case token.PLUS:
		n.Op = ast.ArithAdd
	case token.MINUS:
		n.Op = ast.ArithSub
	case token.STAR:
		n.Op = ast.ArithMul
	case token.SLASH:
		n.Op = ast.ArithDiv
	}
	prec := precedences[p.curToken.Type]
	p.nextToken()
	n.Right = p.parseExpression(prec)
	return n
}

func (p *Parser) parseComparison(left ast.Expression) ast.Expression {
	op := p.curToken
	prec := precedences[op.Type]
	p.nextToken()
	right := p.parseExpression(prec)

	switch op.Type {
	case token.LT:
		n := &ast.Less{Left: left, Right: right}
		n.Token = op
		return n
	case token.LE:
		n := &ast.LessEqual{Left: left, Right: right}
		n.Token = op
		return n
	default:
		n := &ast.Equal{Left: left, Right: right}
		n.Token = op
		return n
	}
}

// parseDispatch handles `expr.method(args)`. curToken is DOT on entry.
func (p *Parser) parseDispatch(left ast.Expression) ast.Expression {
	call := &ast.FunctionCall{Obj: left}
	call.Token = p.curToken

	if !p.expectPeek(token.IDENT_OBJECT) {
		return call
	}
	call.Method = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return call
	}
	call.Args = p.parseArgs()
	return call
}

// parseStaticDispatch handles `expr@Type.method(args)`. curToken is AT on
// entry.
func (p *Parser) parseStaticDispatch(left ast.Expression) ast.Expression {
	call := &ast.FunctionCall{Obj: left}
	call.Token = p.curToken

	if !p.expectPeek(token.IDENT_TYPE) {
		return call
	}
	call.StaticDispatch = p.curToken.Literal

	if !p.expectPeek(token.DOT) {
		return call
	}
	if !p.expectPeek(token.IDENT_OBJECT) {
		return call
	}
	call.Method = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return call
	}
	call.Args = p.parseArgs()
	return call
}
