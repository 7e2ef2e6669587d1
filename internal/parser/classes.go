package parser

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/token"
)

// parseClass parses `class TYPE [inherits TYPE] { feature* }`. curToken is
// CLASS on entry; on return curToken is the closing RBRACE.
func (p *Parser) parseClass() *ast.ClassDecl {
	class := &ast.ClassDecl{Token: p.curToken}

	if !p.expectPeek(token.IDENT_TYPE) {
		p.synchronize(token.SEMI, token.EOF)
		return nil
	}
	class.Name = p.curToken.Literal

	if p.peekTokenIs(token.INHERITS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT_TYPE) {
			p.synchronize(token.SEMI, token.EOF)
			return nil
		}
		class.HasParent = true
		class.Parent = p.curToken.Literal
	}

	if !p.expectPeek(token.LBRACE) {
		p.synchronize(token.SEMI, token.EOF)
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		feature := p.parseFeature()
		if feature != nil {
			class.Features = append(class.Features, feature)
		}
		if !p.expectPeek(token.SEMI) {
			p.synchronize(token.SEMI, token.RBRACE, token.EOF)
			if p.curTokenIs(token.SEMI) {
				continue
			}
			break
		}
	}

	if !p.curTokenIs(token.RBRACE) && !p.expectPeek(token.RBRACE) {
		p.synchronize(token.SEMI, token.EOF)
	}

	return class
}

// parseFeature parses one class member. curToken is the feature's leading
// identifier on entry. A trailing `(` distinguishes a method from an
// attribute.
func (p *Parser) parseFeature() ast.Feature {
	if !p.curTokenIs(token.IDENT_OBJECT) {
		p.addError(p.curToken.Pos, ErrExpectedIdent, "expected a feature name, got %s", p.curToken.Type)
		return nil
	}

	if p.peekTokenIs(token.LPAREN) {
		return p.parseMethod()
	}
	return p.parseAttribute()
}

func (p *Parser) parseMethod() *ast.FuncDecl {
	method := &ast.FuncDecl{Token: p.curToken, Name: p.curToken.Literal}

	p.nextToken() // consume name, curToken is now LPAREN
	method.Params = p.parseFormals()

	if !p.expectPeek(token.COLON) {
		return method
	}
	if !p.expectPeek(token.IDENT_TYPE) {
		return method
	}
	method.ReturnTypeName = p.curToken.Literal

	if !p.expectPeek(token.LBRACE) {
		return method
	}
	p.nextToken()
	method.Body = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACE) {
		p.addError(p.peekToken.Pos, ErrMissingRBrace, "expected '}' to close method body")
	}
	return method
}

func (p *Parser) parseFormals() []ast.Param {
	var params []ast.Param
	// curToken is LPAREN on entry.
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	params = append(params, p.parseFormal())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseFormal())
	}

	if !p.expectPeek(token.RPAREN) {
		p.addError(p.peekToken.Pos, ErrMissingRParen, "expected ')' to close parameter list")
	}
	return params
}

func (p *Parser) parseFormal() ast.Param {
	param := ast.Param{Pos: p.curToken.Pos}
	if !p.curTokenIs(token.IDENT_OBJECT) {
		p.addError(p.curToken.Pos, ErrExpectedIdent, "expected a parameter name, got %s", p.curToken.Type)
		return param
	}
	param.Name = p.curToken.Literal

	if !p.expectPeek(token.COLON) {
		return param
	}
	if !p.expectPeek(token.IDENT_TYPE) {
		return param
	}
	param.TypeName = p.curToken.Literal
	return param
}

func (p *Parser) parseAttribute() *ast.AttrDecl {
	attr := &ast.AttrDecl{Token: p.curToken, Name: p.curToken.Literal}

	if !p.expectPeek(token.COLON) {
		return attr
	}
	if !p.expectPeek(token.IDENT_TYPE) {
		return attr
	}
	attr.TypeName = p.curToken.Literal

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		attr.Init = p.parseExpression(LOWEST)
	}
	return attr
}
