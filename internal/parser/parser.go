// Package parser turns a COOL token stream into an internal/ast.Program.
//
// The design is grounded on the teacher's Pratt parser (prefix/infix
// parse-function maps keyed by token type, a precedence table, two-token
// lookahead, expectPeek-style mandatory consumption with error recording)
// but scoped down to COOL's much smaller grammar: no units, no
// speculative-backtracking ParserState snapshots, no block-context stack —
// COOL's expression grammar never requires look-ahead deep enough to need
// them.
package parser

import (
	"github.com/cwbudde/coolc/internal/ast"
	"github.com/cwbudde/coolc/internal/lexer"
	"github.com/cwbudde/coolc/internal/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes tokens from a Lexer and builds an ast.Program, collecting
// every syntax error it finds instead of stopping at the first one.
type Parser struct {
	lex *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []ParseError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over the given source text.
func New(input string) *Parser {
	p := &Parser{lex: lexer.New(input)}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.INT_LIT:      p.parseIntegerLit,
		token.STRING_LIT:   p.parseStringLit,
		token.TRUE:         p.parseBoolLit,
		token.FALSE:        p.parseBoolLit,
		token.IDENT_OBJECT: p.parseIdentOrAssignOrCall,
		token.NOT:          p.parseNot,
		token.TILDE:        p.parseComplement,
		token.ISVOID:       p.parseIsVoid,
		token.NEW:          p.parseNew,
		token.LPAREN:       p.parseGrouped,
		token.IF:           p.parseIf,
		token.WHILE:        p.parseWhile,
		token.LBRACE:       p.parseBlock,
		token.LET:          p.parseLet,
		token.CASE:         p.parseCase,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:  p.parseArithmetic,
		token.MINUS: p.parseArithmetic,
		token.STAR:  p.parseArithmetic,
		token.SLASH: p.parseArithmetic,
		token.LT:    p.parseComparison,
		token.LE:    p.parseComparison,
		token.EQ:    p.parseComparison,
		token.DOT:   p.parseDispatch,
		token.AT:    p.parseStaticDispatch,
	}

	// prime curToken/peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every syntax error collected so far.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(pos token.Position, code, format string, args ...interface{}) {
	p.errors = append(p.errors, *newParseError(pos, code, format, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past peekToken if it has type t, recording an error
// and leaving the cursor in place otherwise.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(want token.Type) {
	p.addError(p.peekToken.Pos, ErrUnexpectedToken,
		"expected next token to be %s, got %s instead", want, p.peekToken.Type)
}

// synchronize skips tokens until it finds one of the given resynchronization
// points, so one syntax error doesn't cascade into a wall of follow-on
// errors for the rest of the file.
func (p *Parser) synchronize(syncTokens ...token.Type) {
	for !p.curTokenIs(token.EOF) {
		for _, t := range syncTokens {
			if p.curTokenIs(t) {
				return
			}
		}
		p.nextToken()
	}
}

// ParseProgram parses a full COOL source file: one or more
// `class ... ;`-terminated class declarations.
func (p *Parser) ParseProgram() (*ast.Program, []ParseError) {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.CLASS) {
			p.addError(p.curToken.Pos, ErrUnexpectedToken,
				"expected class declaration, got %s", p.curToken.Type)
			p.synchronize(token.CLASS, token.EOF)
			continue
		}
		class := p.parseClass()
		if class != nil {
			program.Classes = append(program.Classes, class)
		}
		if !p.expectPeek(token.SEMI) {
			p.synchronize(token.CLASS, token.EOF)
			continue
		}
		p.nextToken()
	}

	return program, p.errors
}
