package parser

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/token"
)

// ParseError is a single syntax error with its source position.
type ParseError struct {
	Message string
	Code    string
	Pos     token.Position
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// Error code constants for programmatic error handling.
const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrExpectedIdent    = "E_EXPECTED_IDENT"
	ErrExpectedType     = "E_EXPECTED_TYPE"
	ErrNoPrefixParse    = "E_NO_PREFIX_PARSE"
	ErrMissingRParen    = "E_MISSING_RPAREN"
	ErrMissingRBrace    = "E_MISSING_RBRACE"
	ErrMissingSemi      = "E_MISSING_SEMI"
	ErrMissingColon     = "E_MISSING_COLON"
	ErrMissingKeyword   = "E_MISSING_KEYWORD"
)

func newParseError(pos token.Position, code, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Code: code, Pos: pos}
}
