// Package errors formats compiler diagnostics with source context: a
// file:line:column header, the offending source line, and a caret pointing
// at the column.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/coolc/internal/token"
)

// CompilerError is one user-facing diagnostic, ready to print.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// NewCompilerError builds a CompilerError from a position, message, and the
// full source it refers to.
func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the header, source line, and caret. When color is true the
// caret and message use ANSI escapes.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
