package semantic

import (
	"fmt"

	"github.com/cwbudde/coolc/internal/errors"
	"github.com/cwbudde/coolc/internal/token"
	"github.com/cwbudde/coolc/internal/types"
)

// ErrorKind classifies one SemanticError, matching the taxonomy a COOL
// analyzer must report (SPEC_FULL.md §7).
type ErrorKind string

const (
	TypeRedeclared    ErrorKind = "type_redeclared"
	TypeUnknown       ErrorKind = "type_unknown"
	InheritanceRule   ErrorKind = "inheritance_rule"
	AttrRedeclared    ErrorKind = "attr_redeclared"
	MethodRedeclared  ErrorKind = "method_redeclared"
	MethodArity       ErrorKind = "method_arity"
	IncompatibleTypes ErrorKind = "incompatible_types"
	InvalidOperands   ErrorKind = "invalid_operands"
	NameUnknown       ErrorKind = "name_unknown"
	SelfAssignment    ErrorKind = "self_assignment"
	InvalidParamType  ErrorKind = "invalid_param_type"
	MissingEntryPoint ErrorKind = "missing_entry_point"
)

// SemanticError is one diagnostic raised by the Collector, Builder, or
// Checker. Every pass appends to a shared slice rather than aborting, so a
// single program run can report more than one error (SPEC_FULL.md §7).
type SemanticError struct {
	Kind     ErrorKind
	Message  string
	Pos      token.Position
	Expected types.Type
	Got      types.Type
	Name     string
	ClassName string
}

// Error implements the error interface.
func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// ToCompilerError renders e with source context for display.
func (e *SemanticError) ToCompilerError(source, filename string) *errors.CompilerError {
	return errors.NewCompilerError(e.Pos, e.Message, source, filename)
}

func newTypeRedeclared(pos token.Position, name string) *SemanticError {
	return &SemanticError{
		Kind:    TypeRedeclared,
		Message: fmt.Sprintf("class %q is already defined", name),
		Pos:     pos,
		Name:    name,
	}
}

func newTypeUnknown(pos token.Position, name string) *SemanticError {
	return &SemanticError{
		Kind:    TypeUnknown,
		Message: fmt.Sprintf("type %q is not defined", name),
		Pos:     pos,
		Name:    name,
	}
}

func newInheritanceRule(pos token.Position, message string) *SemanticError {
	return &SemanticError{Kind: InheritanceRule, Message: message, Pos: pos}
}

func newAttrRedeclared(pos token.Position, name, className string) *SemanticError {
	return &SemanticError{
		Kind:      AttrRedeclared,
		Message:   fmt.Sprintf("attribute %q is already defined in class %q or an ancestor", name, className),
		Pos:       pos,
		Name:      name,
		ClassName: className,
	}
}

func newMethodRedeclared(pos token.Position, name, className string) *SemanticError {
	return &SemanticError{
		Kind:      MethodRedeclared,
		Message:   fmt.Sprintf("method %q is already defined in class %q", name, className),
		Pos:       pos,
		Name:      name,
		ClassName: className,
	}
}

func newMethodArity(pos token.Position, name string, want, got int) *SemanticError {
	return &SemanticError{
		Kind:    MethodArity,
		Message: fmt.Sprintf("method %q expects %d argument(s), got %d", name, want, got),
		Pos:     pos,
		Name:    name,
	}
}

func newIncompatibleTypes(pos token.Position, message string, expected, got types.Type) *SemanticError {
	return &SemanticError{
		Kind:     IncompatibleTypes,
		Message:  message,
		Pos:      pos,
		Expected: expected,
		Got:      got,
	}
}

func newInvalidOperands(pos token.Position, message string) *SemanticError {
	return &SemanticError{Kind: InvalidOperands, Message: message, Pos: pos}
}

func newNameUnknown(pos token.Position, name string) *SemanticError {
	return &SemanticError{
		Kind:    NameUnknown,
		Message: fmt.Sprintf("undeclared identifier %q", name),
		Pos:     pos,
		Name:    name,
	}
}

func newSelfAssignment(pos token.Position) *SemanticError {
	return &SemanticError{
		Kind:    SelfAssignment,
		Message: "cannot assign to self",
		Pos:     pos,
	}
}

func newInvalidParamType(pos token.Position, paramName string) *SemanticError {
	return &SemanticError{
		Kind:    InvalidParamType,
		Message: fmt.Sprintf("formal parameter %q cannot have type SELF_TYPE", paramName),
		Pos:     pos,
		Name:    paramName,
	}
}

func newMissingEntryPoint() *SemanticError {
	return &SemanticError{
		Kind:    MissingEntryPoint,
		Message: `class "Main" with a zero-argument method "main" is required`,
	}
}
