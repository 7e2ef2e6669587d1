// Package types implements COOL's type lattice: a Context of named class
// types rooted at Object, plus the four sentinel variants (SELF_TYPE,
// AUTO_TYPE, <error>, <void>) that the semantic core uses to short-circuit
// cascading errors and to mark still-open inference slots.
package types

import "fmt"

// Type is any COOL type: a user/built-in class, or one of the four sentinel
// variants. Conformance, equality, and the bypass asymmetry are all part of
// the interface because each variant implements them differently — see
// SPEC_FULL.md §4.1.
type Type interface {
	TypeName() string
	String() string
	// Bypass reports whether conformance/arithmetic checks against this
	// type should always short-circuit to success.
	Bypass() bool
	Equals(other Type) bool
	ConformsTo(other Type) bool
	// Parent returns the direct supertype, or nil at the root.
	Parent() Type
}

// Attribute is an owned (name, declared type) pair.
type Attribute struct {
	Name string
	Type Type
}

// Method is an owned (name, parameters, return type) triple, plus one
// VariableInfo per parameter and one for the return — the inference slots
// the Inferer refines.
type Method struct {
	Name        string
	ParamNames  []string
	ParamTypes  []Type
	ReturnType  Type
	ParamInfos  []*VariableInfo
	ReturnInfo  *VariableInfo
}

func newMethod(name string, paramNames []string, paramTypes []Type, returnType Type) *Method {
	infos := make([]*VariableInfo, len(paramNames))
	for i, pn := range paramNames {
		infos[i] = NewVariableInfo(pn, paramTypes[i])
	}
	return &Method{
		Name:       name,
		ParamNames: paramNames,
		ParamTypes: paramTypes,
		ReturnType: returnType,
		ParamInfos: infos,
		ReturnInfo: NewVariableInfo("<return "+name+">", returnType),
	}
}

// ClassType is a user-declared or built-in COOL class.
type ClassType struct {
	Name       string
	ParentType *ClassType
	Attributes []*Attribute
	Methods    map[string]*Method
	Sealed     bool
}

// NewClassType creates a class type with no parent and no members.
func NewClassType(name string) *ClassType {
	return &ClassType{Name: name, Methods: make(map[string]*Method)}
}

func (t *ClassType) TypeName() string { return t.Name }
func (t *ClassType) String() string   { return t.Name }
func (t *ClassType) Bypass() bool     { return false }

func (t *ClassType) Equals(other Type) bool {
	o, ok := other.(*ClassType)
	return ok && o == t
}

func (t *ClassType) Parent() Type {
	if t.ParentType == nil {
		return nil
	}
	return t.ParentType
}

// ConformsTo implements the generic rule of SPEC_FULL.md §4.1: true iff
// other bypasses, self equals other, or self's parent conforms to other.
func (t *ClassType) ConformsTo(other Type) bool {
	if other.Bypass() {
		return true
	}
	if t.Equals(other) {
		return true
	}
	if t.ParentType != nil {
		return t.ParentType.ConformsTo(other)
	}
	return false
}

// SetParent wires the inheritance link. Fails if a parent is already set or
// the given parent is sealed.
func (t *ClassType) SetParent(parent *ClassType) error {
	if t.ParentType != nil {
		return fmt.Errorf("parent type is already set for %s", t.Name)
	}
	if parent.Sealed {
		return fmt.Errorf("parent type %q is sealed, cannot inherit from it", parent.Name)
	}
	t.ParentType = parent
	return nil
}

// GetAttribute searches this class, then its ancestors, for an attribute
// named name.
func (t *ClassType) GetAttribute(name string) (*Attribute, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	if t.ParentType != nil {
		return t.ParentType.GetAttribute(name)
	}
	return nil, false
}

// DefineAttribute adds a new attribute, failing if this class or any
// ancestor already declares name.
func (t *ClassType) DefineAttribute(name string, typ Type) (*Attribute, error) {
	if _, ok := t.GetAttribute(name); ok {
		return nil, fmt.Errorf("attribute %q is already defined in %s", name, t.Name)
	}
	attr := &Attribute{Name: name, Type: typ}
	t.Attributes = append(t.Attributes, attr)
	return attr, nil
}

// GetMethod searches this class, then its ancestors, for a method named
// name. Unlike one buggy variant of the original analyzer, this always
// walks the parent chain (see SPEC_FULL.md §9 / DESIGN.md).
func (t *ClassType) GetMethod(name string) (*Method, bool) {
	if m, ok := t.Methods[name]; ok {
		return m, true
	}
	if t.ParentType != nil {
		return t.ParentType.GetMethod(name)
	}
	return nil, false
}

// DefineMethod adds a new method, failing if this class (not ancestors —
// overriding is legal) already defines name.
func (t *ClassType) DefineMethod(name string, paramNames []string, paramTypes []Type, returnType Type) (*Method, error) {
	if _, ok := t.Methods[name]; ok {
		return nil, fmt.Errorf("method %q already defined in %s", name, t.Name)
	}
	m := newMethod(name, paramNames, paramTypes, returnType)
	t.Methods[name] = m
	return m, nil
}

// ---------------------------------------------------------------------
// Sentinel variants.
// ---------------------------------------------------------------------

type selfType struct{}

// SelfType is the unique SELF_TYPE sentinel: it never conforms to anything
// (callers must resolve it against the current class first) and is only
// equal to itself.
var SelfType Type = &selfType{}

func (s *selfType) TypeName() string         { return "SELF_TYPE" }
func (s *selfType) String() string           { return "SELF_TYPE" }
func (s *selfType) Bypass() bool             { return true }
func (s *selfType) Parent() Type             { return nil }
func (s *selfType) Equals(other Type) bool   { _, ok := other.(*selfType); return ok }
func (s *selfType) ConformsTo(other Type) bool { return false }

type autoType struct{}

// AutoType is the unique AUTO_TYPE sentinel requesting inference.
var AutoType Type = &autoType{}

func (a *autoType) TypeName() string       { return "AUTO_TYPE" }
func (a *autoType) String() string         { return "AUTO_TYPE" }
func (a *autoType) Bypass() bool           { return true }
func (a *autoType) Parent() Type           { return nil }
func (a *autoType) Equals(other Type) bool { return other != nil }
func (a *autoType) ConformsTo(Type) bool   { return true }

type errorType struct{}

// ErrorType is the unique <error> sentinel: it absorbs into every
// conformance/union check so a single mistake never cascades.
var ErrorType Type = &errorType{}

func (e *errorType) TypeName() string       { return "<error>" }
func (e *errorType) String() string         { return "<error>" }
func (e *errorType) Bypass() bool           { return true }
func (e *errorType) Parent() Type           { return nil }
func (e *errorType) Equals(other Type) bool { return other != nil }
func (e *errorType) ConformsTo(Type) bool   { return true }

type voidType struct{}

// VoidType is the unique <void> sentinel.
var VoidType Type = &voidType{}

func (v *voidType) TypeName() string       { return "<void>" }
func (v *voidType) String() string         { return "<void>" }
func (v *voidType) Bypass() bool           { return false }
func (v *voidType) Parent() Type           { return nil }
func (v *voidType) Equals(other Type) bool { _, ok := other.(*voidType); return ok }
func (v *voidType) ConformsTo(other Type) bool {
	_, ok := other.(*voidType)
	return ok
}

// IsSelfType, IsAutoType, IsErrorType report the sentinel identity of t.
func IsSelfType(t Type) bool  { _, ok := t.(*selfType); return ok }
func IsAutoType(t Type) bool  { _, ok := t.(*autoType); return ok }
func IsErrorType(t Type) bool { _, ok := t.(*errorType); return ok }
func IsVoidType(t Type) bool  { _, ok := t.(*voidType); return ok }

// TypeUnion computes the least upper bound of a and b in the inheritance
// lattice: ancestor chains to Object, walked from the root while they
// agree; the last common type is the union. AUTO_TYPE and <error> absorb
// (the union with either is that sentinel itself). SELF_TYPE must already
// be resolved to a concrete class by the caller (TypeChecker's
// responsibility per SPEC_FULL.md §4.1).
func TypeUnion(a, b Type) Type {
	if IsAutoType(a) || IsErrorType(a) {
		return a
	}
	if IsAutoType(b) || IsErrorType(b) {
		return b
	}
	if a.Equals(b) {
		return a
	}

	chainA := ancestorChain(a)
	chainB := ancestorChain(b)

	i, j := len(chainA)-1, len(chainB)-1
	var common Type
	for i >= 0 && j >= 0 && chainA[i].Equals(chainB[j]) {
		common = chainA[i]
		i--
		j--
	}
	if common == nil {
		return ErrorType
	}
	return common
}

func ancestorChain(t Type) []Type {
	chain := []Type{t}
	for t.Parent() != nil {
		t = t.Parent()
		chain = append(chain, t)
	}
	return chain
}
