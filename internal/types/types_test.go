package types

import "testing"

func chain(object *ClassType) (io, integer, str, boolean *ClassType) {
	io = NewClassType("IO")
	integer = NewClassType("Int")
	str = NewClassType("String")
	boolean = NewClassType("Bool")
	_ = io.SetParent(object)
	_ = integer.SetParent(object)
	_ = str.SetParent(object)
	_ = boolean.SetParent(object)
	integer.Sealed = true
	str.Sealed = true
	boolean.Sealed = true
	return
}

func TestConformsToReflexiveAndTransitive(t *testing.T) {
	object := NewClassType("Object")
	io, _, _, _ := chain(object)
	a := NewClassType("A")
	_ = a.SetParent(io)

	if !a.ConformsTo(a) {
		t.Error("conforms_to should be reflexive")
	}
	if !a.ConformsTo(io) || !io.ConformsTo(object) {
		t.Fatal("expected direct parent conformance")
	}
	if !a.ConformsTo(object) {
		t.Error("conforms_to should be transitive through the parent chain")
	}
	if object.ConformsTo(a) {
		t.Error("a supertype must not conform to its subtype")
	}
}

func TestSealedParentRejected(t *testing.T) {
	object := NewClassType("Object")
	_, integer, _, _ := chain(object)

	sub := NewClassType("MyInt")
	if err := sub.SetParent(integer); err == nil {
		t.Fatal("expected an error inheriting from a sealed type")
	}
}

func TestDoubleParentRejected(t *testing.T) {
	object := NewClassType("Object")
	io, _, _, _ := chain(object)
	a := NewClassType("A")
	if err := a.SetParent(object); err != nil {
		t.Fatal(err)
	}
	if err := a.SetParent(io); err == nil {
		t.Fatal("expected an error setting a second parent")
	}
}

func TestBypassSentinelsConformToEverything(t *testing.T) {
	object := NewClassType("Object")
	for _, sentinel := range []Type{AutoType, ErrorType} {
		if !object.ConformsTo(sentinel) {
			t.Errorf("every type should conform to %s", sentinel)
		}
	}
	if !SelfType.Bypass() || !AutoType.Bypass() || !ErrorType.Bypass() {
		t.Fatal("SELF_TYPE, AUTO_TYPE, <error> must all bypass")
	}
	if VoidType.Bypass() {
		t.Fatal("<void> must not bypass")
	}
}

func TestSelfTypeNeverConforms(t *testing.T) {
	object := NewClassType("Object")
	if SelfType.ConformsTo(object) {
		t.Fatal("SELF_TYPE must never conform to a concrete type")
	}
}

func TestVoidOnlyConformsToItself(t *testing.T) {
	object := NewClassType("Object")
	if VoidType.ConformsTo(object) {
		t.Fatal("<void> must not conform to Object")
	}
	if !VoidType.ConformsTo(VoidType) {
		t.Fatal("<void> must conform to itself")
	}
}

func TestEqualitySemantics(t *testing.T) {
	if !SelfType.Equals(SelfType) {
		t.Error("SELF_TYPE must equal itself")
	}
	object := NewClassType("Object")
	if SelfType.Equals(object) {
		t.Error("SELF_TYPE must not equal a concrete type")
	}
	if !AutoType.Equals(object) || !ErrorType.Equals(object) {
		t.Error("AUTO_TYPE and <error> must equal any Type")
	}
	if !VoidType.Equals(VoidType) || VoidType.Equals(object) {
		t.Error("<void> must equal only <void>")
	}
}

func TestTypeUnionIdempotentCommutativeTotal(t *testing.T) {
	object := NewClassType("Object")
	io, integer, _, _ := chain(object)
	a := NewClassType("A")
	_ = a.SetParent(io)
	b := NewClassType("B")
	_ = b.SetParent(io)

	if TypeUnion(a, a) != Type(a) {
		t.Error("type_union(A, A) must be A")
	}
	if TypeUnion(a, b) != TypeUnion(b, a) {
		t.Error("type_union must be commutative")
	}
	if TypeUnion(a, integer) == nil {
		t.Error("type_union must never return nil for non-null inputs")
	}
	if TypeUnion(a, b) != Type(io) {
		t.Errorf("expected nearest common ancestor IO, got %s", TypeUnion(a, b))
	}
	if TypeUnion(a, integer) != Type(object) {
		t.Errorf("expected Object as the common ancestor, got %s", TypeUnion(a, integer))
	}
}

func TestTypeUnionAbsorbsAutoAndError(t *testing.T) {
	object := NewClassType("Object")
	if TypeUnion(object, AutoType) != AutoType {
		t.Error("AUTO_TYPE must absorb")
	}
	if TypeUnion(ErrorType, object) != ErrorType {
		t.Error("<error> must absorb")
	}
}

func TestGetAttributeAndMethodWalkParentChain(t *testing.T) {
	object := NewClassType("Object")
	io, integer, _, _ := chain(object)
	_, _ = io.DefineAttribute("level", integer)

	child := NewClassType("Child")
	_ = child.SetParent(io)

	attr, ok := child.GetAttribute("level")
	if !ok || attr.Type != Type(integer) {
		t.Fatal("expected to find the inherited attribute")
	}

	_, _ = io.DefineMethod("out_int", []string{"x"}, []Type{integer}, io)
	m, ok := child.GetMethod("out_int")
	if !ok || m.Name != "out_int" {
		t.Fatal("expected to find the inherited method through the parent chain")
	}
}

func TestRedeclarationErrors(t *testing.T) {
	object := NewClassType("Object")
	_, integer, _, _ := chain(object)

	child := NewClassType("Child")
	_ = child.SetParent(object)
	if _, err := child.DefineAttribute("x", integer); err != nil {
		t.Fatal(err)
	}
	if _, err := child.DefineAttribute("x", integer); err == nil {
		t.Fatal("expected a redeclaration error")
	}

	if _, err := child.DefineMethod("f", nil, nil, integer); err != nil {
		t.Fatal(err)
	}
	if _, err := child.DefineMethod("f", nil, nil, integer); err == nil {
		t.Fatal("expected a redeclaration error")
	}
}

func TestVariableInfoInferredFlagMatchesAutoType(t *testing.T) {
	v := NewVariableInfo("x", AutoType)
	if v.Inferred {
		t.Fatal("a fresh AUTO_TYPE slot must start open")
	}
	object := NewClassType("Object")
	w := NewVariableInfo("y", object)
	if !w.Inferred {
		t.Fatal("a fresh concrete-type slot must start closed")
	}
}

func TestVariableInfoSolveLowerBeatsUpperWhenConsistent(t *testing.T) {
	object := NewClassType("Object")
	io, integer, _, _ := chain(object)
	_ = io

	v := NewVariableInfo("x", AutoType)
	v.SetUpperType(object)
	v.SetLowerType(integer)

	if !v.Solve() {
		t.Fatal("expected Solve to close the variable")
	}
	if !v.Inferred || v.Type != Type(integer) {
		t.Fatalf("expected Int, got %s (inferred=%v)", v.Type, v.Inferred)
	}
}

func TestVariableInfoSolveStaysOpenOnConflict(t *testing.T) {
	object := NewClassType("Object")
	io, integer, str, _ := chain(object)
	_ = io

	v := NewVariableInfo("x", AutoType)
	v.SetLowerType(integer)
	v.SetUpperType(str)

	if v.Solve() {
		t.Fatal("lower bound Int cannot satisfy upper bound String; must stay open")
	}
	if v.Inferred || !IsAutoType(v.Type) {
		t.Fatal("variable must remain AUTO_TYPE on conflict")
	}
}

func TestVariableInfoIgnoresConstraintsOnceClosed(t *testing.T) {
	object := NewClassType("Object")
	v := NewVariableInfo("x", object)
	v.SetUpperType(object)
	v.SetLowerType(object)
	if len(v.UpperTypes) != 0 || len(v.LowerTypes) != 0 {
		t.Fatal("a closed variable must not accumulate constraints")
	}
}
