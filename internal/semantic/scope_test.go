package semantic

import (
	"testing"

	"github.com/cwbudde/coolc/internal/types"
)

func TestScopeShadowingWindow(t *testing.T) {
	root := NewScope()
	root.DefineVariable("x", types.AutoType)

	child := root.CreateChild()
	// A local added to root AFTER child was created must stay invisible to
	// child: this is what gives `let` its left-to-right shadowing.
	root.DefineVariable("y", types.AutoType)

	if _, ok := child.FindVariable("x"); !ok {
		t.Error("child should see x, declared before it was created")
	}
	if _, ok := child.FindVariable("y"); ok {
		t.Error("child must not see y, declared after it was created")
	}
}

func TestScopeFindLocalDoesNotWalkParent(t *testing.T) {
	root := NewScope()
	root.DefineVariable("x", types.AutoType)
	child := root.CreateChild()
	child.DefineVariable("z", types.AutoType)

	if _, ok := child.FindLocal("x"); ok {
		t.Error("FindLocal must not walk to the parent scope")
	}
	if _, ok := child.FindLocal("z"); !ok {
		t.Error("FindLocal must find the child's own local")
	}
}

func TestScopeReplayRecoversSameTree(t *testing.T) {
	root := NewScope()
	a := root.CreateChild()
	a.DefineVariable("a1", types.AutoType)
	b := root.CreateChild()
	b.DefineVariable("b1", types.AutoType)

	first := root.NextChild()
	second := root.NextChild()
	if first != a || second != b {
		t.Fatal("NextChild must return children in creation order")
	}

	root.ResetReplay()
	if root.NextChild() != a {
		t.Fatal("ResetReplay must rewind NextChild to the start")
	}
}

func TestScopeAddLocalSharesPointer(t *testing.T) {
	root := NewScope()
	v := types.NewVariableInfo("p", types.AutoType)
	root.AddLocal(v)

	v.Type = types.ErrorType
	found, ok := root.FindLocal("p")
	if !ok {
		t.Fatal("expected to find the added local")
	}
	if found != v {
		t.Fatal("AddLocal must share the exact pointer, not copy it")
	}
}
