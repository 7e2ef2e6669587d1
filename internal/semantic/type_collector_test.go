package semantic

import (
	"testing"

	"github.com/cwbudde/coolc/internal/parser"
)

func runCollector(t *testing.T, src string) *State {
	t.Helper()
	p := parser.New(src)
	program, perrs := p.ParseProgram()
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	state := NewState()
	if err := (&TypeCollector{}).Run(program, state); err != nil {
		t.Fatalf("unexpected collector error: %v", err)
	}
	return state
}

func TestCollectorRegistersBuiltins(t *testing.T) {
	state := runCollector(t, `class Main { main() : Object { 1 }; };`)
	for _, name := range []string{"Object", "IO", "Int", "String", "Bool", "Main"} {
		if _, ok := state.Context.GetType(name); !ok {
			t.Errorf("expected %s to be registered", name)
		}
	}
}

func TestCollectorReportsDuplicateClass(t *testing.T) {
	state := runCollector(t, `
		class Foo { };
		class Foo { };
		class Main { main() : Object { 1 }; };`)
	if len(state.Errors) != 1 || state.Errors[0].Kind != TypeRedeclared {
		t.Fatalf("expected a single TypeRedeclared error, got %v", errorKinds(state))
	}
}

func TestCollectorRejectsRedeclaringABuiltin(t *testing.T) {
	state := runCollector(t, `class Int { }; class Main { main() : Object { 1 }; };`)
	if !hasKind(state, TypeRedeclared) {
		t.Fatalf("expected TypeRedeclared when a user class reuses a built-in name, got %v", errorKinds(state))
	}
}
