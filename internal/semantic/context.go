// Package semantic implements the four-stage pipeline that turns a parsed
// COOL ast.Program into a fully type-checked, fully inferred one: a
// TypeCollector registers class names, a TypeBuilder wires inheritance and
// member signatures, a TypeChecker walks the AST assigning static types, and
// a TypeInferer closes any remaining AUTO_TYPE slots by fixed point.
package semantic

import (
	"fmt"
	"sort"

	"github.com/cwbudde/coolc/internal/types"
)

// Context is the global type table: every class name known to the program,
// built-in or user-declared.
type Context struct {
	classes map[string]*types.ClassType
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{classes: make(map[string]*types.ClassType)}
}

// CreateType registers and returns a brand-new class named name. It fails if
// name is already registered.
func (c *Context) CreateType(name string) (*types.ClassType, error) {
	if _, ok := c.classes[name]; ok {
		return nil, fmt.Errorf("type %q is already declared", name)
	}
	ct := types.NewClassType(name)
	c.classes[name] = ct
	return ct, nil
}

// GetType looks up a class by name.
func (c *Context) GetType(name string) (*types.ClassType, bool) {
	ct, ok := c.classes[name]
	return ct, ok
}

// MustGetType looks up a built-in class that the Collector is known to have
// already registered; it panics if not found, since that would be a bug in
// the pipeline itself rather than a user error.
func (c *Context) MustGetType(name string) *types.ClassType {
	ct, ok := c.classes[name]
	if !ok {
		panic("semantic: built-in type " + name + " not registered")
	}
	return ct
}

// ClassNames returns every registered class name in sorted order, handy for
// deterministic iteration (inference rounds, finalization, CLI dumps).
func (c *Context) ClassNames() []string {
	names := make([]string, 0, len(c.classes))
	for name := range c.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
