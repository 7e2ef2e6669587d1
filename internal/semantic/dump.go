package semantic

import (
	"fmt"
	"sort"
	"strings"
)

// DumpContext renders every class in state.Context — its parent, attributes,
// and method signatures — for the CLI's --dump-context flag.
func DumpContext(state *State) string {
	var sb strings.Builder
	for _, name := range state.Context.ClassNames() {
		ct, ok := state.Context.GetType(name)
		if !ok {
			continue
		}
		parent := "-"
		if ct.ParentType != nil {
			parent = ct.ParentType.Name
		}
		fmt.Fprintf(&sb, "class %s : %s%s\n", ct.Name, parent, sealedSuffix(ct.Sealed))

		for _, a := range ct.Attributes {
			fmt.Fprintf(&sb, "  attr %s : %s\n", a.Name, a.Type)
		}

		methodNames := make([]string, 0, len(ct.Methods))
		for mname := range ct.Methods {
			methodNames = append(methodNames, mname)
		}
		sort.Strings(methodNames)
		for _, mname := range methodNames {
			m := ct.Methods[mname]
			params := make([]string, len(m.ParamNames))
			for i, pn := range m.ParamNames {
				params[i] = fmt.Sprintf("%s : %s", pn, m.ParamTypes[i])
			}
			fmt.Fprintf(&sb, "  method %s(%s) : %s\n", m.Name, strings.Join(params, ", "), m.ReturnType)
		}
	}
	return sb.String()
}

func sealedSuffix(sealed bool) string {
	if sealed {
		return " (sealed)"
	}
	return ""
}

// DumpScope renders the Scope tree the Checker built for every class, one
// class root per line block, for the CLI's --dump-scope flag.
func DumpScope(state *State) string {
	var sb strings.Builder
	names := state.Context.ClassNames()
	for _, name := range names {
		scope, ok := state.ClassScopes[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "class %s\n", name)
		dumpScopeNode(&sb, scope, 1)
	}
	return sb.String()
}

func dumpScopeNode(sb *strings.Builder, s *Scope, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, local := range s.locals {
		fmt.Fprintf(sb, "%s%s : %s\n", indent, local.Name, local.Type)
	}
	for _, child := range s.children {
		fmt.Fprintf(sb, "%s{\n", indent)
		dumpScopeNode(sb, child, depth+1)
		fmt.Fprintf(sb, "%s}\n", indent)
	}
}
