package semantic

import (
	"fmt"
	"sort"
	"testing"

	"github.com/cwbudde/coolc/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// summarize renders a deterministic, sorted text summary of a run's errors
// and inferences, for snapshotting.
func summarize(state *State) string {
	errLines := make([]string, len(state.Errors))
	for i, e := range state.Errors {
		errLines[i] = fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Pos)
	}
	sort.Strings(errLines)

	infLines := append([]string(nil), state.Inferences...)
	sort.Strings(infLines)

	out := "errors:\n"
	for _, l := range errLines {
		out += "  " + l + "\n"
	}
	out += "inferences:\n"
	for _, l := range infLines {
		out += "  " + l + "\n"
	}
	return out
}

// TestCoolFixtures runs small COOL programs through the full
// collect/build/check/infer pipeline and snapshots their sorted
// error/inference summaries, covering the end-to-end scenarios of
// spec.md §8.
func TestCoolFixtures(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "clean_program",
			src:  `class Main inherits IO { main() : Object { out_string("hi") }; };`,
		},
		{
			name: "missing_entry_point",
			src:  `class Foo { bar() : Object { self }; };`,
		},
		{
			name: "sealed_parent",
			src: `
				class A inherits Int { };
				class Main { main() : Object { 1 }; };`,
		},
		{
			name: "self_assignment",
			src:  `class Main { main() : Object { self <- 1 }; };`,
		},
		{
			name: "infers_param_and_return",
			src: `
				class Main inherits IO {
					f(x : AUTO_TYPE) : AUTO_TYPE { x + 1 };
					main() : Object { f(3) };
				};`,
		},
		{
			name: "mutual_recursion",
			src: `
				class Main inherits IO {
					f(a : AUTO_TYPE, b : AUTO_TYPE) : AUTO_TYPE {
						if a = 1 then b else g(a + 1, b / 2) fi
					};
					g(a : AUTO_TYPE, b : AUTO_TYPE) : AUTO_TYPE {
						if a = 1 then b else f(a + 1, b / 2) fi
					};
					main() : Object { f(1, 2) };
				};`,
		},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			p := parser.New(fx.src)
			program, perrs := p.ParseProgram()
			if len(perrs) != 0 {
				t.Fatalf("unexpected parse errors: %v", perrs)
			}
			state := Analyze(program)
			snaps.MatchSnapshot(t, summarize(state))
		})
	}
}
