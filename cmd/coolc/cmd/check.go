package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/coolc/internal/errors"
	"github.com/cwbudde/coolc/internal/parser"
	"github.com/cwbudde/coolc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	dumpContext      bool
	dumpScope        bool
	stopOnFirstError bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the semantic analyzer over a COOL source file",
	Long: `check runs lex -> parse -> collect -> build -> check -> infer over a
.cl file and prints the errors and inferences the pipeline produced.

Examples:
  coolc check program.cl
  coolc check program.cl --dump-context
  coolc check program.cl --dump-scope --stop-on-first-error`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&dumpContext, "dump-context", false, "print the resolved Context (classes, attributes, methods)")
	checkCmd.Flags().BoolVar(&dumpScope, "dump-scope", false, "print the Scope tree built for every class")
	checkCmd.Flags().BoolVar(&stopOnFirstError, "stop-on-first-error", false, "only print the first reported error")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	p := parser.New(input)
	program, parseErrors := p.ParseProgram()

	if len(parseErrors) > 0 {
		printParseErrors(parseErrors, input, filename)
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrors))
	}

	state := semantic.Analyze(program)

	printResults(state, input, filename)

	if state.HasErrors() {
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(state.Errors))
	}
	return nil
}

func printParseErrors(parseErrors []parser.ParseError, input, filename string) {
	if stopOnFirstError && len(parseErrors) > 1 {
		parseErrors = parseErrors[:1]
	}
	for _, pe := range parseErrors {
		ce := errors.NewCompilerError(pe.Pos, pe.Message, input, filename)
		fmt.Fprintln(os.Stderr, ce.Format(false))
	}
}

func printResults(state *semantic.State, input, filename string) {
	errs := state.Errors
	if stopOnFirstError && len(errs) > 1 {
		errs = errs[:1]
	}
	for _, semErr := range errs {
		ce := semErr.ToCompilerError(input, filename)
		fmt.Fprintln(os.Stderr, ce.Format(false))
	}

	if len(state.Inferences) > 0 {
		fmt.Println("inferences:")
		for _, inf := range state.Inferences {
			fmt.Println("  " + inf)
		}
	}

	if dumpContext {
		fmt.Println("context:")
		fmt.Print(semantic.DumpContext(state))
	}

	if dumpScope {
		fmt.Println("scope:")
		fmt.Print(semantic.DumpScope(state))
	}
}
