// Command coolc is a COOL semantic analyzer: it lexes, parses, and runs the
// full collect/build/check/infer pipeline over a .cl source file and prints
// the result.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/coolc/cmd/coolc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
