package cmd

import "github.com/spf13/cobra"

var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:     "coolc",
	Short:   "COOL semantic analyzer",
	Long:    `coolc lexes, parses, and type-checks a Classroom Object-Oriented Language program.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
