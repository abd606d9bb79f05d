// Package main provides the nanobench companion CLI: report reshaping and
// project scaffolding for the benchmark harness library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}

var rootCmd = &cobra.Command{
	Use:   "nanobench",
	Short: "Micro-benchmark harness companion tool",
	Long: `Companion tool for the nanobench micro-benchmark harness.

Benchmark binaries built against pkg/bench emit "Name,Time (ns)" CSV;
this tool reshapes those reports and scaffolds harness configuration.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		checkVersionFlag()
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}
