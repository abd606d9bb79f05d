package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalconfig "github.com/smykla-skalski/nanobench/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default nanobench.toml",
	Long: `Write a default nanobench.toml to the current directory.

The generated file documents every setting with its default value.
Benchmark binaries pick it up automatically; environment variables
(NANOBENCH_*) and CLI flags override it.

Examples:
  nanobench init`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path, err := internalconfig.NewWriter().WriteDefault()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	return nil
}
