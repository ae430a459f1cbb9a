// Command nebula4xctl is a thin demonstration/debugging shell around the
// public engine API: generate a galaxy from a seed, step it, and print
// what happened. It is not part of the simulation core — every real host
// embeds the engine package directly.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nebula4xctl",
		Short: "Nebula4X engine CLI harness",
		Long: `nebula4xctl drives the Nebula4X simulation engine from the command line.

Examples:
  nebula4xctl generate --seed 42 --systems 30
  nebula4xctl advance --seed 42 --systems 30 --days 10
  nebula4xctl version`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newAdvanceCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
