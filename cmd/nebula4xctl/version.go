package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masterblaster1999/Nebula4X-sub000/engine"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the engine save schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("nebula4xctl (engine save schema v%d)\n", engine.SaveSchemaVersion)
			return nil
		},
	}
}
