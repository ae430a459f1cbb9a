package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	var (
		cfgPath string
		seed    uint64
		systems int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Procedurally build a galaxy from a seed and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := buildScenario(cfgPath, seed, systems)
			state := e.State()

			fmt.Printf("Generated %d systems, %d bodies, %d jump points, %d regions\n",
				len(state.Systems), len(state.Bodies), len(state.JumpPoints), len(state.Regions))

			count := 0
			for _, sys := range state.Systems {
				if count >= 10 {
					fmt.Println("  ...")
					break
				}
				fmt.Printf("  %-20s pos=(%.0f, %.0f) bodies=%d jump_points=%d\n",
					sys.Name, sys.GalaxyPosition.X, sys.GalaxyPosition.Y, len(sys.Bodies), len(sys.JumpPoints))
				count++
			}

			for _, f := range state.Factions {
				fmt.Printf("Faction %q (id=%d, control=%s)\n", f.Name, f.Id, f.Control)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a Nebula4X config file")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "galaxy generation seed")
	cmd.Flags().IntVar(&systems, "systems", 20, "number of star systems to generate")
	return cmd
}
