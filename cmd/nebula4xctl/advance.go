package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdvanceCommand() *cobra.Command {
	var (
		cfgPath string
		seed    uint64
		systems int
		days    int64
	)

	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Generate a scenario and step it forward, printing new events",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := buildScenario(cfgPath, seed, systems)
			state := e.State()
			startSeq := state.Events.NextSeq

			e.AdvanceDays(days)

			fmt.Printf("Advanced to day %d (hour %d)\n", state.Day, state.HourOfDay)
			for _, ev := range state.Events.SinceSeq(startSeq - 1) {
				fmt.Printf("[day %d h%02d] %-10s %s\n", ev.Day, ev.Hour, ev.Category, ev.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a Nebula4X config file")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "galaxy generation seed")
	cmd.Flags().IntVar(&systems, "systems", 20, "number of star systems to generate")
	cmd.Flags().Int64Var(&days, "days", 1, "number of in-sim days to advance")
	return cmd
}
