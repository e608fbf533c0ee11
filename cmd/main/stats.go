package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics about the brain's transition store",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBrain()
			if err != nil {
				return err
			}

			s := b.Stats()
			fmt.Printf("States:                %d\n", s.TotalStates)
			fmt.Printf("Transitions:           %d\n", s.TotalTransitions)
			fmt.Printf("Avg transitions/state: %.2f\n", s.AvgTransitionsPerState)
			fmt.Printf("Distinct words:        %d\n", s.TotalWords)
			return nil
		},
	}
}
