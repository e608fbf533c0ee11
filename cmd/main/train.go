package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func newTrainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "train <dataset>...",
		Short: "Ingest one or more line-per-sentence datasets into the brain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.loadBrain()
			if err != nil {
				return err
			}

			for _, path := range args {
				a.logger.Info("Ingesting dataset", slog.String("path", path))
				if err := b.TrainFile(path); err != nil {
					return err
				}
			}

			if err := b.SaveFile(a.brainPath); err != nil {
				return err
			}
			a.logger.Info("Brain saved",
				slog.String("path", a.brainPath),
				slog.Int("total_states", b.Len()),
			)
			return nil
		},
	}
}
