package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kjolnyr/gokov/pkg/brain"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries the state shared by all subcommands: the loaded configuration,
// the brain file path and the logger.
type app struct {
	cfg       brain.Config
	brainPath string
	logger    *slog.Logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	var (
		a          app
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:     "gokov",
		Short:   "A variable-order Markov chain chatbot",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := brain.LoadConfig(configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: parseLogLevel(logLevel),
			}))
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "gokov.yml", "path to the YAML configuration file")
	root.PersistentFlags().StringVar(&a.brainPath, "brain", "brain.json", "path to the brain file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newTrainCmd(&a), newChatCmd(&a), newStatsCmd(&a))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBrain builds a brain from the app configuration and, when the brain
// file already exists, restores its saved store.
func (a *app) loadBrain() (*brain.Brain, error) {
	b := brain.New(brain.WithConfig(a.cfg), brain.WithLogger(a.logger))

	if _, err := os.Stat(a.brainPath); err != nil {
		if os.IsNotExist(err) {
			return b, nil
		}
		return nil, fmt.Errorf("could not stat brain file: %w", err)
	}
	if err := b.LoadFile(a.brainPath); err != nil {
		return nil, err
	}
	return b, nil
}
