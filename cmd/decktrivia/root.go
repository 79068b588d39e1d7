package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"decktrivia"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "decktrivia",
		Short:         "Convert Jeopardy authoring decks (PPTX) to trivia content JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newConvertCommand(&configFlag))
	rootCmd.AddCommand(newInspectCommand(&configFlag))
	rootCmd.AddCommand(newDecksCommand(&configFlag))

	return rootCmd
}

func loadConfig(path string) (decktrivia.Config, error) {
	if path == "" {
		return decktrivia.DefaultConfig(), nil
	}
	return decktrivia.LoadConfig(path)
}
