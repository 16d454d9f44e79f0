package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spboyer/comborank/internal/projectconfig"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comborank",
		Short: "comborank - rank number combinations against past draws",
		Long: `comborank scores candidate number combinations ("variants") against a
history of winning rounds and keeps the best ones.

Each variant is scored on how often its numbers were drawn, how many past
rounds it matches exactly on 4, 3 or 2 numbers, and how close its even/odd
split is to an even balance. The weight of each part is configurable.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().String("config", "", "Path to a .comborank.yaml file (default: search upwards from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCacheCommand())

	return cmd
}

func execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}

// loadProjectConfig returns the configuration named by --config, or the
// nearest .comborank.yaml above the working directory, or defaults.
func loadProjectConfig(cmd *cobra.Command) (*projectconfig.ProjectConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := projectconfig.LoadFile(path)
		if err != nil {
			return nil, &InputError{Err: err}
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := projectconfig.Load(wd)
	if err != nil {
		return nil, &InputError{Err: err}
	}
	return cfg, nil
}
