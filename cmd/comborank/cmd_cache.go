package main

import (
	"fmt"
	"path/filepath"

	"github.com/spboyer/comborank/internal/cache"
	"github.com/spboyer/comborank/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the ranking result cache",
		Long: `Manage the ranking result cache.

The cache stores ranked results to skip scoring when the same variants,
rounds and settings are ranked again. Entries are keyed by all of those
inputs.`,
	}

	cmd.AddCommand(newCacheClearCommand())

	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the ranking result cache",
		Long: `Clear all cached ranking results.

The next ranking run will score every variant from scratch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cacheDir
			if !cmd.Flags().Changed("cache-dir") {
				pc, err := loadProjectConfig(cmd)
				if err != nil {
					return err
				}
				if pc.Cache.Dir != "" {
					dir = pc.Cache.Dir
				}
			}

			// Resolve to absolute path
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving cache directory: %w", err)
			}

			c := cache.New(absDir)
			if err := c.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", absDir) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", projectconfig.DefaultCacheDir, "Cache directory to clear")

	return cmd
}
