package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/comborank/internal/projectconfig"
	"github.com/spboyer/comborank/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .comborank.yaml with default settings",
		Long: `Create a .comborank.yaml configuration file.

The file is populated with the default game size, output count, weights and
server settings. Use --interactive to answer a short form instead of taking
the defaults.

If no directory is specified, the current directory is used. An existing
file is left alone unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the settings with an interactive form")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive, force bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return &InputError{Err: fmt.Errorf("%s already exists (use --force to overwrite)", path)}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	cfg := projectconfig.New()
	if interactive {
		rc, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.RunConfig())
		if err != nil {
			return fmt.Errorf("wizard failed: %w", err)
		}
		cfg.Game.TotalNumbers = rc.TotalNumbers
		cfg.Game.NumbersPerCombo = rc.NumbersPerCombo
		cfg.Output.Count = rc.OutputCount
		cfg.Weights = &rc.Weights
	}

	if err := projectconfig.Save(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}
