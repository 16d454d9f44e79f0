package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/comborank/internal/projectconfig"
	"github.com/spboyer/comborank/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a .comborank.yaml file",
		Long: `Validate a configuration file against the configuration schema and the
ranking rules (value ranges, weights adding up to 100%).

Without an argument the nearest .comborank.yaml above the working directory
is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			} else {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting working directory: %w", err)
				}
				path, err = projectconfig.Locate(wd)
				if errors.Is(err, os.ErrNotExist) {
					return &InputError{Err: fmt.Errorf("no %s found (run 'comborank init' to create one)", projectconfig.FileName)}
				}
				if err != nil {
					return err
				}
			}

			problems, err := validation.ValidateConfigFile(path)
			if err != nil {
				return &InputError{Err: err}
			}

			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintf(out, "%s is valid\n", path) //nolint:errcheck
				return nil
			}
			for _, p := range problems {
				fmt.Fprintf(out, "  - %s\n", p) //nolint:errcheck
			}
			return &InputError{Err: fmt.Errorf("%s: %d problem(s) found", path, len(problems))}
		},
	}
}
