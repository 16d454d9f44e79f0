package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
	"github.com/spboyer/comborank/internal/reporting"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// statsReport is the machine-readable form of `comborank stats`.
type statsReport struct {
	Variants metrics.VariantStats `json:"variants" yaml:"variants"`
	Rounds   metrics.RoundStats   `json:"rounds" yaml:"rounds"`
}

func newStatsCommand() *cobra.Command {
	var (
		variantsPath string
		roundsPath   string
		totalNumbers int
		k            int
		format       string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Describe variants and rounds files",
		Long: `Print statistics about the input files without ranking anything.

For variants: how many there are, how many distinct numbers of the pool they
use, and the most and least common number. For rounds: how many there are,
the five most frequent numbers, the even/odd split and the average sum.
A preview of the first records of each file follows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if variantsPath == "" && roundsPath == "" {
				return &InputError{Err: errors.New("stats needs --variants, --rounds or both")}
			}

			pc, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}
			cfg := pc.RunConfig()
			if cmd.Flags().Changed("total-numbers") {
				cfg.TotalNumbers = totalNumbers
			}
			if cmd.Flags().Changed("numbers-per-combo") {
				cfg.NumbersPerCombo = k
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var (
				variants []models.Variant
				rounds   []models.Round
			)
			if variantsPath != "" {
				if variants, err = dataset.LoadVariants(variantsPath); err != nil {
					return err
				}
			}
			if roundsPath != "" {
				if rounds, err = dataset.LoadRounds(roundsPath); err != nil {
					return err
				}
			}

			report := statsReport{
				Variants: metrics.DescribeVariants(variants, cfg.TotalNumbers, cfg.NumbersPerCombo),
				Rounds:   metrics.DescribeRounds(rounds),
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "table", "":
				reporting.WriteStats(out, report.Variants, report.Rounds, variants, rounds)
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			default:
				return &InputError{Err: fmt.Errorf("unknown stats format %q (want table, json or yaml)", format)}
			}
		},
	}

	cmd.Flags().StringVar(&variantsPath, "variants", "", "Variants file (ID, n1 n2 ...)")
	cmd.Flags().StringVar(&roundsPath, "rounds", "", "Winning rounds file (n1 n2 ...)")
	cmd.Flags().IntVar(&totalNumbers, "total-numbers", models.DefaultTotalNumbers, "Size of the number pool")
	cmd.Flags().IntVarP(&k, "numbers-per-combo", "k", models.DefaultNumbersPerCombo, "Expected numbers per variant")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, yaml")

	return cmd
}
