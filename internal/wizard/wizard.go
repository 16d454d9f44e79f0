// Package wizard collects a ranking configuration interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spboyer/comborank/internal/models"
	"golang.org/x/term"
)

// answers holds the raw text typed into each form field.
type answers struct {
	TotalNumbers    string
	NumbersPerCombo string
	OutputCount     string
	Weights         weightInputs
}

type weightInputs struct {
	Frequency     string
	MatchComplete string
	MatchPartial  string
	Distribution  string
}

func newAnswers(cfg models.RunConfig) *answers {
	return &answers{
		TotalNumbers:    strconv.Itoa(cfg.TotalNumbers),
		NumbersPerCombo: strconv.Itoa(cfg.NumbersPerCombo),
		OutputCount:     strconv.Itoa(cfg.OutputCount),
		Weights: weightInputs{
			Frequency:     strconv.Itoa(cfg.Weights.Frequency),
			MatchComplete: strconv.Itoa(cfg.Weights.MatchComplete),
			MatchPartial:  strconv.Itoa(cfg.Weights.MatchPartial),
			Distribution:  strconv.Itoa(cfg.Weights.Distribution),
		},
	}
}

// RunConfigWizard runs an interactive huh form pre-populated from initial and
// returns the configuration the user confirmed. Fields the form does not ask
// about (workers) are carried over from initial.
func RunConfigWizard(in io.Reader, out io.Writer, initial models.RunConfig) (models.RunConfig, error) {
	a := newAnswers(initial)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Total numbers").
				Description(fmt.Sprintf("Size of the number pool (%d-%d)", models.MinTotalNumbers, models.MaxTotalNumbers)).
				Value(&a.TotalNumbers).
				Validate(boundedValidator("total numbers", models.MinTotalNumbers, models.MaxTotalNumbers)),
			huh.NewInput().
				Title("Numbers per combination").
				Description(fmt.Sprintf("How many numbers make up one variant (%d-%d)", models.MinNumbersPerCombo, models.MaxNumbersPerCombo)).
				Value(&a.NumbersPerCombo).
				Validate(boundedValidator("numbers per combination", models.MinNumbersPerCombo, models.MaxNumbersPerCombo)),
			huh.NewInput().
				Title("Variants to keep").
				Description(fmt.Sprintf("Number of top variants in the output (%d-%d)", models.MinOutputCount, models.MaxOutputCount)).
				Value(&a.OutputCount).
				Validate(boundedValidator("output count", models.MinOutputCount, models.MaxOutputCount)),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("Scoring weights").
				DescriptionFunc(func() string {
					return fmt.Sprintf("Percentages, must add up to 100. Current total: %d%%", weightTotal(a.Weights))
				}, &a.Weights),
			huh.NewInput().
				Title("Frequency").
				Description("How often the variant's numbers appear in past rounds").
				Value(&a.Weights.Frequency).
				Validate(boundedValidator("frequency weight", 0, models.WeightTotal)),
			huh.NewInput().
				Title("Complete match").
				Description("Rounds matching all or all but one number").
				Value(&a.Weights.MatchComplete).
				Validate(boundedValidator("complete match weight", 0, models.WeightTotal)),
			huh.NewInput().
				Title("Partial match").
				Description("Rounds matching all but two numbers").
				Value(&a.Weights.MatchPartial).
				Validate(boundedValidator("partial match weight", 0, models.WeightTotal)),
			huh.NewInput().
				Title("Distribution").
				Description("Even/odd balance of the variant").
				Value(&a.Weights.Distribution).
				Validate(func(s string) error {
					if _, err := parseBounded(s, "distribution weight", 0, models.WeightTotal); err != nil {
						return err
					}
					if total := weightTotal(a.Weights); total != models.WeightTotal {
						return fmt.Errorf("weights must sum to 100%%, got %d%%", total)
					}
					return nil
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return models.RunConfig{}, fmt.Errorf("wizard failed: %w", err)
	}

	return buildRunConfig(a, initial)
}

// buildRunConfig converts form answers into a validated RunConfig.
func buildRunConfig(a *answers, base models.RunConfig) (models.RunConfig, error) {
	cfg := base
	fields := []struct {
		raw      string
		name     string
		min, max int
		dst      *int
	}{
		{a.TotalNumbers, "total numbers", models.MinTotalNumbers, models.MaxTotalNumbers, &cfg.TotalNumbers},
		{a.NumbersPerCombo, "numbers per combination", models.MinNumbersPerCombo, models.MaxNumbersPerCombo, &cfg.NumbersPerCombo},
		{a.OutputCount, "output count", models.MinOutputCount, models.MaxOutputCount, &cfg.OutputCount},
		{a.Weights.Frequency, "frequency weight", 0, models.WeightTotal, &cfg.Weights.Frequency},
		{a.Weights.MatchComplete, "complete match weight", 0, models.WeightTotal, &cfg.Weights.MatchComplete},
		{a.Weights.MatchPartial, "partial match weight", 0, models.WeightTotal, &cfg.Weights.MatchPartial},
		{a.Weights.Distribution, "distribution weight", 0, models.WeightTotal, &cfg.Weights.Distribution},
	}
	for _, f := range fields {
		v, err := parseBounded(f.raw, f.name, f.min, f.max)
		if err != nil {
			return models.RunConfig{}, fmt.Errorf("%w: %v", models.ErrInvalidConfig, err)
		}
		*f.dst = v
	}
	if err := cfg.Validate(); err != nil {
		return models.RunConfig{}, err
	}
	return cfg, nil
}

func boundedValidator(name string, lo, hi int) func(string) error {
	return func(s string) error {
		_, err := parseBounded(s, name, lo, hi)
		return err
	}
}

func parseBounded(s, name string, lo, hi int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", name, s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", name, lo, hi, v)
	}
	return v, nil
}

// weightTotal sums the weight fields that currently parse; fields still
// being typed count as zero.
func weightTotal(w weightInputs) int {
	total := 0
	for _, s := range []string{w.Frequency, w.MatchComplete, w.MatchPartial, w.Distribution} {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			total += v
		}
	}
	return total
}
