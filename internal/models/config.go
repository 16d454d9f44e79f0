package models

import "fmt"

// Bounds and defaults for a ranking run.
const (
	MinTotalNumbers     = 10
	MaxTotalNumbers     = 200
	DefaultTotalNumbers = 49

	MinNumbersPerCombo     = 2
	MaxNumbersPerCombo     = 20
	DefaultNumbersPerCombo = 4

	MinOutputCount     = 1
	MaxOutputCount     = 10000
	DefaultOutputCount = 1000
)

// RunConfig is everything a ranking run needs besides the input data.
type RunConfig struct {
	// TotalNumbers is the size of the number pool. It is informational only
	// and feeds the "unique numbers used" statistic.
	TotalNumbers int `json:"total_numbers" yaml:"total_numbers" mapstructure:"total_numbers"`

	// NumbersPerCombo is k, the size of every variant.
	NumbersPerCombo int `json:"numbers_per_combo" yaml:"numbers_per_combo" mapstructure:"numbers_per_combo"`

	// OutputCount is how many top variants to keep.
	OutputCount int `json:"output_count" yaml:"output_count" mapstructure:"output_count"`

	Weights Weights `json:"weights" yaml:"weights" mapstructure:"weights"`

	// Workers > 1 scores variants concurrently.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty" mapstructure:"workers"`
}

// DefaultRunConfig returns a RunConfig populated with the stock defaults.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		TotalNumbers:    DefaultTotalNumbers,
		NumbersPerCombo: DefaultNumbersPerCombo,
		OutputCount:     DefaultOutputCount,
		Weights:         DefaultWeights(),
		Workers:         1,
	}
}

// Validate checks every field against its allowed range.
func (c RunConfig) Validate() error {
	if c.TotalNumbers < MinTotalNumbers || c.TotalNumbers > MaxTotalNumbers {
		return fmt.Errorf("%w: total_numbers must be between %d and %d, got %d",
			ErrInvalidConfig, MinTotalNumbers, MaxTotalNumbers, c.TotalNumbers)
	}
	if c.NumbersPerCombo < MinNumbersPerCombo || c.NumbersPerCombo > MaxNumbersPerCombo {
		return fmt.Errorf("%w: numbers_per_combo must be between %d and %d, got %d",
			ErrInvalidConfig, MinNumbersPerCombo, MaxNumbersPerCombo, c.NumbersPerCombo)
	}
	if c.OutputCount < MinOutputCount || c.OutputCount > MaxOutputCount {
		return fmt.Errorf("%w: output_count must be between %d and %d, got %d",
			ErrInvalidConfig, MinOutputCount, MaxOutputCount, c.OutputCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	return c.Weights.Validate()
}
