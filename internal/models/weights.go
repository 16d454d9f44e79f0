package models

import "fmt"

// Default criterion weights, in percent.
const (
	DefaultFrequencyWeight     = 45
	DefaultMatchCompleteWeight = 33
	DefaultMatchPartialWeight  = 12
	DefaultDistributionWeight  = 10

	// WeightTotal is the value the four weights must add up to.
	WeightTotal = 100
)

// Weights holds the percentage given to each scoring criterion.
type Weights struct {
	// Frequency rewards numbers that appear often across all rounds.
	Frequency int `json:"frequency" yaml:"frequency" mapstructure:"frequency"`

	// MatchComplete rewards full (k/k) and near-full (k-1/k) matches.
	MatchComplete int `json:"match_complete" yaml:"match_complete" mapstructure:"match_complete"`

	// MatchPartial rewards k-2/k matches.
	MatchPartial int `json:"match_partial" yaml:"match_partial" mapstructure:"match_partial"`

	// Distribution rewards an even/odd balanced variant.
	Distribution int `json:"distribution" yaml:"distribution" mapstructure:"distribution"`
}

// DefaultWeights returns the stock 45/33/12/10 split.
func DefaultWeights() Weights {
	return Weights{
		Frequency:     DefaultFrequencyWeight,
		MatchComplete: DefaultMatchCompleteWeight,
		MatchPartial:  DefaultMatchPartialWeight,
		Distribution:  DefaultDistributionWeight,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() int {
	return w.Frequency + w.MatchComplete + w.MatchPartial + w.Distribution
}

// Validate checks that every weight is a percentage and that together they
// add up to exactly 100.
func (w Weights) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"frequency", w.Frequency},
		{"match_complete", w.MatchComplete},
		{"match_partial", w.MatchPartial},
		{"distribution", w.Distribution},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > WeightTotal {
			return fmt.Errorf("%w: %s weight must be between 0 and %d, got %d", ErrInvalidWeights, f.name, WeightTotal, f.value)
		}
	}
	if sum := w.Sum(); sum != WeightTotal {
		return fmt.Errorf("%w: weights must sum to %d%%, got %d%%", ErrInvalidWeights, WeightTotal, sum)
	}
	return nil
}

// Fraction returns a weight as a multiplier in [0,1].
func Fraction(weight int) float64 {
	return float64(weight) / WeightTotal
}
