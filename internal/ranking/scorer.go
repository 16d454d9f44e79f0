// Package ranking scores variants against historical rounds and ranks them.
//
// A variant's score is the weighted sum of four sub-scores, each in [0,1]:
// global number frequency, full and near-full round matches, partial round
// matches, and even/odd balance. With weights summing to 100 the total is in
// [0,1] as well.
package ranking

import (
	"fmt"
	"slices"

	"github.com/spboyer/comborank/internal/models"
)

// Match tier weights for the match-complete sub-score.
const (
	fullMatchWeight     = 1.0
	nearFullMatchWeight = 0.6
)

// Scorer scores individual variants against a fixed set of rounds.
// It is safe for concurrent use once built.
type Scorer struct {
	weights models.Weights
	k       int
	freq    *FrequencyTable
	rounds  []map[int]struct{}
}

// NewScorer prepares the frequency table and round sets used to score
// variants. k is the variant size used for match tiers; k <= 0 classifies
// each variant against its own distinct-number count.
func NewScorer(rounds []models.Round, weights models.Weights, k int) (*Scorer, error) {
	if len(rounds) == 0 {
		return nil, models.ErrNoRounds
	}

	sets := make([]map[int]struct{}, len(rounds))
	for i, r := range rounds {
		set := make(map[int]struct{}, len(r))
		for _, n := range r {
			set[n] = struct{}{}
		}
		sets[i] = set
	}

	return &Scorer{
		weights: weights,
		k:       k,
		freq:    BuildFrequencyTable(rounds),
		rounds:  sets,
	}, nil
}

// Frequencies returns the table built from the scorer's rounds.
func (s *Scorer) Frequencies() *FrequencyTable {
	return s.freq
}

// Score computes the total score and match tiers of one variant.
func (s *Scorer) Score(v models.Variant) (models.ScoredVariant, error) {
	set := v.NumberSet()
	if len(set) == 0 {
		return models.ScoredVariant{}, fmt.Errorf("%w: %q", models.ErrEmptyVariant, v.ID)
	}

	k := s.k
	if k <= 0 {
		k = len(set)
	}

	match4, match3, match2 := s.matchTiers(set, k)
	totalRounds := float64(len(s.rounds))

	completeRaw := (float64(match4)*fullMatchWeight + float64(match3)*nearFullMatchWeight) / totalRounds
	partialRaw := float64(match2) / totalRounds

	breakdown := models.ScoreBreakdown{
		Frequency:     s.frequencyScore(set) * models.Fraction(s.weights.Frequency),
		MatchComplete: completeRaw * models.Fraction(s.weights.MatchComplete),
		MatchPartial:  partialRaw * models.Fraction(s.weights.MatchPartial),
		Distribution:  balance(set) * models.Fraction(s.weights.Distribution),
	}

	return models.ScoredVariant{
		ID:        v.ID,
		Numbers:   slices.Clone(v.Numbers),
		Score:     breakdown.Frequency + breakdown.MatchComplete + breakdown.MatchPartial + breakdown.Distribution,
		Match4:    match4,
		Match3:    match3,
		Match2:    match2,
		Breakdown: breakdown,
	}, nil
}

// frequencyScore is the summed global frequency of the set, normalized so a
// set made only of numbers tied at the maximum count scores 1.
func (s *Scorer) frequencyScore(set []int) float64 {
	sum := 0
	for _, n := range set {
		sum += s.freq.Count(n)
	}
	return float64(sum) / float64(s.freq.Max()*len(set))
}

// matchTiers counts rounds sharing exactly k, k-1 and k-2 numbers with set.
// Overlaps below k-2 fall in no tier.
func (s *Scorer) matchTiers(set []int, k int) (match4, match3, match2 int) {
	for _, round := range s.rounds {
		matches := 0
		for _, n := range set {
			if _, ok := round[n]; ok {
				matches++
			}
		}
		switch matches {
		case k:
			match4++
		case k - 1:
			match3++
		case k - 2:
			match2++
		}
	}
	return match4, match3, match2
}

// balance is 1 for an even/odd split of equal size and 0 when all numbers
// share one parity.
func balance(set []int) float64 {
	even := 0
	for _, n := range set {
		if n%2 == 0 {
			even++
		}
	}
	odd := len(set) - even
	diff := even - odd
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(len(set))
}
