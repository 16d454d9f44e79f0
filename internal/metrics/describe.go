package metrics

import (
	"github.com/spboyer/comborank/internal/models"
)

// topRoundNumbers is how many frequent numbers DescribeRounds reports.
const topRoundNumbers = 5

// VariantStats summarizes an uploaded variant list.
type VariantStats struct {
	Count int `json:"count" yaml:"count"`

	// UniqueNumbers is the number of distinct numbers used by all variants,
	// out of TotalNumbers in the pool.
	UniqueNumbers int `json:"unique_numbers" yaml:"unique_numbers"`
	TotalNumbers  int `json:"total_numbers" yaml:"total_numbers"`

	MostCommon  *NumberCount `json:"most_common,omitempty" yaml:"most_common,omitempty"`
	LeastCommon *NumberCount `json:"least_common,omitempty" yaml:"least_common,omitempty"`

	// OffSize counts variants whose distinct-number count differs from k.
	OffSize int `json:"off_size,omitempty" yaml:"off_size,omitempty"`
}

// RoundStats summarizes an uploaded round history.
type RoundStats struct {
	Count      int           `json:"count" yaml:"count"`
	TopNumbers []NumberCount `json:"top_numbers" yaml:"top_numbers"`
	EvenPct    float64       `json:"even_pct" yaml:"even_pct"`
	OddPct     float64       `json:"odd_pct" yaml:"odd_pct"`
	AvgSum     float64       `json:"avg_sum" yaml:"avg_sum"`
}

// DescribeVariants computes upload statistics for variants. k is the
// expected variant size; k <= 0 skips the size check.
func DescribeVariants(variants []models.Variant, totalNumbers, k int) VariantStats {
	stats := VariantStats{Count: len(variants), TotalNumbers: totalNumbers}

	seqs := make([][]int, len(variants))
	for i, v := range variants {
		seqs[i] = v.Numbers
		if k > 0 && len(v.NumberSet()) != k {
			stats.OffSize++
		}
	}

	counts := CountNumbers(seqs)
	stats.UniqueNumbers = len(counts)
	if len(counts) > 0 {
		most, least := counts[0], counts[len(counts)-1]
		stats.MostCommon = &most
		stats.LeastCommon = &least
	}
	return stats
}

// DescribeRounds computes upload statistics for rounds.
func DescribeRounds(rounds []models.Round) RoundStats {
	stats := RoundStats{Count: len(rounds)}

	counts := CountNumbers(rounds)
	stats.TopNumbers = counts[:min(topRoundNumbers, len(counts))]

	total, even := 0, 0
	sums := make([]float64, len(rounds))
	for i, r := range rounds {
		for _, n := range r {
			total++
			if n%2 == 0 {
				even++
			}
		}
		sums[i] = float64(r.Sum())
	}
	if total > 0 {
		stats.EvenPct = float64(even) / float64(total) * 100
		stats.OddPct = 100 - stats.EvenPct
	}
	stats.AvgSum = Mean(sums)
	return stats
}

// Summarize describes the selected variants of a run.
func Summarize(selected []models.ScoredVariant, totalVariants, totalRounds int) models.ResultSummary {
	summary := models.ResultSummary{
		Selected:      len(selected),
		TotalVariants: totalVariants,
		TotalRounds:   totalRounds,
	}

	scores := make([]float64, len(selected))
	for i, sv := range selected {
		scores[i] = sv.Score
		if sv.Match4 > 0 {
			summary.WithMatch4++
		}
		if sv.Match3 > 0 {
			summary.WithMatch3++
		}
		if sv.Match2 > 0 {
			summary.WithMatch2++
		}
		if sv.Match4 > 0 || sv.Match3 > 0 {
			summary.WithMatch43++
		}
	}

	summary.AvgScore = Mean(scores)
	summary.MinScore, summary.MaxScore = MinMax(scores)
	summary.StdDev = StdDev(scores)
	return summary
}
