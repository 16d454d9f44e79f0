package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
)

// InterpretScore returns a plain-language label for a numeric score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct >= 60:
		return "Strong (60+)"
	case pct >= 40:
		return "Moderate (40-60)"
	case pct >= 20:
		return "Weak (20-40)"
	default:
		return "Minimal (<20)"
	}
}

// InterpretSpread explains how far apart the selected scores are.
func InterpretSpread(stdDev float64) string {
	pts := stdDev * 100
	switch {
	case pts < 1:
		return fmt.Sprintf("Scores are tightly clustered (±%.2f points); the cut-off barely separates the selection from the rest.", pts)
	case pts < 5:
		return fmt.Sprintf("Scores vary moderately (±%.2f points).", pts)
	default:
		return fmt.Sprintf("Scores are widely spread (±%.2f points); the top of the list stands out clearly.", pts)
	}
}

// InterpretMatches describes how much of the selection has any history of
// near or complete matches with past rounds.
func InterpretMatches(s models.ResultSummary) string {
	if s.Selected == 0 {
		return "No variants were selected."
	}
	if s.WithMatch43 == 0 && s.WithMatch2 == 0 {
		return "None of the selected variants ever came close to a past round; ranking is driven by frequency and balance."
	}
	pct := float64(s.WithMatch43) / float64(s.Selected) * 100
	return fmt.Sprintf("%.0f%% of the selected variants matched all or all but one number of at least one past round.", pct)
}

// FormatSummaryReport produces a full plain-language report from a RankOutcome.
func FormatSummaryReport(outcome *models.RankOutcome) string {
	var b strings.Builder

	s := outcome.Summary
	duration := time.Duration(outcome.DurationMs) * time.Millisecond

	b.WriteString("=== Interpretation ===\n\n")

	b.WriteString(fmt.Sprintf("Average Score: %.2f — %s\n", s.AvgScore*100, InterpretScore(s.AvgScore)))
	b.WriteString(fmt.Sprintf("Best Score:    %.2f — %s\n", s.MaxScore*100, InterpretScore(s.MaxScore)))
	if len(outcome.Variants) > 1 {
		ci := metrics.BootstrapCI(scores(outcome.Variants), 0.95, ciSeed)
		b.WriteString(fmt.Sprintf("95%% CI:        %.2f to %.2f\n", ci.Lower*100, ci.Upper*100))
	}
	b.WriteString(fmt.Sprintf("Spread:        %s\n", InterpretSpread(s.StdDev)))
	b.WriteString(fmt.Sprintf("Matches:       %s\n", InterpretMatches(s)))
	b.WriteString(fmt.Sprintf("Duration:      %v\n", duration))

	// Leading variants
	if n := min(len(outcome.Variants), 5); n > 0 {
		b.WriteString("\nTop Variants:\n")
		for _, v := range outcome.Variants[:n] {
			b.WriteString(fmt.Sprintf("  %s: %.2f — %s\n", v.ID, v.Score*100, InterpretScore(v.Score)))
			b.WriteString(fmt.Sprintf("    frequency %.2f, complete %.2f, partial %.2f, distribution %.2f\n",
				v.Breakdown.Frequency*100, v.Breakdown.MatchComplete*100,
				v.Breakdown.MatchPartial*100, v.Breakdown.Distribution*100))
		}
	}

	return b.String()
}

// ciSeed keeps the reported interval identical across renders of one outcome.
const ciSeed = 1

func scores(variants []models.ScoredVariant) []float64 {
	out := make([]float64, len(variants))
	for i, v := range variants {
		out[i] = v.Score
	}
	return out
}
