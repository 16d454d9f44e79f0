package reporting

import (
	"time"

	"github.com/spboyer/comborank/internal/models"
)

func sampleOutcome() *models.RankOutcome {
	return &models.RankOutcome{
		RunID:      "rank-20260102T030405Z",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		DurationMs: 1500,
		Config:     models.DefaultRunConfig(),
		Summary: models.ResultSummary{
			Selected:      2,
			TotalVariants: 12345,
			TotalRounds:   3,
			AvgScore:      0.55,
			MinScore:      0.5,
			MaxScore:      0.6,
			StdDev:        0.05,
			WithMatch4:    1,
			WithMatch3:    1,
			WithMatch43:   2,
			WithMatch2:    2,
		},
		Variants: []models.ScoredVariant{
			{
				ID: "17", Numbers: []int{5, 12, 23, 34}, Score: 0.6, Match4: 1, Match3: 0, Match2: 2,
				Breakdown: models.ScoreBreakdown{Frequency: 0.3, MatchComplete: 0.2, MatchPartial: 0.05, Distribution: 0.05},
			},
			{
				ID: "a|b", Numbers: []int{1, 2, 3, 4}, Score: 0.5, Match3: 1, Match2: 1,
				Breakdown: models.ScoreBreakdown{Frequency: 0.25, MatchComplete: 0.15, MatchPartial: 0.0, Distribution: 0.1},
			},
		},
	}
}
