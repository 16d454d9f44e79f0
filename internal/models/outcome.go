package models

import "time"

// ScoreBreakdown holds the weighted contribution of each criterion to a
// variant's total score.
type ScoreBreakdown struct {
	Frequency     float64 `json:"frequency" yaml:"frequency"`
	MatchComplete float64 `json:"match_complete" yaml:"match_complete"`
	MatchPartial  float64 `json:"match_partial" yaml:"match_partial"`
	Distribution  float64 `json:"distribution" yaml:"distribution"`
}

// ScoredVariant is a variant together with its score and match tiers.
type ScoredVariant struct {
	ID        string         `json:"id" yaml:"id"`
	Numbers   []int          `json:"numbers" yaml:"numbers"`
	Score     float64        `json:"score" yaml:"score"`
	Match4    int            `json:"match_4" yaml:"match_4"`
	Match3    int            `json:"match_3" yaml:"match_3"`
	Match2    int            `json:"match_2" yaml:"match_2"`
	Breakdown ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
}

// Variant returns the plain variant, dropping scoring data.
func (s ScoredVariant) Variant() Variant {
	return Variant{ID: s.ID, Numbers: s.Numbers}
}

// ResultSummary describes the selected variants of a run.
type ResultSummary struct {
	Selected      int     `json:"selected" yaml:"selected"`
	TotalVariants int     `json:"total_variants" yaml:"total_variants"`
	TotalRounds   int     `json:"total_rounds" yaml:"total_rounds"`
	AvgScore      float64 `json:"avg_score" yaml:"avg_score"`
	MinScore      float64 `json:"min_score" yaml:"min_score"`
	MaxScore      float64 `json:"max_score" yaml:"max_score"`
	StdDev        float64 `json:"std_dev" yaml:"std_dev"`

	// WithMatchN counts selected variants having at least one tier-N match.
	WithMatch4 int `json:"with_match_4" yaml:"with_match_4"`
	WithMatch3 int `json:"with_match_3" yaml:"with_match_3"`
	WithMatch2 int `json:"with_match_2" yaml:"with_match_2"`

	// WithMatch43 counts selected variants having a tier-4 or a tier-3
	// match. A variant with both is counted once.
	WithMatch43 int `json:"with_match_4_or_3" yaml:"with_match_4_or_3"`
}

// RankOutcome is the complete result of one ranking run.
type RankOutcome struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	Timestamp  time.Time       `json:"timestamp" yaml:"timestamp"`
	DurationMs int64           `json:"duration_ms" yaml:"duration_ms"`
	Config     RunConfig       `json:"config" yaml:"config"`
	Summary    ResultSummary   `json:"summary" yaml:"summary"`
	Variants   []ScoredVariant `json:"variants" yaml:"variants"`
}
