package webapi

import (
	"time"

	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
)

// RankRequest is the body of POST /api/rank. Each input may be given as
// text in the file format or as structured JSON, but not both.
type RankRequest struct {
	VariantsText string           `json:"variants_text,omitempty"`
	Variants     []models.Variant `json:"variants,omitempty"`
	RoundsText   string           `json:"rounds_text,omitempty"`
	Rounds       []models.Round   `json:"rounds,omitempty"`

	// Config overrides individual RunConfig fields; omitted fields keep
	// their defaults. A weights object replaces the default weights as a
	// whole.
	Config map[string]any `json:"config,omitempty"`
}

// StatsRequest is the body of POST /api/stats.
type StatsRequest struct {
	VariantsText    string           `json:"variants_text,omitempty"`
	Variants        []models.Variant `json:"variants,omitempty"`
	RoundsText      string           `json:"rounds_text,omitempty"`
	Rounds          []models.Round   `json:"rounds,omitempty"`
	TotalNumbers    int              `json:"total_numbers,omitempty"`
	NumbersPerCombo int              `json:"numbers_per_combo,omitempty"`
}

// StatsResponse describes uploaded inputs.
type StatsResponse struct {
	Variants metrics.VariantStats `json:"variants"`
	Rounds   metrics.RoundStats   `json:"rounds"`
}

// RunSummary is the API response for a single run in the list.
type RunSummary struct {
	ID            string    `json:"id"`
	Selected      int       `json:"selected"`
	TotalVariants int       `json:"totalVariants"`
	TotalRounds   int       `json:"totalRounds"`
	AvgScore      float64   `json:"avgScore"`
	MaxScore      float64   `json:"maxScore"`
	Duration      float64   `json:"duration"`
	Timestamp     time.Time `json:"timestamp"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
