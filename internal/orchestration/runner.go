// Package orchestration runs the ranking pipeline end to end: input checks,
// scoring, caching and result summary.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spboyer/comborank/internal/cache"
	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
	"github.com/spboyer/comborank/internal/ranking"
)

// runIDLayout formats the timestamp part of a run ID.
const runIDLayout = "20060102T150405Z"

// newRunID returns "rank-<UTC timestamp>-<8 hex chars>". The random suffix
// keeps IDs of runs started within the same second distinct, since the ID
// names stored results and uploaded blobs.
func newRunID(t time.Time) string {
	return "rank-" + t.UTC().Format(runIDLayout) + "-" + uuid.NewString()[:8]
}

// Input is everything a ranking run consumes.
type Input struct {
	Variants []models.Variant
	Rounds   []models.Round
	Config   models.RunConfig
}

// Runner orchestrates ranking runs.
type Runner struct {
	// Result caching
	cache *cache.Cache

	now func() time.Time

	// Progress tracking
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRankStart    EventType = "rank_start"
	EventRankProgress EventType = "rank_progress"
	EventRankCached   EventType = "rank_cached"
	EventRankComplete EventType = "rank_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType  EventType
	Scored     int
	Total      int
	DurationMs int64
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCache enables result caching
func WithCache(c *cache.Cache) RunnerOption {
	return func(r *Runner) {
		r.cache = c
	}
}

// WithClock overrides the time source used for run IDs and durations.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a new runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		now:       time.Now,
		listeners: []ProgressListener{},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run validates the input, ranks the variants and summarizes the selection.
// Missing variants, missing rounds and invalid weights are reported in that
// order before any other check.
func (r *Runner) Run(ctx context.Context, in Input) (*models.RankOutcome, error) {
	cfg := in.Config

	if len(in.Variants) == 0 {
		return nil, models.ErrNoVariants
	}
	if len(in.Rounds) == 0 {
		return nil, models.ErrNoRounds
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if stats := metrics.DescribeVariants(in.Variants, cfg.TotalNumbers, cfg.NumbersPerCombo); stats.OffSize > 0 {
		slog.Warn("Some variants do not have the configured size",
			"count", stats.OffSize, "numbers_per_combo", cfg.NumbersPerCombo)
	}

	startTime := r.now()
	total := len(in.Variants)

	r.notifyProgress(ProgressEvent{EventType: EventRankStart, Total: total})

	selected, err := r.rank(ctx, in, total)
	if err != nil {
		return nil, err
	}

	duration := r.now().Sub(startTime)
	r.notifyProgress(ProgressEvent{
		EventType:  EventRankComplete,
		Scored:     total,
		Total:      total,
		DurationMs: duration.Milliseconds(),
	})

	slog.Debug("Ranking complete", "variants", total, "rounds", len(in.Rounds),
		"selected", len(selected), "duration", duration)

	return &models.RankOutcome{
		RunID:      newRunID(startTime),
		Timestamp:  startTime,
		DurationMs: duration.Milliseconds(),
		Config:     cfg,
		Summary:    metrics.Summarize(selected, total, len(in.Rounds)),
		Variants:   selected,
	}, nil
}

// rank scores the input, going through the cache when one is configured.
func (r *Runner) rank(ctx context.Context, in Input, total int) ([]models.ScoredVariant, error) {
	cfg := in.Config

	var key string
	if r.cache != nil {
		k, err := cache.Key(in.Variants, in.Rounds, cfg.Weights, cfg.NumbersPerCombo, cfg.OutputCount)
		if err != nil {
			slog.Warn("Computing cache key failed, scoring without cache", "error", err)
		} else {
			key = k
			if selected, ok := r.cache.Get(key); ok {
				slog.Debug("Using cached ranking", "key", key)
				r.notifyProgress(ProgressEvent{EventType: EventRankCached, Scored: total, Total: total})
				return selected, nil
			}
		}
	}

	selected, err := ranking.Rank(ctx, in.Variants, in.Rounds, cfg.Weights, ranking.Options{
		K:           cfg.NumbersPerCombo,
		OutputCount: cfg.OutputCount,
		Workers:     cfg.Workers,
		OnProgress: func(scored, total int) {
			r.notifyProgress(ProgressEvent{EventType: EventRankProgress, Scored: scored, Total: total})
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ranking variants: %w", err)
	}

	if key != "" {
		if err := r.cache.Put(key, selected); err != nil {
			slog.Warn("Failed to cache ranking", "error", err)
		}
	}
	return selected, nil
}

// IsInputError reports whether err was caused by the user's input rather
// than by the environment. Unreadable or malformed input files count as
// input errors.
func IsInputError(err error) bool {
	var parseErr *dataset.ParseError
	switch {
	case errors.As(err, &parseErr):
		return true
	case errors.Is(err, models.ErrNoVariants),
		errors.Is(err, models.ErrNoRounds),
		errors.Is(err, models.ErrInvalidWeights),
		errors.Is(err, models.ErrInvalidConfig),
		errors.Is(err, models.ErrEmptyVariant):
		return true
	default:
		return false
	}
}
