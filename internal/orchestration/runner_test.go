package orchestration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spboyer/comborank/internal/cache"
	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() Input {
	cfg := models.DefaultRunConfig()
	cfg.OutputCount = 2
	return Input{
		Variants: []models.Variant{
			{ID: "a", Numbers: []int{40, 41, 42, 43}},
			{ID: "b", Numbers: []int{1, 2, 3, 4}},
			{ID: "c", Numbers: []int{1, 2, 3, 9}},
		},
		Rounds: []models.Round{
			{1, 2, 3, 4},
			{1, 2, 3, 5},
			{9, 10, 11, 12},
		},
		Config: cfg,
	}
}

// steppingClock returns start, then advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

func TestRunner_Run(t *testing.T) {
	start := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	r := NewRunner(WithClock(steppingClock(start, 1500*time.Millisecond)))

	outcome, err := r.Run(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Regexp(t, `^rank-20260304T050607Z-[0-9a-f]{8}$`, outcome.RunID)
	assert.Equal(t, start, outcome.Timestamp)
	assert.Equal(t, int64(1500), outcome.DurationMs)
	assert.Equal(t, 2, outcome.Config.OutputCount)

	require.Len(t, outcome.Variants, 2)
	assert.Equal(t, "b", outcome.Variants[0].ID)
	assert.Equal(t, "c", outcome.Variants[1].ID)
	assert.GreaterOrEqual(t, outcome.Variants[0].Score, outcome.Variants[1].Score)

	assert.Equal(t, 2, outcome.Summary.Selected)
	assert.Equal(t, 3, outcome.Summary.TotalVariants)
	assert.Equal(t, 3, outcome.Summary.TotalRounds)
	assert.Equal(t, 1, outcome.Summary.WithMatch4)
	assert.Equal(t, 2, outcome.Summary.WithMatch3)
	// b matches both a full and a near-full round but is counted once.
	assert.Equal(t, 2, outcome.Summary.WithMatch43)
	assert.InDelta(t, (outcome.Variants[0].Score+outcome.Variants[1].Score)/2, outcome.Summary.AvgScore, 1e-12)
}

func TestRunner_RunIDsUniqueWithinSecond(t *testing.T) {
	start := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	r := NewRunner(WithClock(func() time.Time { return start }))

	seen := make(map[string]bool)
	for range 20 {
		outcome, err := r.Run(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.False(t, seen[outcome.RunID], "duplicate run ID %s", outcome.RunID)
		seen[outcome.RunID] = true
	}
}

func TestRunner_PreconditionOrder(t *testing.T) {
	badWeights := models.Weights{Frequency: 50, MatchComplete: 50, MatchPartial: 50}

	tests := []struct {
		name   string
		mutate func(*Input)
		want   error
	}{
		{"no variants first", func(in *Input) {
			in.Variants = nil
			in.Rounds = nil
			in.Config.Weights = badWeights
		}, models.ErrNoVariants},
		{"then no rounds", func(in *Input) {
			in.Rounds = nil
			in.Config.Weights = badWeights
		}, models.ErrNoRounds},
		{"then weights", func(in *Input) {
			in.Config.Weights = badWeights
			in.Config.TotalNumbers = 1
		}, models.ErrInvalidWeights},
		{"then config", func(in *Input) {
			in.Config.NumbersPerCombo = 30
		}, models.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput()
			tt.mutate(&in)

			var events []ProgressEvent
			r := NewRunner()
			r.OnProgress(func(e ProgressEvent) { events = append(events, e) })

			_, err := r.Run(context.Background(), in)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, events, "no work should start when preconditions fail")
		})
	}
}

func TestRunner_WeightsSumMessage(t *testing.T) {
	in := sampleInput()
	in.Config.Weights.Distribution = 9

	_, err := NewRunner().Run(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights must sum to 100%, got 99%")
}

func TestRunner_EmptyVariantFailsRun(t *testing.T) {
	in := sampleInput()
	in.Variants = append(in.Variants, models.Variant{ID: "blank"})

	_, err := NewRunner().Run(context.Background(), in)
	require.ErrorIs(t, err, models.ErrEmptyVariant)
	assert.True(t, IsInputError(err))
}

func TestRunner_ProgressEvents(t *testing.T) {
	in := sampleInput()
	in.Variants = nil
	for i := range 600 {
		in.Variants = append(in.Variants, models.Variant{ID: fmt.Sprint(i), Numbers: []int{i%49 + 1, (i+7)%49 + 1, (i+19)%49 + 1, (i+31)%49 + 1}})
	}

	var mu sync.Mutex
	var events []ProgressEvent
	r := NewRunner()
	r.OnProgress(func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})

	_, err := r.Run(context.Background(), in)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(events), 3)
	assert.Equal(t, EventRankStart, events[0].EventType)
	assert.Equal(t, 600, events[0].Total)

	last := events[len(events)-1]
	assert.Equal(t, EventRankComplete, last.EventType)
	assert.Equal(t, 600, last.Scored)

	var progress int
	for _, e := range events[1 : len(events)-1] {
		assert.Equal(t, EventRankProgress, e.EventType)
		progress++
	}
	assert.Equal(t, 3, progress, "600 variants are scored in three chunks")
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, sampleInput())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsInputError(err))
}

func TestRunner_Cache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	r := NewRunner(WithCache(cache.New(dir)))

	first, err := r.Run(context.Background(), sampleInput())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var events []EventType
	r.OnProgress(func(e ProgressEvent) { events = append(events, e.EventType) })

	second, err := r.Run(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, first.Variants, second.Variants)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, []EventType{EventRankStart, EventRankCached, EventRankComplete}, events)

	// A different output count is a different entry.
	in := sampleInput()
	in.Config.OutputCount = 3
	third, err := r.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, third.Variants, 3)
}

func TestIsInputError(t *testing.T) {
	parseErr := &dataset.ParseError{Kind: "rounds", Source: "r.txt", Line: 2, Err: errors.New(`invalid number "x"`)}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no variants", models.ErrNoVariants, true},
		{"no rounds", models.ErrNoRounds, true},
		{"weights", fmt.Errorf("%w: weights must sum to 100%%, got 90%%", models.ErrInvalidWeights), true},
		{"config", fmt.Errorf("wrapped: %w", models.ErrInvalidConfig), true},
		{"empty variant", fmt.Errorf("ranking variants: %w", models.ErrEmptyVariant), true},
		{"parse error", fmt.Errorf("loading: %w", parseErr), true},
		{"cancelled", context.Canceled, false},
		{"other", errors.New("disk on fire"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInputError(tt.err))
		})
	}
}
