package ranking

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/spboyer/comborank/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomInputs builds deterministic pseudo-random variants and rounds.
func randomInputs(seed int64, nVariants, nRounds, k, pool int) ([]models.Variant, []models.Round) {
	rng := rand.New(rand.NewSource(seed))
	variants := make([]models.Variant, nVariants)
	for i := range variants {
		perm := rng.Perm(pool)[:k]
		nums := make([]int, k)
		for j, p := range perm {
			nums[j] = p + 1
		}
		variants[i] = models.Variant{ID: fmt.Sprintf("v%d", i+1), Numbers: nums}
	}
	rounds := make([]models.Round, nRounds)
	for i := range rounds {
		perm := rng.Perm(pool)[:k+2]
		r := make(models.Round, len(perm))
		for j, p := range perm {
			r[j] = p + 1
		}
		rounds[i] = r
	}
	return variants, rounds
}

func TestRank_Preconditions(t *testing.T) {
	variants := []models.Variant{{ID: "1", Numbers: []int{1, 2, 3, 4}}}
	rounds := []models.Round{{1, 2, 3, 4}}
	ctx := context.Background()

	_, err := Rank(ctx, nil, rounds, models.DefaultWeights(), Options{K: 4})
	assert.ErrorIs(t, err, models.ErrNoVariants)

	_, err = Rank(ctx, variants, nil, models.DefaultWeights(), Options{K: 4})
	assert.ErrorIs(t, err, models.ErrNoRounds)

	bad := models.Weights{Frequency: 45, MatchComplete: 33, MatchPartial: 11, Distribution: 10}
	_, err = Rank(ctx, variants, rounds, bad, Options{K: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidWeights)
	assert.Contains(t, err.Error(), "got 99%")
}

func TestRank_NoVariantsCheckedBeforeRounds(t *testing.T) {
	_, err := Rank(context.Background(), nil, nil, models.Weights{}, Options{})
	assert.ErrorIs(t, err, models.ErrNoVariants)
}

func TestRank_EmptyVariantFailsRun(t *testing.T) {
	variants := []models.Variant{
		{ID: "ok", Numbers: []int{1, 2, 3, 4}},
		{ID: "bad", Numbers: nil},
	}
	_, err := Rank(context.Background(), variants, []models.Round{{1, 2}}, models.DefaultWeights(), Options{K: 4})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrEmptyVariant)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestRank_SortsDescending(t *testing.T) {
	variants, rounds := randomInputs(1, 500, 60, 4, 30)

	ranked, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4})
	require.NoError(t, err)
	require.Len(t, ranked, 500)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_StableForTies(t *testing.T) {
	// Only distribution counts, so every balanced variant ties at 1.0 and
	// every single-parity variant ties at 0.
	weights := models.Weights{Distribution: 100}
	variants := []models.Variant{
		{ID: "even-1", Numbers: []int{2, 4, 6, 8}},
		{ID: "mix-1", Numbers: []int{1, 2, 3, 4}},
		{ID: "odd-1", Numbers: []int{1, 3, 5, 7}},
		{ID: "mix-2", Numbers: []int{5, 6, 7, 8}},
		{ID: "even-2", Numbers: []int{10, 12, 14, 16}},
		{ID: "mix-3", Numbers: []int{9, 10, 11, 12}},
	}

	ranked, err := Rank(context.Background(), variants, []models.Round{{1}}, weights, Options{K: 4})
	require.NoError(t, err)

	ids := make([]string, len(ranked))
	for i, sv := range ranked {
		ids[i] = sv.ID
	}
	assert.Equal(t, []string{"mix-1", "mix-2", "mix-3", "even-1", "odd-1", "even-2"}, ids)
}

func TestRank_OutputCountClamp(t *testing.T) {
	variants, rounds := randomInputs(2, 10, 5, 4, 20)

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"fewer than available", 3, 3},
		{"exactly available", 10, 10},
		{"more than available", 10000, 10},
		{"zero keeps all", 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4, OutputCount: tt.count})
			require.NoError(t, err)
			assert.Len(t, ranked, tt.want)
		})
	}
}

func TestRank_TruncationKeepsTopScores(t *testing.T) {
	variants, rounds := randomInputs(3, 200, 40, 4, 25)

	all, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4})
	require.NoError(t, err)
	top, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4, OutputCount: 20})
	require.NoError(t, err)

	assert.Equal(t, all[:20], top)
}

func TestRank_ScoresWithinUnitInterval(t *testing.T) {
	weightSets := []models.Weights{
		models.DefaultWeights(),
		{Frequency: 100},
		{MatchComplete: 100},
		{MatchPartial: 100},
		{Distribution: 100},
		{Frequency: 25, MatchComplete: 25, MatchPartial: 25, Distribution: 25},
		{Frequency: 5, MatchComplete: 80, MatchPartial: 5, Distribution: 10},
	}

	// A small pool forces many full and partial matches.
	variants, rounds := randomInputs(4, 300, 80, 4, 8)
	variants = append(variants, models.Variant{ID: "dupes", Numbers: []int{3, 3, 3, 3}})

	for _, w := range weightSets {
		t.Run(fmt.Sprintf("%+v", w), func(t *testing.T) {
			ranked, err := Rank(context.Background(), variants, rounds, w, Options{K: 4})
			require.NoError(t, err)
			for _, sv := range ranked {
				assert.GreaterOrEqual(t, sv.Score, 0.0, sv.ID)
				assert.LessOrEqual(t, sv.Score, 1.0+1e-12, sv.ID)
			}
		})
	}
}

func TestRank_ParallelMatchesSequential(t *testing.T) {
	variants, rounds := randomInputs(5, 3000, 120, 4, 49)

	seq, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4, OutputCount: 1000})
	require.NoError(t, err)
	par, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4, OutputCount: 1000, Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, seq, par)
}

func TestRank_DoesNotMutateInputs(t *testing.T) {
	variants := []models.Variant{
		{ID: "b", Numbers: []int{9, 8, 7, 6}},
		{ID: "a", Numbers: []int{1, 2, 3, 4}},
	}
	rounds := []models.Round{{1, 2, 3, 4}}

	ranked, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{K: 4})
	require.NoError(t, err)
	require.Equal(t, "a", ranked[0].ID)

	ranked[0].Numbers[0] = 99
	assert.Equal(t, []int{1, 2, 3, 4}, variants[1].Numbers)
	assert.Equal(t, "b", variants[0].ID)
	assert.Equal(t, models.Round{1, 2, 3, 4}, rounds[0])
}

func TestRank_Progress(t *testing.T) {
	variants, rounds := randomInputs(6, 1000, 10, 4, 30)

	var calls atomic.Int32
	var last atomic.Int64
	_, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{
		K: 4,
		OnProgress: func(scored, total int) {
			calls.Add(1)
			assert.Equal(t, 1000, total)
			last.Store(int64(scored))
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, int64(1000), last.Load())
}

func TestRank_ParallelProgressIsMonotonic(t *testing.T) {
	variants, rounds := randomInputs(8, 5000, 20, 4, 49)

	// Calls are serialized, so appending without a lock is safe under -race.
	var reported []int
	_, err := Rank(context.Background(), variants, rounds, models.DefaultWeights(), Options{
		K:       4,
		Workers: 8,
		OnProgress: func(scored, total int) {
			reported = append(reported, scored)
		},
	})
	require.NoError(t, err)

	require.Len(t, reported, (5000+chunkSize-1)/chunkSize)
	for i := 1; i < len(reported); i++ {
		assert.Greater(t, reported[i], reported[i-1], "progress went backwards at call %d", i)
	}
	assert.Equal(t, 5000, reported[len(reported)-1])
}

func TestRank_Cancelled(t *testing.T) {
	variants, rounds := randomInputs(7, 100, 10, 4, 30)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Rank(ctx, variants, rounds, models.DefaultWeights(), Options{K: 4})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Rank(ctx, variants, rounds, models.DefaultWeights(), Options{K: 4, Workers: 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTop(t *testing.T) {
	scored := []models.ScoredVariant{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	assert.Len(t, Top(scored, 2), 2)
	assert.Len(t, Top(scored, 3), 3)
	assert.Len(t, Top(scored, 5), 3)
	assert.Len(t, Top(scored, -1), 3)
}
