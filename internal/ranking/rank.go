package ranking

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/spboyer/comborank/internal/models"
	"golang.org/x/sync/errgroup"
)

// chunkSize is the number of variants a worker scores between progress
// reports and cancellation checks.
const chunkSize = 256

// Options tunes a Rank call.
type Options struct {
	// K is the variant size used for match tiers. K <= 0 uses each
	// variant's own distinct-number count.
	K int

	// OutputCount caps the number of returned variants. Values <= 0, or
	// larger than the number of variants, return every variant.
	OutputCount int

	// Workers > 1 scores chunks of variants concurrently. The ranking is
	// identical to a sequential run.
	Workers int

	// OnProgress, when set, is called after each scored chunk with the
	// number of variants scored so far. Calls are serialized and scored
	// never decreases between calls, even with Workers > 1.
	OnProgress func(scored, total int)
}

// Rank scores every variant against rounds, sorts by score descending and
// truncates the result to opts.OutputCount. Variants with equal scores keep
// their input order.
//
// Rank refuses to start unless variants and rounds are present and the
// weights are valid.
func Rank(ctx context.Context, variants []models.Variant, rounds []models.Round, weights models.Weights, opts Options) ([]models.ScoredVariant, error) {
	if len(variants) == 0 {
		return nil, models.ErrNoVariants
	}
	if len(rounds) == 0 {
		return nil, models.ErrNoRounds
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	scorer, err := NewScorer(rounds, weights, opts.K)
	if err != nil {
		return nil, err
	}

	scored, err := scoreAll(ctx, scorer, variants, opts)
	if err != nil {
		return nil, err
	}

	SortByScore(scored)
	return Top(scored, opts.OutputCount), nil
}

// SortByScore sorts scored variants by score descending. The sort is stable.
func SortByScore(scored []models.ScoredVariant) {
	slices.SortStableFunc(scored, func(a, b models.ScoredVariant) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// Top returns the first n entries of scored, or all of them when n <= 0 or
// n exceeds the length.
func Top(scored []models.ScoredVariant, n int) []models.ScoredVariant {
	if n <= 0 || n >= len(scored) {
		return scored
	}
	return scored[:n]
}

func scoreAll(ctx context.Context, scorer *Scorer, variants []models.Variant, opts Options) ([]models.ScoredVariant, error) {
	total := len(variants)
	scored := make([]models.ScoredVariant, total)
	var (
		mu   sync.Mutex
		done int
	)

	scoreChunk := func(start, end int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := start; i < end; i++ {
			sv, err := scorer.Score(variants[i])
			if err != nil {
				return err
			}
			scored[i] = sv
		}
		mu.Lock()
		defer mu.Unlock()
		done += end - start
		if opts.OnProgress != nil {
			opts.OnProgress(done, total)
		}
		return nil
	}

	if opts.Workers <= 1 {
		for start := 0; start < total; start += chunkSize {
			if err := scoreChunk(start, min(start+chunkSize, total)); err != nil {
				return nil, err
			}
		}
		return scored, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	ctx = gctx
	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		g.Go(func() error {
			return scoreChunk(start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}
