package rank

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/TobiSchelling/storyrank/internal/story"
)

// Weights multiplies the level 1, 2 and 3 counts.
type Weights [Levels]float64

// Result is a scored story.
type Result struct {
	ID     string
	Score  float64
	Counts Counts
}

// Score combines counts into a single weighted score.
func Score(c Counts, w Weights) float64 {
	var total float64
	for i := range c {
		total += float64(c[i]) * w[i]
	}
	return total
}

// Scorer scores every story in a working set.
type Scorer struct {
	weights Weights
	workers int
}

// NewScorer creates a scorer. workers <= 1 scores serially.
func NewScorer(weights Weights, workers int) *Scorer {
	if workers < 1 {
		workers = 1
	}
	return &Scorer{weights: weights, workers: workers}
}

// ScoreAll returns one result per story in the working set, in input order.
func (s *Scorer) ScoreAll(ctx context.Context, working *story.Store) ([]Result, error) {
	walker := NewWalker(working)
	stories := working.Stories()
	results := make([]Result, len(stories))

	score := func(i int) {
		id := stories[i].ID
		c := walker.Counts(id)
		results[i] = Result{ID: id, Score: Score(c, s.weights), Counts: c}
	}

	if s.workers == 1 {
		for i := range stories {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			score(i)
		}
		return results, nil
	}

	// Each goroutine owns results[i]; the store is read-only from here on.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range stories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Order sorts results by descending score, breaking ties by ascending id.
func Order(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
}

// Top returns the first n results, or all of them when fewer exist.
func Top(results []Result, n int) []Result {
	if n < 0 {
		n = 0
	}
	if n > len(results) {
		n = len(results)
	}
	return results[:n]
}

// Rank scores the working set, orders it and keeps the top n.
func (s *Scorer) Rank(ctx context.Context, working *story.Store, n int) ([]Result, error) {
	results, err := s.ScoreAll(ctx, working)
	if err != nil {
		return nil, err
	}
	Order(results)
	return Top(results, n), nil
}
