package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// CourtAllocator assigns one non-overlapping group per court, greedily and
// in caller order. Court i+1 only sees players court i left behind.
type CourtAllocator struct {
	generator *CandidateGenerator
	scorer    *Scorer
	workers   int
	logger    *slog.Logger
}

// NewCourtAllocator creates an allocator. workers bounds how many
// candidates of one court are scored concurrently.
func NewCourtAllocator(generator *CandidateGenerator, scorer *Scorer, workers int, logger *slog.Logger) *CourtAllocator {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CourtAllocator{
		generator: generator,
		scorer:    scorer,
		workers:   workers,
		logger:    logger,
	}
}

// Allocate fills courts in order from bench. It stops as soon as the
// remaining pool cannot fill a court, so later courts get no proposal.
// The players left over are returned alongside the matches.
func (a *CourtAllocator) Allocate(ctx context.Context, bench []model.Player, courts []int, size int) ([]model.MatchCandidate, []model.Player, error) {
	remaining := make([]model.Player, len(bench))
	copy(remaining, bench)

	matches := make([]model.MatchCandidate, 0, len(courts))
	for _, court := range courts {
		if len(remaining) < size {
			a.logger.Debug("bench exhausted",
				slog.Int("court", court),
				slog.Int("remaining", len(remaining)),
			)
			break
		}

		best, err := a.BestGroup(ctx, remaining, size)
		if err != nil {
			return nil, nil, err
		}
		if best == nil {
			a.logger.Debug("no eligible group for court", slog.Int("court", court))
			continue
		}

		breakdown := best.Breakdown
		matches = append(matches, model.MatchCandidate{
			CourtNumber: court,
			PlayerIDs:   best.PlayerIDs,
			Score:       best.Score,
			Breakdown:   &breakdown,
		})
		remaining = withoutPlayers(remaining, best.PlayerIDs)

		a.logger.Debug("court allocated",
			slog.Int("court", court),
			slog.Any("players", best.PlayerIDs),
			slog.Float64("score", best.Score),
		)
	}

	return matches, remaining, nil
}

// BestGroup scores every candidate drawn from pool and returns the highest
// scorer that no strict policy excluded, or nil if none survive
func (a *CourtAllocator) BestGroup(ctx context.Context, pool []model.Player, size int) (*model.GroupScore, error) {
	candidates, err := a.generator.Generate(pool, size)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	scores, err := a.scoreAll(ctx, candidates)
	if err != nil {
		return nil, err
	}

	var best *model.GroupScore
	for i := range scores {
		if scores[i].Breakdown.Excluded {
			continue
		}
		if best == nil || betterScore(scores[i], *best) {
			best = &scores[i]
		}
	}

	a.logger.Debug("candidates scored",
		slog.Int("pool", len(pool)),
		slog.Int("candidates", len(candidates)),
	)
	return best, nil
}

// scoreAll scores candidates with at most a.workers in flight. Each worker
// writes only its own slot, so no locking is needed.
func (a *CourtAllocator) scoreAll(ctx context.Context, candidates [][]model.Player) ([]model.GroupScore, error) {
	scores := make([]model.GroupScore, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = a.scorer.Score(candidates[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// withoutPlayers returns pool minus the given IDs
func withoutPlayers(pool []model.Player, ids []string) []model.Player {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := make([]model.Player, 0, len(pool))
	for _, p := range pool {
		if !drop[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
