package service

import (
	"context"

	"github.com/forgo/courtside/matchmaker/internal/model"
)

// SlotRepairer fills one open position of a partially fixed group
type SlotRepairer struct {
	scorer *Scorer
}

// NewSlotRepairer creates a repairer over a configured scorer
func NewSlotRepairer(scorer *Scorer) *SlotRepairer {
	return &SlotRepairer{scorer: scorer}
}

// BestAddition tries each pool member as a single addition to fixed and
// returns the highest scorer. It returns nil when the pool is empty, when
// fixed and pool together cannot reach size, or when every completion is
// excluded by a strict policy.
func (r *SlotRepairer) BestAddition(ctx context.Context, fixed, pool []model.Player, size int) (*model.Replacement, error) {
	if len(fixed) > size {
		return nil, ErrTooManyFixedPlayers
	}
	if len(fixed) == size {
		return nil, nil
	}

	taken := make(map[string]bool, len(fixed))
	for _, p := range fixed {
		taken[p.ID] = true
	}
	eligible := make([]model.Player, 0, len(pool))
	for _, p := range pool {
		if taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		eligible = append(eligible, p)
	}
	if len(eligible) == 0 || len(fixed)+len(eligible) < size {
		return nil, nil
	}

	completes := len(fixed)+1 == size
	var best *model.GroupScore
	var bestID string
	for _, candidate := range eligible {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var scored model.GroupScore
		if completes {
			group := make([]model.Player, 0, size)
			group = append(group, fixed...)
			group = append(group, candidate)
			scored = r.scorer.Score(group)
		} else {
			scored = r.scorer.ScorePartial(fixed, candidate)
		}
		if scored.Breakdown.Excluded {
			continue
		}
		if best == nil || scored.Score > best.Score ||
			(scored.Score == best.Score && candidate.ID < bestID) {
			s := scored
			best = &s
			bestID = candidate.ID
		}
	}

	if best == nil {
		return nil, nil
	}
	return &model.Replacement{PlayerID: bestID, Score: best.Score}, nil
}
