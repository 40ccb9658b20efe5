package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palabianco/basketstats/internal/domain/statline"
)

type StatLineRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]statline.Line
}

func NewStatLineRepository(items []statline.Line) *StatLineRepository {
	byMatch := make(map[string][]statline.Line)
	for _, item := range items {
		byMatch[item.MatchID] = append(byMatch[item.MatchID], item)
	}

	return &StatLineRepository{byMatch: byMatch}
}

func (r *StatLineRepository) ListByMatch(_ context.Context, matchID string) ([]statline.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := r.byMatch[matchID]
	out := make([]statline.Line, 0, len(lines))
	out = append(out, lines...)

	return out, nil
}

func (r *StatLineRepository) ListByMatches(_ context.Context, matchIDs []string) ([]statline.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.Line, 0, 32)
	for _, matchID := range matchIDs {
		out = append(out, r.byMatch[matchID]...)
	}

	return out, nil
}

func (r *StatLineRepository) ListByPlayer(_ context.Context, playerID string) ([]statline.Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statline.Line, 0, 16)
	for _, lines := range r.byMatch {
		for _, item := range lines {
			if item.PlayerID == playerID {
				out = append(out, item)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })

	return out, nil
}

func (r *StatLineRepository) ReplaceForMatch(_ context.Context, matchID string, lines []statline.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]statline.Line, 0, len(lines))
	stored = append(stored, lines...)
	r.byMatch[matchID] = stored

	return nil
}

func (r *StatLineRepository) DeleteByMatch(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byMatch, matchID)
	return nil
}

func (r *StatLineRepository) DeleteByPlayer(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for matchID, lines := range r.byMatch {
		kept := lines[:0]
		for _, item := range lines {
			if item.PlayerID != playerID {
				kept = append(kept, item)
			}
		}
		r.byMatch[matchID] = kept
	}

	return nil
}
