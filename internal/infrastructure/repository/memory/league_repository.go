package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palabianco/basketstats/internal/domain/league"
)

type LeagueRepository struct {
	mu   sync.RWMutex
	byID map[string]league.League
}

func NewLeagueRepository(items []league.League) *LeagueRepository {
	byID := make(map[string]league.League, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &LeagueRepository{byID: byID}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, id string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *LeagueRepository) Upsert(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
