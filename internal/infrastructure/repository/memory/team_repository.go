package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palabianco/basketstats/internal/domain/team"
)

type TeamRepository struct {
	mu   sync.RWMutex
	byID map[string]team.Team
}

func NewTeamRepository(items []team.Team) *TeamRepository {
	byID := make(map[string]team.Team, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &TeamRepository{byID: byID}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.byID))
	for _, item := range r.byID {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	return item, ok, nil
}

func (r *TeamRepository) GetMain(_ context.Context) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.byID {
		if item.IsMain {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[item.ID] = item
	return nil
}

func (r *TeamRepository) UnsetMainExcept(_ context.Context, keepID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.byID {
		if id == keepID || !item.IsMain {
			continue
		}
		item.IsMain = false
		r.byID[id] = item
	}

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	return nil
}
