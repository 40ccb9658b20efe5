package memory

import (
	"context"
	"sync"

	"github.com/palabianco/basketstats/internal/domain/settings"
)

type SettingsRepository struct {
	mu      sync.RWMutex
	current settings.Settings
}

func NewSettingsRepository(current settings.Settings) *SettingsRepository {
	return &SettingsRepository{current: current}
}

func (r *SettingsRepository) Get(_ context.Context) (settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current, nil
}

func (r *SettingsRepository) Save(_ context.Context, s settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = s
	return nil
}
