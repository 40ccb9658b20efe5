package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabianco/basketstats/internal/domain/settings"
	"github.com/palabianco/basketstats/internal/infrastructure/repository/memory"
)

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(memory.NewSettingsRepository(memory.SeedSettings()))

	current, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BasketStats Pro", current.AppName)
	assert.Equal(t, settings.ThemeLight, current.Theme)

	current.Theme = settings.ThemeDark
	current.AppName = "  4 FUN Stats  "
	saved, err := svc.SaveSettings(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, "4 FUN Stats", saved.AppName)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.ThemeDark, got.Theme)
}

func TestSaveSettingsValidates(t *testing.T) {
	svc := NewSettingsService(memory.NewSettingsRepository(memory.SeedSettings()))

	_, err := svc.SaveSettings(context.Background(), settings.Settings{Theme: "sepia", AppName: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SaveSettings(context.Background(), settings.Settings{Theme: settings.ThemeLight})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

var _ settings.Repository = (*memory.SettingsRepository)(nil)
