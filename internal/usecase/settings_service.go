package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/palabianco/basketstats/internal/domain/settings"
)

type SettingsService struct {
	repo settings.Repository
}

func NewSettingsService(repo settings.Repository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) GetSettings(ctx context.Context) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "SettingsService.GetSettings")
	defer span.End()

	item, err := s.repo.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return item, nil
}

func (s *SettingsService) SaveSettings(ctx context.Context, item settings.Settings) (settings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "SettingsService.SaveSettings")
	defer span.End()

	item.AppName = strings.TrimSpace(item.AppName)
	item.AppLogoURL = strings.TrimSpace(item.AppLogoURL)

	if err := item.Validate(); err != nil {
		return settings.Settings{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return settings.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	return item, nil
}
