package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/palabianco/basketstats/internal/domain/settings"
	qb "github.com/palabianco/basketstats/internal/platform/querybuilder"
)

// app_settings holds a single row with id = 1.
const settingsRowID = 1

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	query, args, err := qb.Select("theme", "app_name", "app_logo_url").From("app_settings").
		Where(qb.Eq("id", settingsRowID)).
		ToSQL()
	if err != nil {
		return settings.Settings{}, fmt.Errorf("build get settings query: %w", err)
	}

	var row settings.Settings
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.Default(), nil
		}
		return settings.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return row, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	query, args, err := qb.InsertInto("app_settings").
		Columns("id", "theme", "app_name", "app_logo_url").
		Values(settingsRowID, s.Theme, s.AppName, s.AppLogoURL).
		Suffix(`ON CONFLICT (id)
DO UPDATE SET
    theme = EXCLUDED.theme,
    app_name = EXCLUDED.app_name,
    app_logo_url = EXCLUDED.app_logo_url,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build save settings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
