package settings

import "fmt"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the single app-wide configuration record.
type Settings struct {
	Theme      string `json:"theme" db:"theme" validate:"required,oneof=light dark"`
	AppName    string `json:"appName" db:"app_name" validate:"required"`
	AppLogoURL string `json:"appLogoUrl" db:"app_logo_url"`
}

// Default is what a fresh install starts with.
func Default() Settings {
	return Settings{
		Theme:   ThemeLight,
		AppName: "BasketStats Pro",
	}
}

func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if s.AppName == "" {
		return fmt.Errorf("app name is required")
	}
	return nil
}
