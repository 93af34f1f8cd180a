package domain

import "context"

// Settings are the widget display preferences.
type Settings struct {
	AlwaysOnTop   bool `json:"alwaysOnTop"`
	Opacity       int  `json:"opacity"`
	AutoLaunch    bool `json:"autoLaunch"`
	Notifications bool `json:"notifications"`
}

// DefaultSettings returns the preferences used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		AlwaysOnTop:   false,
		Opacity:       100,
		AutoLaunch:    false,
		Notifications: true,
	}
}

// SettingsPatch holds optional updates to Settings.
type SettingsPatch struct {
	AlwaysOnTop   *bool `json:"alwaysOnTop"`
	Opacity       *int  `json:"opacity"`
	AutoLaunch    *bool `json:"autoLaunch"`
	Notifications *bool `json:"notifications"`
}

type SettingsRepository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s Settings) error
}

type SettingsService interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, patch SettingsPatch) (Settings, error)
}
