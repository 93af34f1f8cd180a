package storage

import (
	"context"

	"schoollink/internal/domain"
)

type settingsRepository struct {
	kv domain.KVStore
}

func NewSettingsRepository(kv domain.KVStore) domain.SettingsRepository {
	return &settingsRepository{kv: kv}
}

// Load returns nil when no settings were saved yet. Keys missing from the stored
// value keep their defaults.
func (r *settingsRepository) Load(ctx context.Context) (*domain.Settings, error) {
	s := domain.DefaultSettings()
	found, err := loadJSON(ctx, r.kv, domain.KeySettings, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s domain.Settings) error {
	return saveJSON(ctx, r.kv, domain.KeySettings, s)
}
