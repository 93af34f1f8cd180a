package storage

import (
	"context"
	"fmt"

	"schoollink/internal/domain"
)

type accountRepository struct {
	kv domain.KVStore
}

func NewAccountRepository(kv domain.KVStore) domain.AccountRepository {
	return &accountRepository{kv: kv}
}

func (r *accountRepository) LoadUser(ctx context.Context) (*domain.UserProfile, error) {
	var u domain.UserProfile
	found, err := loadJSON(ctx, r.kv, domain.KeyUser, &u)
	if err != nil || !found || u.UID == "" {
		return nil, err
	}
	return &u, nil
}

func (r *accountRepository) SaveUser(ctx context.Context, u domain.UserProfile) error {
	return saveJSON(ctx, r.kv, domain.KeyUser, u)
}

func (r *accountRepository) LoadTenant(ctx context.Context) (*domain.Tenant, error) {
	var t domain.Tenant
	found, err := loadJSON(ctx, r.kv, domain.KeyTenant, &t)
	if err != nil || !found || t.ID == "" {
		return nil, err
	}
	return &t, nil
}

func (r *accountRepository) SaveTenant(ctx context.Context, t domain.Tenant) error {
	return saveJSON(ctx, r.kv, domain.KeyTenant, t)
}

// LoadPINs returns an empty map when no PIN was ever changed.
func (r *accountRepository) LoadPINs(ctx context.Context) (map[string]domain.PINRecord, error) {
	pins := map[string]domain.PINRecord{}
	if _, err := loadJSON(ctx, r.kv, domain.KeyPasswords, &pins); err != nil {
		return nil, err
	}
	if pins == nil {
		pins = map[string]domain.PINRecord{}
	}
	return pins, nil
}

func (r *accountRepository) SavePINs(ctx context.Context, pins map[string]domain.PINRecord) error {
	return saveJSON(ctx, r.kv, domain.KeyPasswords, pins)
}

// Clear removes the session user and tenant binding. Stored PINs survive sign-out.
func (r *accountRepository) Clear(ctx context.Context) error {
	for _, key := range []string{domain.KeyUser, domain.KeyTenant} {
		if err := r.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}
