package domain

import "context"

// Durable storage keys. Values are JSON text.
const (
	KeyEvents    = "events_cache"
	KeyUser      = "mock_user"
	KeyTenant    = "mock_tenant"
	KeyPasswords = "user_passwords"
	KeySettings  = "school_link_settings"
)

// KVStore is a persistent key-value backend. Get returns ErrKeyNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
