package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"schoollink/internal/domain"
)

type kvRepository struct {
	DB *sql.DB
}

// NewKVRepository returns a KVStore backed by the kv_store table.
func NewKVRepository(db *sql.DB) domain.KVStore {
	return &kvRepository{DB: db}
}

// EnsureSchema creates the kv_store table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`
	var value string
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	return err
}

func (r *kvRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`
	_, err := r.DB.ExecContext(ctx, query, key)
	return err
}
