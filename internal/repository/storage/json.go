// Package storage maps domain records onto JSON values in a key-value store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"schoollink/internal/domain"
)

// loadJSON decodes the value under key into dest. found is false when the key is absent or empty.
func loadJSON(ctx context.Context, kv domain.KVStore, key string, dest any) (found bool, err error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("%w: %s: %w", domain.ErrStorageCorruption, key, err)
	}
	return true, nil
}

func saveJSON(ctx context.Context, kv domain.KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrStorageWrite, key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorageWrite, key, err)
	}
	return nil
}
