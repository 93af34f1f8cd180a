package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"schoollink/internal/domain"
)

type eventRepository struct {
	kv domain.KVStore
}

// NewEventRepository returns the durable mirror of the event collection, stored
// wholesale under the events_cache key.
func NewEventRepository(kv domain.KVStore) domain.EventRepository {
	return &eventRepository{kv: kv}
}

// Load returns an empty collection when nothing is stored. Content that is not a
// JSON array of events yields an error wrapping domain.ErrStorageCorruption.
func (r *eventRepository) Load(ctx context.Context) ([]domain.Event, error) {
	data, err := r.kv.Get(ctx, domain.KeyEvents)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", domain.KeyEvents, err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []domain.Event{}, nil
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s is not a sequence", domain.ErrStorageCorruption, domain.KeyEvents)
	}
	events := []domain.Event{}
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageCorruption, domain.KeyEvents, err)
	}
	return events, nil
}

func (r *eventRepository) SaveAll(ctx context.Context, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}
	return saveJSON(ctx, r.kv, domain.KeyEvents, events)
}
