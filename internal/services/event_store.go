package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"schoollink/internal/domain"
)

// eventStore keeps the event collection in memory and mirrors every mutation to the
// repository. The whole collection is written on each change, and memory is only
// replaced once the write succeeded, so memory and mirror never diverge.
type eventStore struct {
	mu     sync.Mutex
	events []domain.Event

	repo           domain.EventRepository
	logger         *slog.Logger
	contextTimeout time.Duration

	now   func() time.Time
	newID func() (string, error)
}

func NewEventStore(repo domain.EventRepository, logger *slog.Logger, timeout time.Duration) domain.EventStore {
	return &eventStore{
		events:         []domain.Event{},
		repo:           repo,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		newID:          generateEventID,
	}
}

// Load replaces memory with the mirror's content. When the mirror is corrupt the
// store starts empty and the returned error wraps domain.ErrStorageCorruption; the
// caller decides whether to carry on.
func (s *eventStore) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.Load(ctx)
	if err != nil {
		s.events = []domain.Event{}
		if errors.Is(err, domain.ErrStorageCorruption) {
			s.logger.WarnContext(ctx, "event cache is corrupt, starting with an empty collection", "err", err)
			return err
		}
		return fmt.Errorf("load events: %w", err)
	}

	for i := range events {
		events[i].Category = domain.CanonicalCategory(string(events[i].Category))
		if !events[i].Visibility.Valid() {
			events[i].Visibility = domain.VisibilityPrivate
		}
	}
	s.events = events
	s.logger.DebugContext(ctx, "event cache loaded", "count", len(events))
	return nil
}

func (s *eventStore) List(_ context.Context) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEvents(s.events)
}

func (s *eventStore) Get(_ context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		e := s.events[i]
		return &e, nil
	}
	return nil, domain.ErrNotFound
}

func (s *eventStore) Create(ctx context.Context, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.uniqueID(ctx)
	if err != nil {
		return nil, err
	}

	now := domain.NewInstant(s.now())
	e := domain.Event{
		ID:         id,
		TenantID:   domain.DefaultTenantID,
		OwnerUID:   domain.DefaultOwnerUID,
		Visibility: domain.VisibilityPrivate,
		StartAt:    now,
		EndAt:      now,
		AllDay:     true,
		Category:   domain.CategoryEtc,
	}
	patch.Apply(&e)
	if e.Visibility == "" {
		e.Visibility = domain.VisibilityPrivate
	}
	if e.Category == "" {
		e.Category = domain.CategoryEtc
	}
	e.CreatedAt = now
	e.UpdatedAt = now

	next := append(cloneEvents(s.events), e)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *eventStore) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneEvents(s.events)
	i := s.indexOf(id)
	if i < 0 {
		return nil, false, s.commit(ctx, next)
	}

	e := next[i]
	patch.Apply(&e)
	e.UpdatedAt = domain.NewInstant(s.now())
	if e.UpdatedAt.Before(e.CreatedAt.Time) {
		e.UpdatedAt = e.CreatedAt
	}
	next[i] = e

	if err := s.commit(ctx, next); err != nil {
		return nil, true, err
	}
	return &e, true, nil
}

func (s *eventStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		if e.ID != id {
			next = append(next, e)
		}
	}
	return s.commit(ctx, next)
}

// commit writes next to the mirror and, only on success, makes it the in-memory collection.
func (s *eventStore) commit(ctx context.Context, next []domain.Event) error {
	if err := s.repo.SaveAll(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "event cache write failed", "count", len(next), "err", err)
		if errors.Is(err, domain.ErrStorageWrite) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrStorageWrite, err)
	}
	s.events = next
	return nil
}

func (s *eventStore) indexOf(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

const maxIDAttempts = 8

// uniqueID draws identities until one is unused in the current collection.
func (s *eventStore) uniqueID(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id, err := s.newID()
		if err != nil {
			return "", fmt.Errorf("generate event id: %w", err)
		}
		if s.indexOf(id) < 0 {
			return id, nil
		}
		s.logger.WarnContext(ctx, "event id collision, regenerating", "id", id, "attempt", attempt)
	}
	return "", fmt.Errorf("%w: no free id after %d attempts", domain.ErrIDCollision, maxIDAttempts)
}

const eventIDLength = 9

var eventIDAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateEventID() (string, error) {
	b := make([]rune, eventIDLength)
	max := big.NewInt(int64(len(eventIDAlphabet)))
	for i := 0; i < eventIDLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = eventIDAlphabet[n.Int64()]
	}
	return string(b), nil
}

func cloneEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	copy(out, events)
	return out
}
