package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"schoollink/internal/domain"
)

// FormRegistry keeps the open forms of a running server, keyed by a random id.
// Closed forms are dropped on the next Open.
type FormRegistry struct {
	mu    sync.Mutex
	forms map[string]*EventForm
	store domain.EventStore
	opts  FormOptions
}

func NewFormRegistry(store domain.EventStore, opts FormOptions) *FormRegistry {
	return &FormRegistry{forms: make(map[string]*EventForm), store: store, opts: opts}
}

// Open starts a form for eventID, or a blank form on initialDate when eventID is empty.
func (r *FormRegistry) Open(ctx context.Context, initialDate, eventID string) (string, *EventForm, error) {
	var initial *domain.Event
	if eventID != "" {
		e, err := r.store.Get(ctx, eventID)
		if err != nil {
			return "", nil, fmt.Errorf("open form for %s: %w", eventID, err)
		}
		initial = e
	}

	form := NewEventForm(r.store, r.opts)
	if err := form.Open(initialDate, initial); err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.forms[id] = form
	return id, form, nil
}

// Get returns an open form, or domain.ErrNotFound once it was closed or never existed.
func (r *FormRegistry) Get(id string) (*EventForm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	form, ok := r.forms[id]
	if !ok || form.State() == FormClosed {
		return nil, domain.ErrNotFound
	}
	return form, nil
}

// Len reports how many forms are held, closed ones included until the next sweep.
func (r *FormRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

func (r *FormRegistry) sweep() {
	for id, f := range r.forms {
		if f.State() == FormClosed {
			delete(r.forms, id)
		}
	}
}
