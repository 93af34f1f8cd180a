package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"schoollink/internal/domain"
	"schoollink/internal/timefields"
)

// FormState is the lifecycle position of one EventForm.
type FormState string

const (
	FormIdle             FormState = "idle"
	FormEditing          FormState = "editing"
	FormSubmitting       FormState = "submitting"
	FormConfirmingDelete FormState = "confirming-delete"
	FormClosed           FormState = "closed"
)

// Blank forms start at 9:00 AM and end at 1:00 PM on the initial date.
var (
	blankStart = timefields.Fields{Hour: "9", Minute: "00", Meridiem: timefields.AM}
	blankEnd   = timefields.Fields{Hour: "1", Minute: "00", Meridiem: timefields.PM}
)

// FormFields is the current content of the form, as bound to input widgets.
type FormFields struct {
	EventID    string            `json:"eventId,omitempty"`
	Title      string            `json:"title"`
	Visibility domain.Visibility `json:"visibility"`
	Category   domain.Category   `json:"category"`
	AllDay     bool              `json:"allDay"`
	Location   string            `json:"location"`
	Memo       string            `json:"memo"`
	Start      timefields.Fields `json:"start"`
	End        timefields.Fields `json:"end"`
}

// FormOptions configures new forms.
type FormOptions struct {
	Location        *time.Location
	DefaultCategory domain.Category
	Logger          *slog.Logger
}

// EventForm binds one event-in-progress to the store. Validation runs before any
// store call; store failures keep the form open for another attempt.
type EventForm struct {
	mu   sync.Mutex
	opts FormOptions

	store domain.EventStore

	state      FormState
	eventID    string
	title      string
	visibility domain.Visibility
	category   domain.Category
	allDay     bool
	location   string
	memo       string
	times      timefields.Pair
	lastErr    error
}

func NewEventForm(store domain.EventStore, opts FormOptions) *EventForm {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if !opts.DefaultCategory.Valid() {
		opts.DefaultCategory = domain.CategoryMeeting
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &EventForm{store: store, opts: opts, state: FormIdle}
}

// Open fills the form either from initial or, when initial is nil, with blank
// defaults on initialDate (YYYY-MM-DD).
func (f *EventForm) Open(initialDate string, initial *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormIdle {
		return fmt.Errorf("%w: open from %s", domain.ErrFormState, f.state)
	}

	if initial != nil {
		f.eventID = initial.ID
		f.title = initial.Title
		f.visibility = initial.Visibility
		f.category = domain.CanonicalCategory(string(initial.Category))
		f.allDay = initial.AllDay
		f.location = initial.Location
		f.memo = initial.Memo
		f.times = timefields.NewPair(
			timefields.Decompose(initial.StartAt.Time, f.opts.Location),
			timefields.Decompose(initial.EndAt.Time, f.opts.Location),
		)
	} else {
		f.visibility = domain.VisibilityPrivate
		f.category = f.opts.DefaultCategory
		f.allDay = true
		start, end := blankStart, blankEnd
		start.Date, end.Date = initialDate, initialDate
		f.times = timefields.NewPair(start, end)
	}
	f.state = FormEditing
	return nil
}

func (f *EventForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last failed submit or delete, if the form is still open.
func (f *EventForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *EventForm) Fields() FormFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormFields{
		EventID:    f.eventID,
		Title:      f.title,
		Visibility: f.visibility,
		Category:   f.category,
		AllDay:     f.allDay,
		Location:   f.location,
		Memo:       f.memo,
		Start:      f.times.Start(),
		End:        f.times.End(),
	}
}

func (f *EventForm) SetTitle(title string) error {
	return f.edit(func() error {
		f.title = title
		return nil
	})
}

func (f *EventForm) SetVisibility(v domain.Visibility) error {
	return f.edit(func() error {
		if !v.Valid() {
			return fmt.Errorf("%w: visibility %q", domain.ErrInvalidField, v)
		}
		f.visibility = v
		return nil
	})
}

func (f *EventForm) SetCategory(c domain.Category) error {
	return f.edit(func() error {
		if !c.Valid() {
			return fmt.Errorf("%w: category %q", domain.ErrInvalidField, c)
		}
		f.category = c
		return nil
	})
}

func (f *EventForm) SetAllDay(allDay bool) error {
	return f.edit(func() error {
		f.allDay = allDay
		return nil
	})
}

func (f *EventForm) SetLocation(location string) error {
	return f.edit(func() error {
		f.location = location
		return nil
	})
}

func (f *EventForm) SetMemo(memo string) error {
	return f.edit(func() error {
		f.memo = memo
		return nil
	})
}

// SetStartDate also overwrites the end date.
func (f *EventForm) SetStartDate(date string) error {
	return f.edit(func() error {
		f.times.SetStartDate(date)
		return nil
	})
}

func (f *EventForm) SetEndDate(date string) error {
	return f.edit(func() error {
		f.times.SetEndDate(date)
		return nil
	})
}

func (f *EventForm) SetStartClock(hour, minute string, m timefields.Meridiem) error {
	return f.edit(func() error {
		f.times.SetStartClock(hour, minute, m)
		return nil
	})
}

func (f *EventForm) SetEndClock(hour, minute string, m timefields.Meridiem) error {
	return f.edit(func() error {
		f.times.SetEndClock(hour, minute, m)
		return nil
	})
}

func (f *EventForm) edit(apply func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEditing {
		return fmt.Errorf("%w: edit while %s", domain.ErrFormState, f.state)
	}
	return apply()
}

// Submit validates the form and creates or updates the bound event. On success
// the form closes; the returned event is nil when the bound event no longer exists.
func (f *EventForm) Submit(ctx context.Context) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != FormEditing {
		return nil, fmt.Errorf("%w: submit while %s", domain.ErrFormState, f.state)
	}

	patch, err := f.validate()
	if err != nil {
		f.lastErr = err
		return nil, err
	}

	f.state = FormSubmitting
	var (
		saved *domain.Event
		found = true
	)
	if f.eventID != "" {
		saved, found, err = f.store.Update(ctx, f.eventID, patch)
	} else {
		saved, err = f.store.Create(ctx, patch)
	}
	if err != nil {
		f.opts.Logger.ErrorContext(ctx, "event save failed", "eventID", f.eventID, "err", err)
		f.state = FormEditing
		f.lastErr = domain.ErrSaveFailed
		return nil, fmt.Errorf("%w: %w", domain.ErrSaveFailed, err)
	}
	if !found {
		f.opts.Logger.WarnContext(ctx, "edited event no longer exists", "eventID", f.eventID)
	}
	f.close()
	return saved, nil
}

// validate applies the submit checks in order and returns the patch to store.
func (f *EventForm) validate() (domain.EventPatch, error) {
	title := strings.TrimSpace(f.title)
	if title == "" {
		return domain.EventPatch{}, domain.ErrTitleRequired
	}
	start, end, err := f.times.Compose(f.opts.Location)
	if err != nil {
		return domain.EventPatch{}, err
	}
	if end.Before(start) {
		return domain.EventPatch{}, domain.ErrInvertedRange
	}

	visibility, category, allDay := f.visibility, f.category, f.allDay
	location, memo := f.location, f.memo
	return domain.EventPatch{
		Title:      &title,
		Visibility: &visibility,
		Category:   &category,
		AllDay:     &allDay,
		StartAt:    &start,
		EndAt:      &end,
		Location:   &location,
		Memo:       &memo,
	}, nil
}

// RequestDelete asks for confirmation before deleting the bound event.
func (f *EventForm) RequestDelete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormEditing || f.eventID == "" {
		return fmt.Errorf("%w: delete while %s", domain.ErrFormState, f.state)
	}
	f.state = FormConfirmingDelete
	return nil
}

func (f *EventForm) CancelDelete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormConfirmingDelete {
		return fmt.Errorf("%w: cancel delete while %s", domain.ErrFormState, f.state)
	}
	f.state = FormEditing
	return nil
}

func (f *EventForm) ConfirmDelete(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormConfirmingDelete {
		return fmt.Errorf("%w: confirm delete while %s", domain.ErrFormState, f.state)
	}
	if err := f.store.Delete(ctx, f.eventID); err != nil {
		f.opts.Logger.ErrorContext(ctx, "event delete failed", "eventID", f.eventID, "err", err)
		f.state = FormEditing
		f.lastErr = domain.ErrDeleteFailed
		return fmt.Errorf("%w: %w", domain.ErrDeleteFailed, err)
	}
	f.close()
	return nil
}

// Cancel closes the form without touching the store. Closing twice is allowed.
func (f *EventForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.close()
}

func (f *EventForm) close() {
	f.eventID, f.title, f.location, f.memo = "", "", "", ""
	f.times = timefields.Pair{}
	f.lastErr = nil
	f.state = FormClosed
}
