package domain

import (
	"context"
	"strings"
	"time"
)

// Visibility controls how an event is grouped in the widget. It is not an access rule.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilitySchool  Visibility = "school"
)

// Valid reports whether v is one of the known visibilities.
func (v Visibility) Valid() bool {
	return v == VisibilityPrivate || v == VisibilitySchool
}

// Category is the closed set of event kinds.
type Category string

const (
	CategoryMeeting  Category = "meeting"
	CategoryEvent    Category = "event"
	CategoryDeadline Category = "deadline"
	CategoryTrip     Category = "trip"
	CategoryEtc      Category = "etc"
)

// Categories lists the canonical categories in display order.
func Categories() []Category {
	return []Category{CategoryMeeting, CategoryEvent, CategoryDeadline, CategoryTrip, CategoryEtc}
}

// Valid reports whether c is a canonical category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMeeting, CategoryEvent, CategoryDeadline, CategoryTrip, CategoryEtc:
		return true
	}
	return false
}

// legacyCategories maps values written by the older form onto the canonical set.
var legacyCategories = map[string]Category{
	"education": CategoryEvent,
	"official":  CategoryDeadline,
	"service":   CategoryEtc,
}

// CanonicalCategory returns the canonical category for a persisted value.
// Legacy values are migrated; anything unrecognised becomes etc.
func CanonicalCategory(raw string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c.Valid() {
		return c
	}
	if mapped, ok := legacyCategories[string(c)]; ok {
		return mapped
	}
	return CategoryEtc
}

// Mocked scope identifiers stamped on new events.
const (
	DefaultTenantID = "t1"
	DefaultOwnerUID = "u1"
)

// Event is one calendar entry.
// swagger:model Event
type Event struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenantId"`
	OwnerUID   string     `json:"ownerUid"`
	Visibility Visibility `json:"visibility"`
	Title      string     `json:"title"`
	StartAt    Instant    `json:"startAt"`
	EndAt      Instant    `json:"endAt"`
	AllDay     bool       `json:"allDay"`
	Category   Category   `json:"category"`
	Location   string     `json:"location,omitempty"`
	Memo       string     `json:"memo,omitempty"`
	CreatedAt  Instant    `json:"createdAt"`
	UpdatedAt  Instant    `json:"updatedAt"`
}

// EventPatch carries the caller-settable fields of an Event. Nil fields are left alone.
type EventPatch struct {
	TenantID   *string
	OwnerUID   *string
	Visibility *Visibility
	Title      *string
	StartAt    *time.Time
	EndAt      *time.Time
	AllDay     *bool
	Category   *Category
	Location   *string
	Memo       *string
}

// Apply merges the set fields of p over e. Identity and store timestamps are never touched.
func (p EventPatch) Apply(e *Event) {
	if p.TenantID != nil {
		e.TenantID = *p.TenantID
	}
	if p.OwnerUID != nil {
		e.OwnerUID = *p.OwnerUID
	}
	if p.Visibility != nil {
		e.Visibility = *p.Visibility
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.StartAt != nil {
		e.StartAt = NewInstant(*p.StartAt)
	}
	if p.EndAt != nil {
		e.EndAt = NewInstant(*p.EndAt)
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Memo != nil {
		e.Memo = *p.Memo
	}
}

// EventRepository is the durable mirror of the event collection.
// SaveAll always receives the whole collection.
type EventRepository interface {
	Load(ctx context.Context) ([]Event, error)
	SaveAll(ctx context.Context, events []Event) error
}

// EventStore is the single source of truth for the event collection.
type EventStore interface {
	Load(ctx context.Context) error
	List(ctx context.Context) []Event
	Get(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, patch EventPatch) (*Event, error)
	// Update merges patch over the event with the given id. found is false when no
	// event matched; that is not an error and the collection is persisted unchanged.
	Update(ctx context.Context, id string, patch EventPatch) (event *Event, found bool, err error)
	Delete(ctx context.Context, id string) error
}
