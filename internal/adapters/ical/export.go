// Package ical renders the event collection as an iCalendar feed.
package ical

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"schoollink/internal/domain"
)

const (
	productID = "-//School-Link//Calendar Widget//KO"
	uidDomain = "school-link"
)

// Exporter serialises events. All-day dates are cut in its location.
type Exporter struct {
	loc  *time.Location
	name string
}

func NewExporter(loc *time.Location, calendarName string) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{loc: loc, name: calendarName}
}

// Export returns a VCALENDAR with one VEVENT per event.
func (x *Exporter) Export(events []domain.Event, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if x.name != "" {
		cal.SetXWRCalName(x.name)
	}
	cal.SetXWRTimezone(x.loc.String())

	for _, e := range events {
		ve := cal.AddEvent(UID(e.ID))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetCreatedTime(e.CreatedAt.UTC())
		ve.SetModifiedAt(e.UpdatedAt.UTC())

		if e.AllDay {
			start := e.StartAt.In(x.loc)
			end := e.EndAt.In(x.loc)
			// DTEND of a date-only event is exclusive.
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(dayOf(end).AddDate(0, 0, 1))
		} else {
			ve.SetStartAt(e.StartAt.UTC())
			ve.SetEndAt(e.EndAt.UTC())
		}

		ve.SetSummary(e.Title)
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Memo != "" {
			ve.SetDescription(e.Memo)
		}
		ve.SetProperty(ics.ComponentPropertyCategories, string(e.Category))
		if e.Visibility == domain.VisibilitySchool {
			ve.SetClass(ics.ClassificationPublic)
		} else {
			ve.SetClass(ics.ClassificationPrivate)
		}
	}
	return cal.Serialize()
}

// UID is the iCalendar identity of an event id.
func UID(eventID string) string {
	return eventID + "@" + uidDomain
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
