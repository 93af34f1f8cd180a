package domain

import (
	"context"
	"fmt"
	"time"
)

// VisibilityFilter selects which events a day listing shows.
type VisibilityFilter string

const (
	FilterAll     VisibilityFilter = "all"
	FilterSchool  VisibilityFilter = "school"
	FilterPrivate VisibilityFilter = "private"
)

// ParseVisibilityFilter parses a filter query value. Empty means all.
func ParseVisibilityFilter(s string) (VisibilityFilter, error) {
	switch f := VisibilityFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterSchool, FilterPrivate:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown visibility filter %q", ErrInvalidField, s)
	}
}

// Matches reports whether e passes the filter.
func (f VisibilityFilter) Matches(e Event) bool {
	return f == FilterAll || f == "" || string(e.Visibility) == string(f)
}

// DayCell is one square of the month grid.
type DayCell struct {
	Date            string  `json:"date"`
	InMonth         bool    `json:"inMonth"`
	Today           bool    `json:"today"`
	Count           int     `json:"count"`
	Preview         []Event `json:"preview"`
	More            int     `json:"more"`
	HasSchoolEvents bool    `json:"hasSchoolEvents"`
}

// MonthGrid is a whole number of Sunday-first weeks covering one month.
type MonthGrid struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayCell `json:"days"`
}

// CalendarService answers month-grid and selected-day queries.
type CalendarService interface {
	MonthGrid(ctx context.Context, year int, month time.Month) (*MonthGrid, error)
	DayEvents(ctx context.Context, day string, filter VisibilityFilter) ([]Event, error)
}
