package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"schoollink/internal/domain"
	"schoollink/internal/timefields"
)

// previewLimit is how many titles a grid cell shows before collapsing into a count.
const previewLimit = 2

type calendarService struct {
	store domain.EventStore
	loc   *time.Location
	now   func() time.Time
}

// NewCalendarService builds month and day views over the store. Days are cut in loc.
func NewCalendarService(store domain.EventStore, loc *time.Location) domain.CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &calendarService{store: store, loc: loc, now: time.Now}
}

// MonthGrid returns every day from the Sunday on or before the first of the month
// to the Saturday on or after its last day. The grid is never filtered by visibility.
func (s *calendarService) MonthGrid(ctx context.Context, year int, month time.Month) (*domain.MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrInvalidField, month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	last := first.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	byDay := s.groupByDay(s.store.List(ctx))
	today := s.now().In(s.loc).Format(timefields.DateLayout)

	grid := &domain.MonthGrid{Year: year, Month: int(month)}
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format(timefields.DateLayout)
		events := byDay[key]
		cell := domain.DayCell{
			Date:    key,
			InMonth: d.Month() == month,
			Today:   key == today,
			Count:   len(events),
			Preview: []domain.Event{},
		}
		for i, e := range events {
			if i < previewLimit {
				cell.Preview = append(cell.Preview, e)
			}
			if e.Visibility == domain.VisibilitySchool {
				cell.HasSchoolEvents = true
			}
		}
		if cell.Count > previewLimit {
			cell.More = cell.Count - previewLimit
		}
		grid.Days = append(grid.Days, cell)
	}
	return grid, nil
}

// DayEvents lists the events starting on day, ordered by start, narrowed by filter.
func (s *calendarService) DayEvents(ctx context.Context, day string, filter domain.VisibilityFilter) ([]domain.Event, error) {
	if _, err := time.ParseInLocation(timefields.DateLayout, day, s.loc); err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidField, day)
	}

	out := []domain.Event{}
	for _, e := range s.groupByDay(s.store.List(ctx))[day] {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *calendarService) groupByDay(events []domain.Event) map[string][]domain.Event {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartAt.Before(events[j].StartAt.Time)
	})
	byDay := make(map[string][]domain.Event)
	for _, e := range events {
		key := e.StartAt.In(s.loc).Format(timefields.DateLayout)
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}
