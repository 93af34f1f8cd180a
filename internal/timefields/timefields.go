// Package timefields converts between 12-hour clock form fields and absolute instants.
package timefields

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"schoollink/internal/domain"
)

// DateLayout is the layout of the date field.
const DateLayout = "2006-01-02"

// Meridiem is the AM/PM marker of a 12-hour clock.
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// Fields is the discrete form representation of one instant.
type Fields struct {
	Date     string   `json:"date"`
	Hour     string   `json:"hour"`
	Minute   string   `json:"minute"`
	Meridiem Meridiem `json:"meridiem"`
}

// HourLabels returns the hour options offered by the form, "1" through "12".
func HourLabels() []string {
	out := make([]string, 0, 12)
	for h := 1; h <= 12; h++ {
		out = append(out, strconv.Itoa(h))
	}
	return out
}

// MinuteLabels returns the minute options offered by the form, "00" through "59".
func MinuteLabels() []string {
	out := make([]string, 0, 60)
	for m := 0; m < 60; m++ {
		out = append(out, fmt.Sprintf("%02d", m))
	}
	return out
}

// To24Hour maps a 12-hour label value to a 24-hour clock hour.
func To24Hour(hour int, m Meridiem) int {
	switch {
	case m == PM && hour < 12:
		return hour + 12
	case m == AM && hour == 12:
		return 0
	default:
		return hour
	}
}

// Compose interprets f as a wall-clock time in loc and returns the instant in UTC.
// A nil loc means time.Local.
func Compose(f Fields, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(f.Date) == "" {
		return time.Time{}, domain.ErrMissingDate
	}
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(f.Date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidTime, f.Date)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(f.Hour))
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, fmt.Errorf("%w: hour %q", domain.ErrInvalidTime, f.Hour)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(f.Minute))
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: minute %q", domain.ErrInvalidTime, f.Minute)
	}
	if f.Meridiem != AM && f.Meridiem != PM {
		return time.Time{}, fmt.Errorf("%w: meridiem %q", domain.ErrInvalidTime, f.Meridiem)
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), To24Hour(hour, f.Meridiem), minute, 0, 0, loc)
	return local.UTC(), nil
}

// Decompose splits t into form fields as seen on a wall clock in loc.
func Decompose(t time.Time, loc *time.Location) Fields {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	m := AM
	if local.Hour() >= 12 {
		m = PM
	}
	h := local.Hour() % 12
	if h == 0 {
		h = 12
	}
	return Fields{
		Date:     local.Format(DateLayout),
		Hour:     strconv.Itoa(h),
		Minute:   fmt.Sprintf("%02d", local.Minute()),
		Meridiem: m,
	}
}
