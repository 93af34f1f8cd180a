package timefields

import (
	"time"

	"schoollink/internal/domain"
)

// Pair holds the start and end fields of an event being edited.
//
// The end date is derived from the start date: every start-date change overwrites
// it. Changing the end date never affects the start.
type Pair struct {
	start Fields
	end   Fields
}

// NewPair builds a pair from end fields first, then applies the start through
// SetStartDate so the derived rule fires exactly as on any other change.
func NewPair(start, end Fields) Pair {
	p := Pair{start: start, end: end}
	p.SetStartDate(start.Date)
	return p
}

func (p Pair) Start() Fields { return p.start }
func (p Pair) End() Fields   { return p.end }

// SetStartDate sets the start date and copies it onto the end date.
func (p *Pair) SetStartDate(date string) {
	p.start.Date = date
	p.end.Date = date
}

func (p *Pair) SetEndDate(date string) {
	p.end.Date = date
}

func (p *Pair) SetStartClock(hour, minute string, m Meridiem) {
	p.start.Hour, p.start.Minute, p.start.Meridiem = hour, minute, m
}

func (p *Pair) SetEndClock(hour, minute string, m Meridiem) {
	p.end.Hour, p.end.Minute, p.end.Meridiem = hour, minute, m
}

// Compose returns both instants. Both dates must be filled before either is composed.
func (p Pair) Compose(loc *time.Location) (start, end time.Time, err error) {
	if p.start.Date == "" || p.end.Date == "" {
		return time.Time{}, time.Time{}, domain.ErrMissingDate
	}
	if start, err = Compose(p.start, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end, err = Compose(p.end, loc); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
