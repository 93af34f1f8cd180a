package domain

import (
	"bytes"
	"fmt"
	"time"
)

// InstantLayout is the canonical textual form of an Instant: UTC with millisecond precision.
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// Instant is an absolute point in time that serialises in the canonical layout.
type Instant struct {
	time.Time
}

// NewInstant normalises t to UTC at millisecond precision.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC().Truncate(time.Millisecond)}
}

// String returns the canonical textual timestamp.
func (i Instant) String() string {
	return i.UTC().Format(InstantLayout)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON accepts any RFC 3339 timestamp and normalises it.
func (i *Instant) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*i = Instant{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("instant: expected string, got %s", data)
	}
	t, err := time.Parse(time.RFC3339Nano, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("instant: %w", err)
	}
	*i = NewInstant(t)
	return nil
}
