package ical

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	created := domain.NewInstant(time.Date(2024, 2, 20, 1, 0, 0, 0, time.UTC))

	events := []domain.Event{
		{
			ID:         "meet00001",
			Title:      "Staff Meeting",
			Visibility: domain.VisibilitySchool,
			Category:   domain.CategoryMeeting,
			StartAt:    domain.NewInstant(time.Date(2024, 3, 1, 9, 0, 0, 0, loc)),
			EndAt:      domain.NewInstant(time.Date(2024, 3, 1, 13, 0, 0, 0, loc)),
			Location:   "Room 3",
			Memo:       "bring laptops",
			CreatedAt:  created,
			UpdatedAt:  created,
		},
		{
			ID:         "trip00001",
			Title:      "Field trip",
			Visibility: domain.VisibilityPrivate,
			Category:   domain.CategoryTrip,
			AllDay:     true,
			StartAt:    domain.NewInstant(time.Date(2024, 5, 10, 8, 0, 0, 0, loc)),
			EndAt:      domain.NewInstant(time.Date(2024, 5, 12, 17, 0, 0, 0, loc)),
			CreatedAt:  created,
			UpdatedAt:  created,
		},
	}

	out := NewExporter(loc, "School-Link").Export(events, created.Time)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "X-WR-TIMEZONE:Asia/Seoul")

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	parsed := cal.Events()
	require.Len(t, parsed, 2)

	meeting := parsed[0]
	assert.Equal(t, UID("meet00001"), meeting.Id())
	assert.Equal(t, "Staff Meeting", meeting.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Room 3", meeting.GetProperty(ics.ComponentPropertyLocation).Value)
	assert.Equal(t, "meeting", meeting.GetProperty(ics.ComponentPropertyCategories).Value)
	assert.Equal(t, string(ics.ClassificationPublic), meeting.GetProperty(ics.ComponentPropertyClass).Value)
	start, err := meeting.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	trip := parsed[1]
	assert.Equal(t, "20240510", trip.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240513", trip.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, string(ics.ClassificationPrivate), trip.GetProperty(ics.ComponentPropertyClass).Value)
	assert.Nil(t, trip.GetProperty(ics.ComponentPropertyLocation))
}

func TestExporter_Export_empty(t *testing.T) {
	out := NewExporter(nil, "").Export(nil, time.Now())
	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}
