package controllers

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	h "schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
)

// CalendarExporter renders events as an iCalendar document.
type CalendarExporter interface {
	Export(events []domain.Event, stamp time.Time) string
}

type EventController struct {
	Logger   *slog.Logger
	Store    domain.EventStore
	Calendar domain.CalendarService
	Exporter CalendarExporter
}

func NewEventController(logger *slog.Logger, store domain.EventStore, calendar domain.CalendarService, exporter CalendarExporter) *EventController {
	return &EventController{
		Logger:   logger,
		Store:    store,
		Calendar: calendar,
		Exporter: exporter,
	}
}

// List godoc
// @Summary List events
// @Description With date, only events starting that day in the school timezone, ordered by start.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day (YYYY-MM-DD)"
// @Param visibility query string false "all, school or private"
// @Success 200 {object} helpers.APIResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseVisibilityFilter(r.URL.Query().Get("visibility"))
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}

	if day := r.URL.Query().Get("date"); day != "" {
		events, err := c.Calendar.DayEvents(r.Context(), day, filter)
		if err != nil {
			h.WriteDomainError(w, r, c.Logger, err)
			return
		}
		h.WriteJSONSuccess(w, http.StatusOK, events)
		return
	}

	all := c.Store.List(r.Context())
	sort.SliceStable(all, func(i, j int) bool { return all[i].StartAt.Before(all[j].StartAt.Time) })
	events := make([]domain.Event, 0, len(all))
	for _, e := range all {
		if filter.Matches(e) {
			events = append(events, e)
		}
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Store.Get(r.Context(), r.PathValue("eventID"))
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// Month godoc
// @Summary Month grid
// @Description Sunday-first weeks covering the month; each day previews up to two events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} helpers.APIResponse "data contains the grid"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /calendar/{year}/{month} [get]
func (c *EventController) Month(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 || year > 9999 {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid month")
		return
	}
	grid, err := c.Calendar.MonthGrid(r.Context(), year, time.Month(month))
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, grid)
}

// ExportICS godoc
// @Summary Export all events as iCalendar
// @Tags events
// @Produce text/calendar
// @Security BearerAuth
// @Success 200 {string} string "VCALENDAR document"
// @Router /events.ics [get]
func (c *EventController) ExportICS(w http.ResponseWriter, r *http.Request) {
	body := c.Exporter.Export(c.Store.List(r.Context()), time.Now())
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="school-link.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
