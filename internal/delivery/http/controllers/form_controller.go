package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	h "schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
	"schoollink/internal/timefields"
	"schoollink/internal/usecase"
)

// OpenFormRequest is the request body for POST /forms.
// With eventId the form edits that event; otherwise it is blank on initialDate.
type OpenFormRequest struct {
	InitialDate string `json:"initialDate"`
	EventID     string `json:"eventId"`
}

// Validate implements Validator.
func (o OpenFormRequest) Validate() []string {
	if o.InitialDate == "" && o.EventID == "" {
		return []string{"initialDate or eventId is required"}
	}
	return nil
}

// ClockRequest sets the time-of-day part of a form field.
type ClockRequest struct {
	Hour     string              `json:"hour"`
	Minute   string              `json:"minute"`
	Meridiem timefields.Meridiem `json:"meridiem"`
}

// PatchFormRequest is the request body for PATCH /forms/{formID}. Omitted fields are
// left alone. startDate is applied before endDate, so both may be set together.
type PatchFormRequest struct {
	Title      *string            `json:"title"`
	Visibility *domain.Visibility `json:"visibility"`
	Category   *domain.Category   `json:"category"`
	AllDay     *bool              `json:"allDay"`
	Location   *string            `json:"location"`
	Memo       *string            `json:"memo"`
	StartDate  *string            `json:"startDate"`
	StartClock *ClockRequest      `json:"startClock"`
	EndDate    *string            `json:"endDate"`
	EndClock   *ClockRequest      `json:"endClock"`
}

// FormResponse is the state of one open form.
type FormResponse struct {
	ID     string             `json:"id"`
	State  usecase.FormState  `json:"state"`
	Fields usecase.FormFields `json:"fields"`
	Error  string             `json:"error,omitempty"`
}

// SubmitResponse is returned by a successful submit. Event is null when the edited
// event had been deleted in the meantime.
type SubmitResponse struct {
	Form  FormResponse  `json:"form"`
	Event *domain.Event `json:"event"`
}

// FormOptionsResponse lists the values the form's pickers offer.
type FormOptionsResponse struct {
	Hours        []string              `json:"hours"`
	Minutes      []string              `json:"minutes"`
	Meridiems    []timefields.Meridiem `json:"meridiems"`
	Categories   []domain.Category     `json:"categories"`
	Visibilities []domain.Visibility   `json:"visibilities"`
}

type FormController struct {
	Logger   *slog.Logger
	Registry *usecase.FormRegistry
}

func NewFormController(logger *slog.Logger, registry *usecase.FormRegistry) *FormController {
	return &FormController{Logger: logger, Registry: registry}
}

// Options godoc
// @Summary Picker values for the event form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains hours, minutes, categories"
// @Router /forms/options [get]
func (c *FormController) Options(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, FormOptionsResponse{
		Hours:        timefields.HourLabels(),
		Minutes:      timefields.MinuteLabels(),
		Meridiems:    []timefields.Meridiem{timefields.AM, timefields.PM},
		Categories:   domain.Categories(),
		Visibilities: []domain.Visibility{domain.VisibilityPrivate, domain.VisibilitySchool},
	})
}

// Open godoc
// @Summary Open an event form
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body OpenFormRequest true "Initial date or event to edit"
// @Success 201 {object} helpers.APIResponse "data contains the form"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /forms [post]
func (c *FormController) Open(w http.ResponseWriter, r *http.Request) {
	var req OpenFormRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	id, form, err := c.Registry.Open(r.Context(), req.InitialDate, req.EventID)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, formResponse(id, form))
}

// Get godoc
// @Summary Current fields of an open form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the form"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /forms/{formID} [get]
func (c *FormController) Get(w http.ResponseWriter, r *http.Request) {
	id, form, ok := c.lookup(w, r)
	if !ok {
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, formResponse(id, form))
}

// Patch godoc
// @Summary Edit fields of an open form
// @Description Changing startDate also overwrites endDate.
// @Tags forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Param body body PatchFormRequest true "Field changes"
// @Success 200 {object} helpers.APIResponse "data contains the form"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /forms/{formID} [patch]
func (c *FormController) Patch(w http.ResponseWriter, r *http.Request) {
	id, form, ok := c.lookup(w, r)
	if !ok {
		return
	}
	var req PatchFormRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := applyPatch(form, req); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, formResponse(id, form))
}

func applyPatch(form *usecase.EventForm, req PatchFormRequest) error {
	var errs []error
	if req.Title != nil {
		errs = append(errs, form.SetTitle(*req.Title))
	}
	if req.Visibility != nil {
		errs = append(errs, form.SetVisibility(*req.Visibility))
	}
	if req.Category != nil {
		errs = append(errs, form.SetCategory(*req.Category))
	}
	if req.AllDay != nil {
		errs = append(errs, form.SetAllDay(*req.AllDay))
	}
	if req.Location != nil {
		errs = append(errs, form.SetLocation(*req.Location))
	}
	if req.Memo != nil {
		errs = append(errs, form.SetMemo(*req.Memo))
	}
	if req.StartDate != nil {
		errs = append(errs, form.SetStartDate(*req.StartDate))
	}
	if req.StartClock != nil {
		errs = append(errs, form.SetStartClock(req.StartClock.Hour, req.StartClock.Minute, req.StartClock.Meridiem))
	}
	if req.EndDate != nil {
		errs = append(errs, form.SetEndDate(*req.EndDate))
	}
	if req.EndClock != nil {
		errs = append(errs, form.SetEndClock(req.EndClock.Hour, req.EndClock.Minute, req.EndClock.Meridiem))
	}
	return errors.Join(errs...)
}

// Submit godoc
// @Summary Validate and save the form
// @Description Validation failures and save failures keep the form open.
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the closed form and the saved event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /forms/{formID}/submit [post]
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	id, form, ok := c.lookup(w, r)
	if !ok {
		return
	}
	event, err := form.Submit(r.Context())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SubmitResponse{Form: formResponse(id, form), Event: event})
}

// RequestDelete godoc
// @Summary Ask to delete the event bound to the form
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the form awaiting confirmation"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /forms/{formID}/delete [post]
func (c *FormController) RequestDelete(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(f *usecase.EventForm) error { return f.RequestDelete() })
}

// ConfirmDelete godoc
// @Summary Confirm the pending delete
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the closed form"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /forms/{formID}/delete/confirm [post]
func (c *FormController) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(f *usecase.EventForm) error { return f.ConfirmDelete(r.Context()) })
}

// CancelDelete godoc
// @Summary Keep the event and return to editing
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the form"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /forms/{formID}/delete/cancel [post]
func (c *FormController) CancelDelete(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(f *usecase.EventForm) error { return f.CancelDelete() })
}

// Cancel godoc
// @Summary Close the form without saving
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param formID path string true "Form ID"
// @Success 200 {object} helpers.APIResponse "data contains the closed form"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /forms/{formID} [delete]
func (c *FormController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, func(f *usecase.EventForm) error {
		f.Cancel()
		return nil
	})
}

func (c *FormController) transition(w http.ResponseWriter, r *http.Request, step func(*usecase.EventForm) error) {
	id, form, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if err := step(form); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, formResponse(id, form))
}

func (c *FormController) lookup(w http.ResponseWriter, r *http.Request) (string, *usecase.EventForm, bool) {
	id := r.PathValue("formID")
	if id == "" {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "formID is required")
		return "", nil, false
	}
	form, err := c.Registry.Get(id)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, fmt.Errorf("form %s: %w", id, err))
		return "", nil, false
	}
	return id, form, true
}

func formResponse(id string, form *usecase.EventForm) FormResponse {
	resp := FormResponse{ID: id, State: form.State(), Fields: form.Fields()}
	if err := form.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}
