package controllers

import (
	"log/slog"
	"net/http"

	h "schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
)

type SettingsController struct {
	Logger  *slog.Logger
	Service domain.SettingsService
}

func NewSettingsController(logger *slog.Logger, svc domain.SettingsService) *SettingsController {
	return &SettingsController{Logger: logger, Service: svc}
}

// Get godoc
// @Summary Widget display settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the settings"
// @Router /settings [get]
func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	s, err := c.Service.Get(r.Context())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, s)
}

// Update godoc
// @Summary Change widget display settings
// @Description Omitted fields keep their value; opacity is clamped to 20-100.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.SettingsPatch true "Changes"
// @Success 200 {object} helpers.APIResponse "data contains the settings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /settings [patch]
func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if !h.DecodeAndValidate(w, r, &patch) {
		return
	}
	s, err := c.Service.Update(r.Context(), patch)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, s)
}
