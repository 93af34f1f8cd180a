package controllers

import (
	"net/http"

	h "schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
)

type HealthResponse struct {
	Status string `json:"status"`
	Events int    `json:"events"`
}

type HealthController struct {
	Store domain.EventStore
}

func NewHealthController(store domain.EventStore) *HealthController {
	return &HealthController{Store: store}
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Events: len(c.Store.List(r.Context()))})
}
