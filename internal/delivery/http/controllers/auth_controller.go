package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"
)

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Grade    string `json:"grade"`
	ClassNum string `json:"classNum"`
	PIN      string `json:"pin"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Grade) == "" {
		errs = append(errs, "grade is required")
	}
	if strings.TrimSpace(l.ClassNum) == "" {
		errs = append(errs, "classNum is required")
	}
	if l.PIN == "" {
		errs = append(errs, "pin is required")
	}
	return errs
}

// ChangePasswordRequest is the request body for POST /auth/password
type ChangePasswordRequest struct {
	NewPIN     string `json:"newPin"`
	ConfirmPIN string `json:"confirmPin"`
}

// Validate implements Validator.
func (c ChangePasswordRequest) Validate() []string {
	var errs []string
	if c.NewPIN == "" {
		errs = append(errs, "newPin is required")
	}
	if c.ConfirmPIN == "" {
		errs = append(errs, "confirmPin is required")
	}
	return errs
}

// JoinTenantRequest is the request body for POST /auth/tenant
type JoinTenantRequest struct {
	InviteCode string `json:"inviteCode"`
}

// Validate implements Validator.
func (j JoinTenantRequest) Validate() []string {
	if strings.TrimSpace(j.InviteCode) == "" {
		return []string{"inviteCode is required"}
	}
	return nil
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Sign in with grade, class and PIN
// @Description The first sign-in uses PIN 0000 and routes to the password-change view.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse "data contains token and session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Login(r.Context(), req.Grade, req.ClassNum, req.PIN)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, res)
}

// ChangePassword godoc
// @Summary Replace the PIN of the signed-in user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "New PIN"
// @Success 200 {object} helpers.APIResponse "data contains the session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/password [post]
func (c *AuthController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.ChangePassword(r.Context(), req.NewPIN, req.ConfirmPIN); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	c.writeSession(w, r)
}

// JoinTenant godoc
// @Summary Join the school with an invite code
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinTenantRequest true "Invite code"
// @Success 200 {object} helpers.APIResponse "data contains the tenant"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /auth/tenant [post]
func (c *AuthController) JoinTenant(w http.ResponseWriter, r *http.Request) {
	var req JoinTenantRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	tenant, err := c.Service.JoinTenant(r.Context(), req.InviteCode)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, tenant)
}

// Logout godoc
// @Summary Sign out and forget the school binding
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the session"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.Logout(r.Context()); err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	c.writeSession(w, r)
}

// Session godoc
// @Summary Current session and the view the client should show
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the session"
// @Router /auth/session [get]
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	c.writeSession(w, r)
}

func (c *AuthController) writeSession(w http.ResponseWriter, r *http.Request) {
	state, err := c.Service.Session(r.Context())
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, state)
}
