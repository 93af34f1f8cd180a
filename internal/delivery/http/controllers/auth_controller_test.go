package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	loginErr    error
	changeErr   error
	joinErr     error
	session     domain.SessionState
	lastGrade   string
	lastClass   string
	lastPIN     string
	lastNewPIN  string
	lastCode    string
	logoutCalls int
}

func (f *fakeAuthService) Login(_ context.Context, grade, classNum, pin string) (*domain.LoginResult, error) {
	f.lastGrade, f.lastClass, f.lastPIN = grade, classNum, pin
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.LoginResult{Token: "tok", Session: f.session}, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, newPIN, _ string) error {
	f.lastNewPIN = newPIN
	return f.changeErr
}

func (f *fakeAuthService) JoinTenant(_ context.Context, code string) (*domain.Tenant, error) {
	f.lastCode = code
	if f.joinErr != nil {
		return nil, f.joinErr
	}
	return &domain.Tenant{ID: "t1", SchoolName: "서울미래고등학교", InviteCode: code}, nil
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeAuthService) Session(context.Context) (*domain.SessionState, error) {
	s := f.session
	return &s, nil
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"grade":"3","classNum":"7","pin":"0000"}`,
			svc:        &fakeAuthService{session: domain.SessionState{View: domain.ViewPasswordChange, NeedsPasswordChange: true}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing fields",
			body:       `{"grade":"3"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"grade":"3","classNum":"7","pin":"0000","email":"x"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "bad pin format",
			body:       `{"grade":"3","classNum":"7","pin":"12"}`,
			svc:        &fakeAuthService{loginErr: domain.ErrPINFormat},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "wrong pin",
			body:       `{"grade":"3","classNum":"7","pin":"1234"}`,
			svc:        &fakeAuthService{loginErr: domain.ErrInvalidPIN},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			c.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var res domain.LoginResult
			apiErr := decode(t, rr, &res)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "tok", res.Token)
			assert.Equal(t, domain.ViewPasswordChange, res.Session.View)
			assert.Equal(t, "3", tt.svc.lastGrade)
			assert.Equal(t, "7", tt.svc.lastClass)
		})
	}
}

func TestAuthController_ChangePassword(t *testing.T) {
	svc := &fakeAuthService{session: domain.SessionState{View: domain.ViewTenant}}
	c := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodPost, "/auth/password", bytes.NewBufferString(`{"newPin":"4821","confirmPin":"4821"}`))
	rr := httptest.NewRecorder()
	c.ChangePassword(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var state domain.SessionState
	require.Nil(t, decode(t, rr, &state))
	assert.Equal(t, domain.ViewTenant, state.View)
	assert.Equal(t, "4821", svc.lastNewPIN)

	svc.changeErr = domain.ErrPINMismatch
	rr = httptest.NewRecorder()
	c.ChangePassword(rr, httptest.NewRequest(http.MethodPost, "/auth/password", bytes.NewBufferString(`{"newPin":"4821","confirmPin":"1111"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthController_JoinTenant(t *testing.T) {
	svc := &fakeAuthService{}
	c := NewAuthController(testLogger, svc)

	rr := httptest.NewRecorder()
	c.JoinTenant(rr, httptest.NewRequest(http.MethodPost, "/auth/tenant", bytes.NewBufferString(`{"inviteCode":"abc"}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	var tenant domain.Tenant
	require.Nil(t, decode(t, rr, &tenant))
	assert.Equal(t, "t1", tenant.ID)
	assert.Equal(t, "abc", svc.lastCode)

	rr = httptest.NewRecorder()
	c.JoinTenant(rr, httptest.NewRequest(http.MethodPost, "/auth/tenant", bytes.NewBufferString(`{"inviteCode":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthController_LogoutAndSession(t *testing.T) {
	svc := &fakeAuthService{session: domain.SessionState{View: domain.ViewAuth}}
	c := NewAuthController(testLogger, svc)

	rr := httptest.NewRecorder()
	c.Logout(rr, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, svc.logoutCalls)

	rr = httptest.NewRecorder()
	c.Session(rr, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var state domain.SessionState
	require.Nil(t, decode(t, rr, &state))
	assert.Equal(t, domain.ViewAuth, state.View)
}
