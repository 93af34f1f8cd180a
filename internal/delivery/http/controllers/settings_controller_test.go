package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsService implements domain.SettingsService for handler tests.
type fakeSettingsService struct {
	current   domain.Settings
	lastPatch domain.SettingsPatch
}

func (f *fakeSettingsService) Get(context.Context) (domain.Settings, error) {
	return f.current, nil
}

func (f *fakeSettingsService) Update(_ context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	f.lastPatch = patch
	if patch.Opacity != nil {
		f.current.Opacity = *patch.Opacity
	}
	return f.current, nil
}

func TestSettingsController(t *testing.T) {
	svc := &fakeSettingsService{current: domain.DefaultSettings()}
	c := NewSettingsController(testLogger, svc)

	rr := httptest.NewRecorder()
	c.Get(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Settings
	require.Nil(t, decode(t, rr, &got))
	assert.Equal(t, domain.DefaultSettings(), got)

	rr = httptest.NewRecorder()
	c.Update(rr, httptest.NewRequest(http.MethodPatch, "/settings", bytes.NewBufferString(`{"opacity":60}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Nil(t, decode(t, rr, &got))
	assert.Equal(t, 60, got.Opacity)
	require.NotNil(t, svc.lastPatch.Opacity)
	assert.Nil(t, svc.lastPatch.AlwaysOnTop)

	rr = httptest.NewRecorder()
	c.Update(rr, httptest.NewRequest(http.MethodPatch, "/settings", bytes.NewBufferString(`{"theme":"dark"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthController(t *testing.T) {
	c := NewHealthController(newMemoryStore(t))
	rr := httptest.NewRecorder()
	c.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var res HealthResponse
	require.Nil(t, decode(t, rr, &res))
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, 0, res.Events)
}
