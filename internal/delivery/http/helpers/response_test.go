package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var env APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"title required", domain.ErrTitleRequired, http.StatusBadRequest, ErrCodeBadRequest, domain.ErrTitleRequired.Error()},
		{"wrapped invalid time", fmt.Errorf("%w: hour", domain.ErrInvalidTime), http.StatusBadRequest, ErrCodeBadRequest, ""},
		{"not found", fmt.Errorf("get: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound, "not found"},
		{"bad pin", domain.ErrInvalidPIN, http.StatusUnauthorized, ErrCodeUnauthorized, ""},
		{"form state", domain.ErrFormState, http.StatusConflict, ErrCodeConflict, ""},
		{"save failed hides cause", fmt.Errorf("%w: %w", domain.ErrSaveFailed, errors.New("quota exceeded")), http.StatusInternalServerError, ErrCodeInternalError, "failed to save event"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			WriteDomainError(rr, req, testLogger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			require.NotNil(t, env.Error)
			assert.Nil(t, env.Data)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Error.Message)
			}
		})
	}
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (p pinRequest) Validate() []string {
	if p.PIN == "" {
		return []string{"pin is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"valid", `{"pin":"1234"}`, true},
		{"unknown field", `{"pin":"1234","extra":1}`, false},
		{"validation error", `{"pin":""}`, false},
		{"malformed", `{`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			var dest pinRequest
			ok := DecodeAndValidate(rr, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
				assert.Equal(t, ErrCodeBadRequest, decodeEnvelope(t, rr).Error.Code)
			}
		})
	}
}
