package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"schoollink/internal/delivery/http/helpers"
	"schoollink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	uid string
	err error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uid, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	tests := []struct {
		name       string
		authHeader string
		verifier   domain.TokenVerifier
		wantStatus int
		nextCalled bool
		wantUID    string
	}{
		{
			name:       "valid token sets context and calls next",
			authHeader: "Bearer valid-token",
			verifier:   &fakeTokenVerifier{uid: "u-3-7"},
			wantStatus: http.StatusOK,
			nextCalled: true,
			wantUID:    "u-3-7",
		},
		{
			name:       "lower-case scheme is accepted",
			authHeader: "bearer valid-token",
			verifier:   &fakeTokenVerifier{uid: "u-1-1"},
			wantStatus: http.StatusOK,
			nextCalled: true,
			wantUID:    "u-1-1",
		},
		{
			name:       "missing authorization header",
			verifier:   &fakeTokenVerifier{uid: "u-3-7"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "basic scheme",
			authHeader: "Basic abc",
			verifier:   &fakeTokenVerifier{uid: "u-3-7"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token after Bearer",
			authHeader: "Bearer ",
			verifier:   &fakeTokenVerifier{uid: "u-3-7"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier returns error",
			authHeader: "Bearer bad-token",
			verifier:   &fakeTokenVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var gotUID string
			next := func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUID, _ = UIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			handler := RequireAuth(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/events", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, nextCalled)
			assert.Equal(t, tt.wantUID, gotUID)
			if tt.wantStatus == http.StatusUnauthorized {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			}
		})
	}
}

func TestUIDFromContext_empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UIDFromContext(req.Context())
	assert.False(t, ok)
	_, ok = UIDFromContext(WithUID(req.Context(), ""))
	assert.False(t, ok)
}
