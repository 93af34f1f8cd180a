package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		allowed     []string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantMethods bool
	}{
		{"listed origin", []string{"http://widget.test/"}, "http://widget.test", false, http.StatusOK, "http://widget.test", "true", false},
		{"unlisted origin", []string{"http://widget.test"}, "http://evil.test", false, http.StatusOK, "", "", false},
		{"wildcard", []string{"*"}, "http://any.test", false, http.StatusOK, "http://any.test", "", false},
		{"preflight listed", []string{"http://widget.test"}, "http://widget.test", true, http.StatusNoContent, "http://widget.test", "true", true},
		{"preflight unlisted", []string{"http://widget.test"}, "http://evil.test", true, http.StatusNoContent, "", "", false},
		{"no origin", []string{"*"}, "", false, http.StatusOK, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "http://api.test/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed, ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantMethods, rr.Header().Get("Access-Control-Allow-Methods") != "")
		})
	}
}
